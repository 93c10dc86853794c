// glbtool is a CLI utility for inspecting skinned GLB assets.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/glbrig/internal/asset"
	"github.com/Faultbox/glbrig/internal/config"
	"github.com/Faultbox/glbrig/internal/logger"
)

func main() {
	flag.Usage = printUsage
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		err = cmdInfo(cfg, args)
	case "joints":
		err = cmdJoints(cfg, args)
	case "play":
		err = cmdPlay(cfg, args)
	case "watch":
		err = cmdWatch(cfg, args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`glbtool - skinned GLB asset utility

Usage:
  glbtool [global flags] <command> [options]

Commands:
  info <file.glb>                      Show meshes, attributes and textures
  joints <file.glb> [mesh]             Print the flattened joint table
  play [-frames N] <file.glb> [mesh]   Run playback and print offset matrices
  watch <file.glb>                     Reload and summarize on every change

Global flags:
  -config <path>   Config file (.yaml or .toml)
  -debug           Enable debug logging
  -workers <n>     Parallel mesh decoders
  -mode <m>        Playback mode: window or external
  -loop            Loop the playback window
  -fps <n>         Playback frames per second
  -start <n>       First frame of the playback window
  -end <n>         Frame the playback window wraps or holds at

Examples:
  glbtool info character.glb
  glbtool joints character.glb Body
  glbtool -loop -start 0 -end 10 play -frames 24 character.glb`)
}

func loadAsset(cfg *config.Config, path string) (*asset.Asset, error) {
	return asset.LoadFile(path, asset.WithWorkers(cfg.Loader.Workers))
}

// selectMesh picks a mesh by name or index; the first skinned mesh when
// no selector is given.
func selectMesh(a *asset.Asset, selector string) (*asset.Mesh, error) {
	if selector == "" {
		for _, m := range a.Meshes {
			if m.Skinned() {
				return m, nil
			}
		}
		if len(a.Meshes) > 0 {
			return a.Meshes[0], nil
		}
		return nil, fmt.Errorf("asset has no meshes")
	}

	if m := a.Mesh(selector); m != nil {
		return m, nil
	}
	if i, err := strconv.Atoi(selector); err == nil && i >= 0 && i < len(a.Meshes) {
		return a.Meshes[i], nil
	}
	return nil, fmt.Errorf("mesh %q not found", selector)
}

func cmdInfo(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: glbtool info <file.glb>")
	}

	a, err := loadAsset(cfg, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("File:    %s\n", args[0])
	fmt.Printf("Asset:   %s\n", a.ID)
	fmt.Printf("Version: %d\n", a.Header.Version)
	fmt.Printf("Size:    %.2f KB\n", float64(a.Header.Length)/1024)
	fmt.Printf("Meshes:  %d\n", len(a.Meshes))

	for _, m := range a.Meshes {
		printMesh(m)
	}
	return nil
}

func printMesh(m *asset.Mesh) {
	fmt.Println()
	fmt.Printf("[%d] %s\n", m.ID, m.Name)
	fmt.Printf("  Vertices:   %d\n", m.VertexCount())
	fmt.Printf("  Triangles:  %d\n", len(m.Indices)/3)

	var attrs []string
	for _, a := range []struct {
		name string
		n    int
	}{
		{"normal", len(m.Normals)},
		{"tangent", len(m.Tangents)},
		{"uv", len(m.UVs)},
		{"joints", len(m.Joints)},
		{"weights", len(m.Weights)},
	} {
		if a.n > 0 {
			attrs = append(attrs, a.name)
		}
	}
	fmt.Printf("  Attributes: %s\n", strings.Join(attrs, ", "))

	t, r, s := m.Scene.Translation, m.Scene.Rotation, m.Scene.Scale
	fmt.Printf("  Transform:  T(%.3g, %.3g, %.3g) R(%.3g, %.3g, %.3g, %.3g) S(%.3g, %.3g, %.3g)\n",
		t[0], t[1], t[2], r[0], r[1], r[2], r[3], s[0], s[1], s[2])

	if m.Skinned() {
		fmt.Printf("  Joints:     %d\n", len(m.Skin))
	}
	if frames := m.Animations.FrameCount(); frames > 0 {
		fmt.Printf("  Animation:  %d tracks, %d frames\n", len(m.Animations), frames)
	}

	printTexture("Albedo", m.Textures.Albedo)
	printTexture("Normal", m.Textures.Normal)
}

func cmdJoints(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: glbtool joints <file.glb> [mesh]")
	}

	a, err := loadAsset(cfg, args[0])
	if err != nil {
		return err
	}
	selector := ""
	if len(args) > 1 {
		selector = args[1]
	}
	m, err := selectMesh(a, selector)
	if err != nil {
		return err
	}
	if !m.Skinned() {
		return fmt.Errorf("mesh %q has no skin", m.Name)
	}

	fmt.Printf("Mesh %s: %d joints\n\n", m.Name, len(m.Skin))
	fmt.Printf("%-5s %-5s %-6s %-6s %-24s %s\n", "SLOT", "JOINT", "PARENT", "NODE", "NAME", "POSITION")
	for i, j := range m.Skin {
		name := j.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Printf("%-5d %-5d %-6d %-6d %-24s (%.3f, %.3f, %.3f)\n",
			i, j.JointNum, j.Parent, j.Node, name, j.Position[0], j.Position[1], j.Position[2])
	}
	return nil
}
