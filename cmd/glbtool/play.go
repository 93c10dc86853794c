package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/glbrig/internal/armature"
	"github.com/Faultbox/glbrig/internal/asset"
	"github.com/Faultbox/glbrig/internal/config"
	"github.com/Faultbox/glbrig/internal/logger"
	"github.com/Faultbox/glbrig/internal/watch"
)

func cmdPlay(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	frames := fs.Int("frames", 0, "Render frames to simulate (0 = one pass over the window)")
	all := fs.Bool("all", false, "Print every slot instead of the first one")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: glbtool play [-frames N] <file.glb> [mesh]")
	}

	a, err := loadAsset(cfg, fs.Arg(0))
	if err != nil {
		return err
	}
	m, err := selectMesh(a, fs.Arg(1))
	if err != nil {
		return err
	}
	if !m.Skinned() {
		return fmt.Errorf("mesh %q has no skin", m.Name)
	}

	rig := armature.New(armature.WithMode(playbackMode(cfg.Playback)))
	rig.LoadJoints(m.Skin)
	rig.SetAnimations(m.Animations)

	count := rig.FrameCount()
	if count == 0 {
		return fmt.Errorf("mesh %q has no animation", m.Name)
	}
	start, end := cfg.Playback.Window(count)
	rig.Play(start, end, cfg.Playback.Loop)

	n := *frames
	if n <= 0 {
		n = max(end-start, 1)
	}
	frameTime := time.Second / time.Duration(cfg.Playback.FPS)

	fmt.Printf("Mesh %s: %d joints, %d frames, window %d..%d, mode %s, loop %v\n",
		m.Name, len(m.Skin), count, start, end, rig.Mode(), cfg.Playback.Loop)

	for i := range n {
		rig.Tick(start + i)

		offsets := rig.OffsetMatrices()
		fmt.Printf("\nframe %d (t=%s)\n", i, time.Duration(i)*frameTime)
		for slot, off := range offsets {
			if slot > 0 && !*all {
				break
			}
			fmt.Printf("  slot %-3d [% .3f % .3f % .3f % .3f]\n", slot, off[0], off[4], off[8], off[12])
			fmt.Printf("           [% .3f % .3f % .3f % .3f]\n", off[1], off[5], off[9], off[13])
			fmt.Printf("           [% .3f % .3f % .3f % .3f]\n", off[2], off[6], off[10], off[14])
		}
	}
	return nil
}

// playbackMode maps the configured mode name to an armature mode.
func playbackMode(p config.PlaybackConfig) armature.PlaybackMode {
	if p.Mode == config.ModeExternal {
		return armature.PlaybackExternal
	}
	return armature.PlaybackWindow
}

func cmdWatch(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: glbtool watch <file.glb>")
	}
	path := args[0]

	cache := asset.NewCache(asset.WithWorkers(cfg.Loader.Workers))
	a, err := cache.Get(path)
	if err != nil {
		return err
	}
	summarize(a)

	w, err := watch.New(func(changed string) {
		a, err := cache.Reload(changed)
		if err != nil {
			logger.Warn("reload failed", zap.String("path", changed), zap.Error(err))
			return
		}
		summarize(a)
	})
	if err != nil {
		return err
	}
	if err := w.Add(path); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("watching", zap.String("path", path))
	return w.Run(ctx)
}

func summarize(a *asset.Asset) {
	joints, tracks := 0, 0
	for _, m := range a.Meshes {
		joints += len(m.Skin)
		tracks += len(m.Animations)
	}
	fmt.Printf("%s  asset %s: %d meshes, %d joints, %d tracks\n",
		time.Now().Format("15:04:05"), a.ID, len(a.Meshes), joints, tracks)
}
