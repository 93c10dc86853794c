// Package config handles glbrig configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Playback mode names.
const (
	ModeWindow   = "window"
	ModeExternal = "external"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	Loader   LoaderConfig   `yaml:"loader" toml:"loader"`
	Playback PlaybackConfig `yaml:"playback" toml:"playback"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// LoaderConfig holds asset decoding settings.
type LoaderConfig struct {
	Workers int `yaml:"workers" toml:"workers"` // Parallel mesh decoders, <= 1 decodes sequentially
}

// PlaybackConfig holds armature playback settings.
type PlaybackConfig struct {
	Mode  string `yaml:"mode" toml:"mode"`   // "window" or "external"
	Start int    `yaml:"start" toml:"start"` // First frame of the window
	End   int    `yaml:"end" toml:"end"`     // Frame the window wraps or holds at, -1 for the frame count
	Loop  bool   `yaml:"loop" toml:"loop"`
	FPS   int    `yaml:"fps" toml:"fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Loader: LoaderConfig{
			Workers: 4,
		},
		Playback: PlaybackConfig{
			Mode:  ModeWindow,
			Start: 0,
			End:   -1,
			Loop:  false,
			FPS:   30,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings that cannot be applied.
func (c *Config) Validate() error {
	switch c.Playback.Mode {
	case ModeWindow, ModeExternal:
	default:
		return fmt.Errorf("%w: unknown playback mode %q", ErrInvalidConfig, c.Playback.Mode)
	}
	if c.Playback.Start < 0 {
		return fmt.Errorf("%w: negative playback start %d", ErrInvalidConfig, c.Playback.Start)
	}
	if c.Playback.End >= 0 && c.Playback.End < c.Playback.Start {
		return fmt.Errorf("%w: playback end %d before start %d", ErrInvalidConfig, c.Playback.End, c.Playback.Start)
	}
	if c.Playback.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.Playback.FPS)
	}
	return nil
}

// Window resolves the playback window against a frame count. End -1, or
// an end past the last sample, becomes frameCount so every sample plays.
func (p PlaybackConfig) Window(frameCount int) (start, end int) {
	end = p.End
	if end < 0 || end > frameCount {
		end = frameCount
	}
	return p.Start, end
}
