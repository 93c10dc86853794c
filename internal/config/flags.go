package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagWorkers = flag.Int("workers", 0, "Parallel mesh decoders")
	flagMode    = flag.String("mode", "", "Playback mode: window or external")
	flagLoop    = flag.Bool("loop", false, "Loop the playback window")
	flagFPS     = flag.Int("fps", 0, "Playback frames per second")
	flagStart   = flag.Int("start", -1, "First frame of the playback window")
	flagEnd     = flag.Int("end", -1, "Frame the playback window wraps or holds at")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWorkers > 0 {
		cfg.Loader.Workers = *flagWorkers
	}
	if *flagMode != "" {
		cfg.Playback.Mode = *flagMode
	}
	if *flagLoop {
		cfg.Playback.Loop = true
	}
	if *flagFPS > 0 {
		cfg.Playback.FPS = *flagFPS
	}
	if *flagStart >= 0 {
		cfg.Playback.Start = *flagStart
	}
	if *flagEnd >= 0 {
		cfg.Playback.End = *flagEnd
	}
}
