package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Loader.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Loader.Workers)
	}
	if cfg.Playback.Mode != ModeWindow {
		t.Errorf("expected mode %q, got %q", ModeWindow, cfg.Playback.Mode)
	}
	if cfg.Playback.End != -1 {
		t.Errorf("expected end -1, got %d", cfg.Playback.End)
	}
	if cfg.Playback.Loop {
		t.Error("expected loop to be false by default")
	}
	if cfg.Playback.FPS != 30 {
		t.Errorf("expected fps 30, got %d", cfg.Playback.FPS)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "glbrig.yaml",
			content: `
loader:
  workers: 8
playback:
  mode: external
  start: 2
  end: 10
  loop: true
  fps: 60
logging:
  level: debug
  log_file: glbrig.log
`,
		},
		{
			name: "toml",
			file: "glbrig.toml",
			content: `
[loader]
workers = 8

[playback]
mode = "external"
start = 2
end = 10
loop = true
fps = 60

[logging]
level = "debug"
log_file = "glbrig.log"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			cfg := Default()
			if err := loadFromFile(cfg, path); err != nil {
				t.Fatalf("failed to load config: %v", err)
			}

			if cfg.Loader.Workers != 8 {
				t.Errorf("expected 8 workers, got %d", cfg.Loader.Workers)
			}
			if cfg.Playback.Mode != ModeExternal {
				t.Errorf("expected external mode, got %s", cfg.Playback.Mode)
			}
			if cfg.Playback.Start != 2 || cfg.Playback.End != 10 {
				t.Errorf("expected window 2..10, got %d..%d", cfg.Playback.Start, cfg.Playback.End)
			}
			if !cfg.Playback.Loop {
				t.Error("expected loop to be true")
			}
			if cfg.Playback.FPS != 60 {
				t.Errorf("expected fps 60, got %d", cfg.Playback.FPS)
			}
			if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "glbrig.log" {
				t.Errorf("unexpected logging config %+v", cfg.Logging)
			}
		})
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "bad.yaml", "loader:\n  workers: not a number\n  invalid syntax here\n"},
		{"toml", "bad.toml", "[loader\nworkers = = 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), path); err == nil {
				t.Error("expected error loading invalid config, got nil")
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"external mode", func(c *Config) { c.Playback.Mode = ModeExternal }, true},
		{"unknown mode", func(c *Config) { c.Playback.Mode = "rewind" }, false},
		{"negative start", func(c *Config) { c.Playback.Start = -3 }, false},
		{"end before start", func(c *Config) { c.Playback.Start, c.Playback.End = 5, 2 }, false},
		{"end equals start", func(c *Config) { c.Playback.Start, c.Playback.End = 5, 5 }, true},
		{"zero fps", func(c *Config) { c.Playback.FPS = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid config, got %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestPlaybackConfig_Window(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		frames     int
		wantStart  int
		wantEnd    int
	}{
		{"whole track", 0, -1, 10, 0, 10},
		{"explicit", 2, 5, 10, 2, 5},
		{"track length", 0, 10, 10, 0, 10},
		{"clamped", 0, 40, 10, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PlaybackConfig{Start: tt.start, End: tt.end}
			start, end := p.Window(tt.frames)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("expected %d..%d, got %d..%d", tt.wantStart, tt.wantEnd, start, end)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("glbrig.toml", []byte("[loader]\nworkers = 2\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path != "./glbrig.toml" {
		t.Errorf("expected ./glbrig.toml, got %q", path)
	}

	if err := os.WriteFile("glbrig.yaml", []byte("loader:\n  workers: 2\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path != "./glbrig.yaml" {
		t.Errorf("expected yaml to take priority, got %q", path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "workers flag",
			setup: func() { *flagWorkers = 16 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Loader.Workers != 16 {
					t.Errorf("expected 16 workers, got %d", cfg.Loader.Workers)
				}
			},
			teardown: func() { *flagWorkers = 0 },
		},
		{
			name:  "mode and loop flags",
			setup: func() { *flagMode, *flagLoop = ModeExternal, true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Playback.Mode != ModeExternal || !cfg.Playback.Loop {
					t.Errorf("unexpected playback %+v", cfg.Playback)
				}
			},
			teardown: func() { *flagMode, *flagLoop = "", false },
		},
		{
			name:  "window flags",
			setup: func() { *flagStart, *flagEnd, *flagFPS = 3, 7, 24 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Playback.Start != 3 || cfg.Playback.End != 7 || cfg.Playback.FPS != 24 {
					t.Errorf("unexpected playback %+v", cfg.Playback)
				}
			},
			teardown: func() { *flagStart, *flagEnd, *flagFPS = -1, -1, 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
loader:
  workers: 6
playback:
  fps: 50
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWorkers = 12
	defer func() {
		*flagConfig = ""
		*flagWorkers = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Loader.Workers != 12 {
		t.Errorf("expected 12 workers from flag, got %d", cfg.Loader.Workers)
	}
	if cfg.Playback.FPS != 50 {
		t.Errorf("expected fps 50 from file, got %d", cfg.Playback.FPS)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	*flagMode = "sideways"
	defer func() { *flagMode = "" }()
	path := filepath.Join(t.TempDir(), "glbrig.yaml")
	if err := os.WriteFile(path, []byte("loader:\n  workers: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	*flagConfig = path
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "glbrig.yaml")

	cfg := Default()
	cfg.Playback.Mode = ModeExternal
	cfg.Loader.Workers = 2
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Playback.Mode != ModeExternal || loaded.Loader.Workers != 2 {
		t.Errorf("unexpected reloaded config %+v", loaded)
	}
}
