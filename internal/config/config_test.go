package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestLoadConfigFromBytes_YAML(t *testing.T) {
	yamlConfig := `
engine:
  tickIntervalMs: 16
  defaultEasing: easeOutCubic
  minWidth: 50

logging:
  level: debug
`
	cfg, err := LoadConfigFromBytes([]byte(yamlConfig), "yaml")
	if err != nil {
		t.Fatalf("LoadConfigFromBytes() error: %v", err)
	}

	if cfg.Engine.TickIntervalMs != 16 {
		t.Errorf("Engine.TickIntervalMs = %d, want 16", cfg.Engine.TickIntervalMs)
	}
	if cfg.Engine.DefaultEasing != "easeOutCubic" {
		t.Errorf("Engine.DefaultEasing = %q, want %q", cfg.Engine.DefaultEasing, "easeOutCubic")
	}
	// unset keys keep defaults
	if cfg.Engine.Tolerance != 5 {
		t.Errorf("Engine.Tolerance = %d, want 5", cfg.Engine.Tolerance)
	}
	if cfg.Engine.UserBoundsTimeoutMs != 2000 {
		t.Errorf("Engine.UserBoundsTimeoutMs = %d, want 2000", cfg.Engine.UserBoundsTimeoutMs)
	}
	if cfg.Backend.Kind != BackendMemory {
		t.Errorf("Backend.Kind = %q, want %q", cfg.Backend.Kind, BackendMemory)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadConfigFromBytes_JSON(t *testing.T) {
	jsonConfig := `{
  "engine": {
    "tolerance": 0,
    "userBoundsTimeoutMs": 0
  },
  "backend": {"kind": "x11"}
}`
	cfg, err := LoadConfigFromBytes([]byte(jsonConfig), "json")
	if err != nil {
		t.Fatalf("LoadConfigFromBytes() error: %v", err)
	}

	if cfg.Engine.Tolerance != 0 {
		t.Errorf("Engine.Tolerance = %d, want 0", cfg.Engine.Tolerance)
	}
	if cfg.Backend.Kind != BackendX11 {
		t.Errorf("Backend.Kind = %q, want %q", cfg.Backend.Kind, BackendX11)
	}
}

func TestLoadConfigFromBytes_BadFormat(t *testing.T) {
	if _, err := LoadConfigFromBytes([]byte("engine: {}"), "toml"); err == nil {
		t.Error("expected error for unsupported format")
	}
	if _, err := LoadConfigFromBytes([]byte("engine: ["), "yaml"); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero tick", func(c *Config) { c.Engine.TickIntervalMs = 0 }},
		{"negative tolerance", func(c *Config) { c.Engine.Tolerance = -1 }},
		{"negative timeout", func(c *Config) { c.Engine.UserBoundsTimeoutMs = -5 }},
		{"unknown easing", func(c *Config) { c.Engine.DefaultEasing = "wobble" }},
		{"min width over max", func(c *Config) { c.Engine.MinWidth, c.Engine.MaxWidth = 500, 100 }},
		{"min height over max", func(c *Config) { c.Engine.MinHeight, c.Engine.MaxHeight = 500, 100 }},
		{"negative min", func(c *Config) { c.Engine.MinHeight = -1 }},
		{"unknown backend", func(c *Config) { c.Backend.Kind = "wayland" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() = nil, want error")
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "gridsync.yml")
	if err := os.WriteFile(path, []byte("engine:\n  tolerance: 9\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Engine.Tolerance != 9 {
		t.Errorf("Engine.Tolerance = %d, want 9", cfg.Engine.Tolerance)
	}

	bad := filepath.Join(dir, "gridsync.ini")
	os.WriteFile(bad, []byte("x=1"), 0644)
	if _, err := LoadConfig(bad); err == nil {
		t.Error("expected error for .ini config")
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for explicit missing path")
	}
}

func TestLoadConfigDefaultPathFallsBack(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error: %v", err)
	}
	if cfg.Engine.TickIntervalMs != 25 {
		t.Errorf("Engine.TickIntervalMs = %d, want 25", cfg.Engine.TickIntervalMs)
	}
}

func TestManagerOptions(t *testing.T) {
	cfg := Default()
	cfg.Engine.TickIntervalMs = 10
	cfg.Engine.UserBoundsTimeoutMs = 0
	cfg.Engine.MinWidth = 20

	opts := cfg.ManagerOptions()
	if opts.TickInterval != 10*time.Millisecond {
		t.Errorf("TickInterval = %v, want 10ms", opts.TickInterval)
	}
	if opts.UserBoundsTimeout != 0 {
		t.Errorf("UserBoundsTimeout = %v, want 0", opts.UserBoundsTimeout)
	}
	if opts.Limits.MinWidth != 20 {
		t.Errorf("Limits.MinWidth = %d, want 20", opts.Limits.MinWidth)
	}
	if opts.Scheduler == nil {
		t.Errorf("Scheduler = nil, want real scheduler")
	}
}
