// Package config loads and provides host-level configuration for a
// terminal core instance: the knobs that sit above the Screen/backend/
// driver themselves (scrollback depth, default shell, startup geometry).
//
// On first run a default YAML config is written to ~/.vtcore.yaml.
// Subsequent runs read and merge that file with built-in defaults.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user-configurable settings for hosting a terminal core.
type Config struct {
	// DefaultShell is the argv used when a caller starts a backend without
	// specifying a command. Empty means derive from $SHELL.
	DefaultShell []string `yaml:"default_shell"`

	// ScrollbackLines bounds how many evicted rows the scrollback provider
	// retains (the history_limit the Screen enforces eviction against).
	ScrollbackLines int `yaml:"scrollback_lines"`

	// InitialRows and InitialCols hold a startup geometry. They are loaded
	// and validated here; driver.ProcessDriver does not read them and always
	// starts at 24 rows by 120 columns.
	InitialRows int `yaml:"initial_rows"`
	InitialCols int `yaml:"initial_cols"`

	// MouseProtocol names the default mouse wire encoding used before any
	// DECSET override: "x10", "utf8", "sgr", or "urxvt".
	MouseProtocol string `yaml:"mouse_protocol"`

	// BackpressureSeconds holds a pause for an unfocused pane's reader
	// between drains. It is loaded and validated here; driver.ProcessDriver
	// does not read it and always pauses for one second.
	BackpressureSeconds float64 `yaml:"backpressure_seconds"`
}

// DefaultConfig returns the built-in defaults, matching the geometry and
// timing the spec calls for.
func DefaultConfig() Config {
	return Config{
		DefaultShell:        nil,
		ScrollbackLines:     10000,
		InitialRows:         24,
		InitialCols:         120,
		MouseProtocol:       "x10",
		BackpressureSeconds: 1,
	}
}

func configPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vtcore.yaml")
}

// Load reads the config file, falling back to defaults for missing or
// out-of-range fields. Never returns an error: a malformed or absent file
// is treated the same as "no overrides".
func Load() Config {
	cfg := DefaultConfig()

	p := configPath()
	if p == "" {
		return cfg
	}

	data, err := os.ReadFile(p)
	if err != nil {
		writeDefaults(p, cfg)
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	if cfg.InitialRows < 1 {
		cfg.InitialRows = DefaultConfig().InitialRows
	}
	if cfg.InitialCols < 1 {
		cfg.InitialCols = DefaultConfig().InitialCols
	}
	if cfg.ScrollbackLines < 0 {
		cfg.ScrollbackLines = 0
	}
	if cfg.BackpressureSeconds <= 0 {
		cfg.BackpressureSeconds = DefaultConfig().BackpressureSeconds
	}

	switch cfg.MouseProtocol {
	case "x10", "utf8", "sgr", "urxvt":
	default:
		cfg.MouseProtocol = "x10"
	}

	return cfg
}

func writeDefaults(path string, cfg Config) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return
	}
	header := []byte("# vtcore configuration\n# Edit this file to customise defaults.\n\n")
	_ = os.WriteFile(path, append(header, data...), 0644)
}
