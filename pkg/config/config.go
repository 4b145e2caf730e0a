// Package config provides layered configuration for the raidflow CLI.
// Priority: defaults < config file < flags.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/raidflow/raidflow/internal/model"
	"github.com/raidflow/raidflow/pkg/decode"
	"github.com/raidflow/raidflow/pkg/segment"
)

// Config holds all raidflow configuration.
type Config struct {
	Version int `yaml:"version"`

	Log        LogConfig       `yaml:"log"`
	Encounters EncounterConfig `yaml:"encounters"`
	Output     OutputConfig    `yaml:"output"`
	Telemetry  TelemetryConfig `yaml:"telemetry"`

	// Hints maps actor name to class and overrides inference. HintsFile
	// points at a separate YAML map merged in addition to inline hints.
	Hints     map[string]string `yaml:"hints"`
	HintsFile string            `yaml:"hints_file"`
}

// LogConfig controls how the combat log is decoded.
type LogConfig struct {
	Layout     string `yaml:"layout"`      // "v1" | "v2"
	LoggerName string `yaml:"logger_name"` // owner of first-person pronouns in v1 logs
	Rescan     bool   `yaml:"rescan"`      // re-read the source per encounter instead of buffering
}

// EncounterConfig controls segmentation and filtering.
type EncounterConfig struct {
	MinLength       float64  `yaml:"min_length"`       // seconds; shorter encounters are dropped
	IncludeAttempts bool     `yaml:"include_attempts"` // keep wipes, not just kills
	WipeTimeout     float64  `yaml:"wipe_timeout"`     // seconds of boss inactivity before a wipe
	Bosses          []string `yaml:"bosses"`           // replaces the builtin boss registry when set
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // "csv" | "xlsx" | "both"
}

// TelemetryConfig for optional trace export.
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
	Insecure bool   `yaml:"insecure"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: 1,
		Log: LogConfig{
			Layout: "v2",
		},
		Encounters: EncounterConfig{
			WipeTimeout: segment.DefaultWipeTimeout,
		},
		Output: OutputConfig{
			Dir:    "raidflow-out",
			Format: "csv",
		},
		Telemetry: TelemetryConfig{
			Enabled:  false,
			Endpoint: "localhost:4317",
			Insecure: true,
		},
	}
}

// Load returns the defaults merged with the given config file. An empty
// path or a missing file yields plain defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var partial Config
	if err := yaml.Unmarshal(data, &partial); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.merge(&partial)
	return cfg, nil
}

// merge overlays non-zero values from src.
func (c *Config) merge(src *Config) {
	if src.Version != 0 {
		c.Version = src.Version
	}

	if src.Log.Layout != "" {
		c.Log.Layout = src.Log.Layout
	}
	if src.Log.LoggerName != "" {
		c.Log.LoggerName = src.Log.LoggerName
	}
	if src.Log.Rescan {
		c.Log.Rescan = true
	}

	if src.Encounters.MinLength != 0 {
		c.Encounters.MinLength = src.Encounters.MinLength
	}
	if src.Encounters.IncludeAttempts {
		c.Encounters.IncludeAttempts = true
	}
	if src.Encounters.WipeTimeout != 0 {
		c.Encounters.WipeTimeout = src.Encounters.WipeTimeout
	}
	if len(src.Encounters.Bosses) > 0 {
		c.Encounters.Bosses = src.Encounters.Bosses
	}

	if src.Output.Dir != "" {
		c.Output.Dir = src.Output.Dir
	}
	if src.Output.Format != "" {
		c.Output.Format = src.Output.Format
	}

	if src.Telemetry.Enabled {
		c.Telemetry.Enabled = true
	}
	if src.Telemetry.Endpoint != "" {
		c.Telemetry.Endpoint = src.Telemetry.Endpoint
	}
	if src.Telemetry.Insecure {
		c.Telemetry.Insecure = true
	}

	if len(src.Hints) > 0 {
		if c.Hints == nil {
			c.Hints = make(map[string]string, len(src.Hints))
		}
		for k, v := range src.Hints {
			c.Hints[k] = v
		}
	}
	if src.HintsFile != "" {
		c.HintsFile = src.HintsFile
	}
}

// Validate checks the configuration for values no command could act on.
func (c *Config) Validate() error {
	if _, err := decode.ParseLayout(c.Log.Layout); err != nil {
		return fmt.Errorf("log.layout: %w", err)
	}
	switch c.Output.Format {
	case "csv", "xlsx", "both":
	default:
		return fmt.Errorf("output.format: unknown format %q", c.Output.Format)
	}
	if c.Encounters.WipeTimeout <= 0 {
		return fmt.Errorf("encounters.wipe_timeout: must be positive, got %v", c.Encounters.WipeTimeout)
	}
	if c.Encounters.MinLength < 0 {
		return fmt.Errorf("encounters.min_length: must not be negative, got %v", c.Encounters.MinLength)
	}
	for name, class := range c.Hints {
		if !model.ValidClassTag(class) {
			return fmt.Errorf("hints: unknown class %q for %q", class, name)
		}
	}
	return nil
}

// Layout returns the parsed log layout. Call Validate first.
func (c *Config) Layout() decode.Layout {
	layout, _ := decode.ParseLayout(c.Log.Layout)
	return layout
}

// ResolveHints combines the hints file and inline hints into the class
// override map the classifier consumes. Inline hints win on conflict.
func (c *Config) ResolveHints() (map[string]model.ClassTag, error) {
	merged := make(map[string]string)

	if c.HintsFile != "" {
		data, err := os.ReadFile(c.HintsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read hints %s: %w", c.HintsFile, err)
		}
		if err := yaml.Unmarshal(data, &merged); err != nil {
			return nil, fmt.Errorf("failed to parse hints %s: %w", c.HintsFile, err)
		}
	}
	for name, class := range c.Hints {
		merged[name] = class
	}
	if len(merged) == 0 {
		return nil, nil
	}

	hints := make(map[string]model.ClassTag, len(merged))
	for name, class := range merged {
		if !model.ValidClassTag(class) {
			return nil, fmt.Errorf("hints: unknown class %q for %q", class, name)
		}
		hints[name] = model.ClassTag(class)
	}
	return hints, nil
}
