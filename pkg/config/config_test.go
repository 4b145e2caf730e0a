package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/raidflow/raidflow/internal/model"
	"github.com/raidflow/raidflow/pkg/decode"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if cfg.Layout() != decode.LayoutV2 {
		t.Errorf("default layout = %v", cfg.Layout())
	}
	if cfg.Encounters.WipeTimeout != 120 {
		t.Errorf("default wipe timeout = %v", cfg.Encounters.WipeTimeout)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", `
log:
  layout: v1
  logger_name: Kaelen
encounters:
  min_length: 30
  include_attempts: true
output:
  format: xlsx
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Layout != "v1" || cfg.Log.LoggerName != "Kaelen" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Encounters.MinLength != 30 || !cfg.Encounters.IncludeAttempts {
		t.Errorf("encounters = %+v", cfg.Encounters)
	}
	// Unset fields keep their defaults.
	if cfg.Encounters.WipeTimeout != 120 {
		t.Errorf("wipe timeout = %v, want default", cfg.Encounters.WipeTimeout)
	}
	if cfg.Output.Dir != "raidflow-out" || cfg.Output.Format != "xlsx" {
		t.Errorf("output = %+v", cfg.Output)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Layout != "v2" {
		t.Errorf("layout = %q", cfg.Log.Layout)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad layout", func(c *Config) { c.Log.Layout = "v3" }},
		{"bad format", func(c *Config) { c.Output.Format = "pdf" }},
		{"zero timeout", func(c *Config) { c.Encounters.WipeTimeout = 0 }},
		{"negative min length", func(c *Config) { c.Encounters.MinLength = -1 }},
		{"bad hint class", func(c *Config) { c.Hints = map[string]string{"Kaelen": "necromancer"} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("want validation error")
			}
		})
	}
}

func TestResolveHints(t *testing.T) {
	hintsPath := writeFile(t, "hints.yaml", "Kaelen: mage\nThalor: paladin\n")

	cfg := Default()
	cfg.HintsFile = hintsPath
	cfg.Hints = map[string]string{"Thalor": "priest"} // inline wins

	hints, err := cfg.ResolveHints()
	if err != nil {
		t.Fatal(err)
	}
	if hints["Kaelen"] != model.ClassMage {
		t.Errorf("Kaelen = %q", hints["Kaelen"])
	}
	if hints["Thalor"] != model.ClassPriest {
		t.Errorf("Thalor = %q, want inline override", hints["Thalor"])
	}
}

func TestResolveHintsRejectsUnknownClass(t *testing.T) {
	path := writeFile(t, "hints.yaml", "Kaelen: necromancer\n")

	cfg := Default()
	cfg.HintsFile = path
	if _, err := cfg.ResolveHints(); err == nil {
		t.Error("want error for unknown class")
	}
}

func TestResolveHintsEmpty(t *testing.T) {
	hints, err := Default().ResolveHints()
	if err != nil {
		t.Fatal(err)
	}
	if hints != nil {
		t.Errorf("hints = %v, want nil", hints)
	}
}
