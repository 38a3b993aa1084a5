package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	d := Default()
	if d.Budget <= 0 {
		t.Errorf("expected a positive default budget, got %d", d.Budget)
	}
	if d.OutputPath == "" {
		t.Errorf("expected a default output path")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "budget: 50\noutput_path: custom.random.json\nseed: 7\noracle_timeout: 10s\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Budget != 50 {
		t.Errorf("expected budget 50, got %d", cfg.Budget)
	}
	if cfg.OutputPath != "custom.random.json" {
		t.Errorf("expected custom output path, got %s", cfg.OutputPath)
	}
	if cfg.Seed != 7 {
		t.Errorf("expected seed 7, got %d", cfg.Seed)
	}
	if cfg.OracleTimeout != 10*time.Second {
		t.Errorf("expected 10s oracle timeout, got %v", cfg.OracleTimeout)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected an error loading a missing config file")
	}
}
