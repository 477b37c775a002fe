// Package config reads and writes rosa.yaml, the project configuration:
// where the source CSV lives, where the API listens, and the ordered
// category rule table.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rosa-dev/rosa/internal/rules"
)

// DefaultPath is the config filename looked up in the working directory.
const DefaultPath = "rosa.yaml"

// Config is the top-level rosa.yaml structure. Categories is a list, not
// a map, so the rule order in the file is the order the categorizer
// scans.
type Config struct {
	Source     string       `yaml:"source"`
	Server     ServerConfig `yaml:"server"`
	Categories []rules.Rule `yaml:"categories"`
}

// ServerConfig holds the API server settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads a rosa.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the built-in rule table and local
// defaults for a new project.
func Default() *Config {
	return &Config{
		Source:     "transactions.csv",
		Server:     ServerConfig{Addr: ":8080"},
		Categories: rules.DefaultRules(),
	}
}

// LoadOrDefault loads path if it exists and falls back to Default
// otherwise. Environment overrides are applied either way.
func LoadOrDefault(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		cfg, err = Load(path)
		if err != nil {
			return nil, err
		}
		if len(cfg.Categories) == 0 {
			cfg.Categories = rules.DefaultRules()
		}
	}
	ApplyEnv(cfg)
	return cfg, nil
}

// ApplyEnv overlays ROSA_SOURCE and ROSA_ADDR onto cfg. A .env file in
// the working directory is read first when present.
func ApplyEnv(cfg *Config) {
	_ = godotenv.Load()
	if v := os.Getenv("ROSA_SOURCE"); v != "" {
		cfg.Source = v
	}
	if v := os.Getenv("ROSA_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
}

// Table builds the rule table from the configured categories.
func (c *Config) Table() *rules.Table {
	return rules.NewTable(c.Categories)
}
