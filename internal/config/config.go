// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults holds the baseline settings shared by every run.
type Defaults struct {
	Format           string `yaml:"format"`
	Mode             string `yaml:"mode"`
	ConfidenceLevels string `yaml:"confidence_levels"`
	Verbose          bool   `yaml:"verbose"`
	Debug            bool   `yaml:"debug"`
	NoColor          bool   `yaml:"no_color"`
	IgnoreFile       string `yaml:"ignore_file"`
}

// Profile overrides defaults for a named reconciliation scenario.
type Profile struct {
	Format           string `yaml:"format"`
	Mode             string `yaml:"mode"`
	ConfidenceLevels string `yaml:"confidence_levels"`
	Verbose          bool   `yaml:"verbose"`
	NoColor          bool   `yaml:"no_color"`
	IgnoreFile       string `yaml:"ignore_file"`
	Description      string `yaml:"description"`
}

// Config represents the application configuration.
type Config struct {
	Defaults Defaults           `yaml:"defaults"`
	Profiles map[string]Profile `yaml:"profiles"`
}

var validFormats = map[string]bool{"text": true, "json": true, "csv": true, "yaml": true}
var validModes = map[string]bool{"": true, "assignment": true, "nearest": true}

// Load reads configuration from configPath, falling back to defaults when
// the path is empty.
func Load(configPath string) (*Config, error) {
	cfg := &Config{Profiles: make(map[string]Profile)}
	cfg.Defaults.Format = "text"
	cfg.Defaults.Mode = "assignment"
	cfg.Defaults.ConfidenceLevels = "all"

	// A review-oriented profile ships by default: only confident matches
	// surface during final QA passes.
	cfg.Profiles["review"] = Profile{
		Format:           "text",
		Mode:             "assignment",
		ConfidenceLevels: "high,medium",
		Description:      "Quality review: assignment mode, confident matches only",
	}

	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks format and mode values in defaults and all profiles.
func Validate(cfg *Config) error {
	if !validFormats[cfg.Defaults.Format] {
		return fmt.Errorf("invalid default format %q", cfg.Defaults.Format)
	}
	if !validModes[cfg.Defaults.Mode] {
		return fmt.Errorf("invalid default mode %q", cfg.Defaults.Mode)
	}
	for name, p := range cfg.Profiles {
		if p.Format != "" && !validFormats[p.Format] {
			return fmt.Errorf("profile %q: invalid format %q", name, p.Format)
		}
		if !validModes[p.Mode] {
			return fmt.Errorf("profile %q: invalid mode %q", name, p.Mode)
		}
	}
	return nil
}

// FindConfigFile looks for a configuration file in standard locations.
func FindConfigFile() string {
	candidates := []string{
		"field-recon.yaml",
		"field-recon.yml",
		".field-recon.yaml",
		".field-recon.yml",
	}
	for _, c := range candidates {
		if fileExists(c) {
			return c
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		c := filepath.Join(home, ".config", "field-recon", "config.yaml")
		if fileExists(c) {
			return c
		}
	}
	return ""
}

// GetProfile returns a named profile from the configuration.
func (c *Config) GetProfile(name string) (*Profile, error) {
	if name == "" {
		return nil, nil
	}
	p, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile %q not found", name)
	}
	return &p, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
