// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package ignore filters fields out of reconciliation by rule. Ignored
// fields are reported separately, never silently dropped.
package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"field-recon/internal/field"
)

// Rule matches fields by exact path, exact label (case-insensitive), or a
// trailing-* prefix pattern on either. At least one selector must be set.
type Rule struct {
	Path   string `yaml:"path,omitempty"`
	Label  string `yaml:"label,omitempty"`
	Reason string `yaml:"reason,omitempty"`
}

// Config is the ignore-rule file layout.
type Config struct {
	Version string `yaml:"version"`
	Rules   []Rule `yaml:"rules"`
}

// Manager applies ignore rules to field sets.
type Manager struct {
	rules []Rule
}

// NewManager loads rules from configPath. A missing or empty path yields a
// manager with no rules rather than an error.
func NewManager(configPath string) *Manager {
	m := &Manager{}
	if configPath == "" {
		return m
	}
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return m
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return m
	}
	m.rules = cfg.Rules
	return m
}

// NewManagerFromRules builds a manager directly, used by tests and the web
// layer.
func NewManagerFromRules(rules []Rule) *Manager {
	return &Manager{rules: rules}
}

// Len returns the number of loaded rules.
func (m *Manager) Len() int {
	return len(m.rules)
}

// Filter partitions fields into kept and ignored.
func (m *Manager) Filter(fields []field.Field) (kept, ignored []field.Field) {
	if len(m.rules) == 0 {
		return fields, nil
	}
	for _, f := range fields {
		if m.matches(f) {
			ignored = append(ignored, f)
		} else {
			kept = append(kept, f)
		}
	}
	return kept, ignored
}

func (m *Manager) matches(f field.Field) bool {
	for _, r := range m.rules {
		if r.Path != "" && !patternMatch(r.Path, f.Path) {
			continue
		}
		if r.Label != "" && !patternMatch(strings.ToLower(r.Label), strings.ToLower(f.Label)) {
			continue
		}
		if r.Path == "" && r.Label == "" {
			continue
		}
		return true
	}
	return false
}

// patternMatch supports exact matches plus a single trailing-* prefix form.
func patternMatch(pattern, s string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(s, prefix)
	}
	return pattern == s
}

// Validate reports rules with no selector so authors catch dead entries.
func (c *Config) Validate() error {
	for i, r := range c.Rules {
		if r.Path == "" && r.Label == "" {
			return fmt.Errorf("ignore rule %d has neither path nor label", i)
		}
	}
	return nil
}
