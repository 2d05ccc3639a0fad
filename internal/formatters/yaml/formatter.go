// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package yaml

import (
	"fmt"

	"field-recon/internal/core"
	"field-recon/internal/field"
	"field-recon/internal/formatters"
	"field-recon/internal/reconcile"

	goyaml "gopkg.in/yaml.v3"
)

// Formatter implements YAML output formatting
type Formatter struct{}

// NewFormatter creates a new YAML formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "yaml"
}

func (f *Formatter) Description() string {
	return "YAML output suitable for config-style review and diffing"
}

func (f *Formatter) FileExtension() string {
	return ".yaml"
}

type matchResult struct {
	Status      string `yaml:"status"`
	Confidence  int    `yaml:"confidence"`
	SourceValue string `yaml:"source_value,omitempty"`
	TargetValue string `yaml:"target_value,omitempty"`
}

type entry struct {
	Key            string      `yaml:"key"`
	ConfidenceBand string      `yaml:"confidence_band"`
	Labels         matchResult `yaml:"labels"`
	Values         matchResult `yaml:"values"`
	Format         matchResult `yaml:"format"`
	Font           matchResult `yaml:"font"`
}

type statusCounts struct {
	Exact   int `yaml:"exact"`
	Partial int `yaml:"partial"`
	None    int `yaml:"none"`
	Empty   int `yaml:"empty"`
}

type summary struct {
	Total   int          `yaml:"total"`
	Matched int          `yaml:"matched"`
	Labels  statusCounts `yaml:"labels"`
	Values  statusCounts `yaml:"values"`
	Format  statusCounts `yaml:"format"`
	Font    statusCounts `yaml:"font"`
}

type report struct {
	Summary  summary  `yaml:"summary"`
	Entries  []entry  `yaml:"entries"`
	Sections []string `yaml:"sections,omitempty"`
	Ignored  []string `yaml:"ignored,omitempty"`
}

func toMatchResult(m field.MatchResult) matchResult {
	return matchResult{
		Status:      string(m.Status),
		Confidence:  m.Confidence,
		SourceValue: m.SourceValue,
		TargetValue: m.TargetValue,
	}
}

func toStatusCounts(c reconcile.StatusCounts) statusCounts {
	return statusCounts{Exact: c.Exact, Partial: c.Partial, None: c.None, Empty: c.Empty}
}

func (f *Formatter) Format(run *core.RunResult, options formatters.FormatterOptions) (string, error) {
	rows := formatters.FilterRows(formatters.Rows(run.Result), options)

	out := report{
		Summary: summary{
			Total:   run.Summary.Total,
			Matched: run.Summary.Matched,
			Labels:  toStatusCounts(run.Summary.Labels),
			Values:  toStatusCounts(run.Summary.Values),
			Format:  toStatusCounts(run.Summary.Format),
			Font:    toStatusCounts(run.Summary.Font),
		},
		Entries: make([]entry, 0, len(rows)),
	}
	for _, row := range rows {
		out.Entries = append(out.Entries, entry{
			Key:            row.Key,
			ConfidenceBand: core.ConfidenceBand(row.Match.Labels.Confidence),
			Labels:         toMatchResult(row.Match.Labels),
			Values:         toMatchResult(row.Match.Values),
			Format:         toMatchResult(row.Match.Format),
			Font:           toMatchResult(row.Match.Font),
		})
	}
	for _, s := range run.Sections {
		out.Sections = append(out.Sections, s.Label)
	}
	for _, ig := range run.Ignored {
		out.Ignored = append(out.Ignored, ig.Path)
	}

	data, err := goyaml.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("marshaling reconciliation report: %w", err)
	}
	return string(data), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
