// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"fmt"

	"field-recon/internal/core"
	"field-recon/internal/field"
	"field-recon/internal/formatters"
	"field-recon/internal/reconcile"
)

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Machine-readable JSON output for programmatic consumers"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

type entry struct {
	Key            string            `json:"key"`
	ConfidenceBand string            `json:"confidence_band"`
	Labels         field.MatchResult `json:"labels"`
	Values         field.MatchResult `json:"values"`
	Format         field.MatchResult `json:"format"`
	Font           field.MatchResult `json:"font"`
}

type ignoredField struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

type report struct {
	Summary  reconcile.Summary `json:"summary"`
	Entries  []entry           `json:"entries"`
	Sections []string          `json:"sections,omitempty"`
	Ignored  []ignoredField    `json:"ignored,omitempty"`
}

func (f *Formatter) Format(run *core.RunResult, options formatters.FormatterOptions) (string, error) {
	rows := formatters.FilterRows(formatters.Rows(run.Result), options)

	out := report{
		Summary: run.Summary,
		Entries: make([]entry, 0, len(rows)),
	}
	for _, row := range rows {
		out.Entries = append(out.Entries, entry{
			Key:            row.Key,
			ConfidenceBand: core.ConfidenceBand(row.Match.Labels.Confidence),
			Labels:         row.Match.Labels,
			Values:         row.Match.Values,
			Format:         row.Match.Format,
			Font:           row.Match.Font,
		})
	}
	for _, s := range run.Sections {
		out.Sections = append(out.Sections, s.Label)
	}
	for _, ig := range run.Ignored {
		out.Ignored = append(out.Ignored, ignoredField{Path: ig.Path, Label: ig.Label})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling reconciliation report: %w", err)
	}
	return string(data), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
