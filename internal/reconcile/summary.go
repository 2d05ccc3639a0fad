// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package reconcile

import "field-recon/internal/field"

// StatusCounts tallies verdicts for one attribute across a result.
type StatusCounts struct {
	Exact   int `json:"exact"`
	Partial int `json:"partial"`
	None    int `json:"none"`
	Empty   int `json:"empty"`
}

func (c *StatusCounts) add(status field.MatchStatus) {
	switch status {
	case field.StatusExact:
		c.Exact++
	case field.StatusPartial:
		c.Partial++
	case field.StatusNone:
		c.None++
	case field.StatusEmpty:
		c.Empty++
	}
}

// Summary aggregates per-attribute verdict counts for the rendering layer.
type Summary struct {
	Total   int          `json:"total"`
	Matched int          `json:"matched"`
	Labels  StatusCounts `json:"labels"`
	Values  StatusCounts `json:"values"`
	Format  StatusCounts `json:"format"`
	Font    StatusCounts `json:"font"`
}

// Summarize computes the summary counts over a reconciliation result. An
// entry counts as matched when both sides of its label comparison are
// populated.
func Summarize(result field.ReconciliationResult) Summary {
	var s Summary
	s.Total = len(result)
	for _, entry := range result {
		s.Labels.add(entry.Labels.Status)
		s.Values.add(entry.Values.Status)
		s.Format.add(entry.Format.Status)
		s.Font.add(entry.Font.Status)
		if entry.Labels.SourceValue != "" && entry.Labels.TargetValue != "" {
			s.Matched++
		}
	}
	return s
}
