// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package reconcile aligns two unordered field sets and scores their
// agreement. Assignment mode resolves a conflict-free 1:1 pairing by greedy
// descent over label-similarity candidates; nearest mode picks each source's
// best target independently. Both modes are pure: inputs are never mutated
// and each call recomputes the full result from scratch.
package reconcile

import (
	"sort"

	"field-recon/internal/compare"
	"field-recon/internal/field"
	"field-recon/internal/similarity"
)

// Mode selects the resolution strategy.
type Mode string

const (
	// ModeAssignment resolves a conflict-free 1:1 pairing; every field on
	// both sides is accounted for exactly once.
	ModeAssignment Mode = "assignment"
	// ModeNearest picks each source's best target independently; a target
	// may be selected by several sources or by none.
	ModeNearest Mode = "nearest"
)

// candidate is a transient (source, target) label-similarity pairing. It
// lives only for the duration of one Reconcile call.
type candidate struct {
	sourceIdx int
	targetIdx int
	labels    field.MatchResult
}

// Reconcile aligns sourceFields against targetFields and returns the verdict
// map. Every path from both input sets appears in exactly one role: matched
// (keyed by source path), unmatched-as-source, or unmatched-as-target.
func Reconcile(sourceFields, targetFields []field.Field, mode Mode) field.ReconciliationResult {
	if mode == ModeNearest {
		return reconcileNearest(sourceFields, targetFields)
	}
	return reconcileAssignment(sourceFields, targetFields)
}

func reconcileAssignment(sourceFields, targetFields []field.Field) field.ReconciliationResult {
	result := make(field.ReconciliationResult, len(sourceFields)+len(targetFields))

	candidates := generateCandidates(sourceFields, targetFields)

	// Stable sort keeps the source-major generation order on equal
	// confidence, which makes resolution deterministic.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].labels.Confidence > candidates[j].labels.Confidence
	})

	sourceTaken := make(map[int]bool, len(sourceFields))
	targetTaken := make(map[int]bool, len(targetFields))
	for _, c := range candidates {
		if sourceTaken[c.sourceIdx] || targetTaken[c.targetIdx] {
			continue
		}
		sourceTaken[c.sourceIdx] = true
		targetTaken[c.targetIdx] = true
		s := sourceFields[c.sourceIdx]
		t := targetFields[c.targetIdx]
		result[s.Path] = aggregate(s, t, c.labels)
	}

	for i, s := range sourceFields {
		if !sourceTaken[i] {
			result[s.Path] = unmatchedSource(s)
		}
	}
	for i, t := range targetFields {
		if !targetTaken[i] {
			result[t.Path] = unmatchedTarget(t)
		}
	}
	return result
}

func reconcileNearest(sourceFields, targetFields []field.Field) field.ReconciliationResult {
	result := make(field.ReconciliationResult, len(sourceFields))
	for _, s := range sourceFields {
		best := field.MatchResult{}
		bestIdx := -1
		for i, t := range targetFields {
			score := similarity.ScoreLabel(s.Label, t.Label)
			// Strict comparison keeps the first-seen target on ties.
			if score.Confidence > best.Confidence {
				best = score
				bestIdx = i
			}
		}
		if bestIdx < 0 || best.Confidence == 0 {
			result[s.Path] = unmatchedSource(s)
			continue
		}
		result[s.Path] = aggregate(s, targetFields[bestIdx], best)
	}
	return result
}

// generateCandidates scores every cross-pair and retains those with non-zero
// confidence, in source-major order.
func generateCandidates(sourceFields, targetFields []field.Field) []candidate {
	var candidates []candidate
	for si, s := range sourceFields {
		for ti, t := range targetFields {
			labels := similarity.ScoreLabel(s.Label, t.Label)
			if labels.Confidence > 0 {
				candidates = append(candidates, candidate{sourceIdx: si, targetIdx: ti, labels: labels})
			}
		}
	}
	return candidates
}

// aggregate merges the label verdict with the three attribute comparisons
// into the full verdict for one resolved pair.
func aggregate(s, t field.Field, labels field.MatchResult) field.FieldMatchResult {
	return field.FieldMatchResult{
		Labels: labels,
		Values: compare.Values(s.Value, t.Value),
		Format: compare.Formats(s.Format, t.Format),
		Font:   compare.Fonts(s.Font, t.Font),
	}
}

// unmatchedSource fabricates the verdict for a source field with no
// counterpart: every attribute is reported as none against an empty target.
func unmatchedSource(s field.Field) field.FieldMatchResult {
	return field.FieldMatchResult{
		Labels: field.MatchResult{Status: field.StatusNone, SourceValue: s.Label},
		Values: field.MatchResult{Status: field.StatusNone, SourceValue: s.Value},
		Format: field.MatchResult{Status: field.StatusNone, SourceValue: s.Format},
		Font:   field.MatchResult{Status: field.StatusNone, SourceValue: s.Font},
	}
}

// unmatchedTarget mirrors unmatchedSource for a target field nothing was
// assigned to.
func unmatchedTarget(t field.Field) field.FieldMatchResult {
	return field.FieldMatchResult{
		Labels: field.MatchResult{Status: field.StatusNone, TargetValue: t.Label},
		Values: field.MatchResult{Status: field.StatusNone, TargetValue: t.Value},
		Format: field.MatchResult{Status: field.StatusNone, TargetValue: t.Format},
		Font:   field.MatchResult{Status: field.StatusNone, TargetValue: t.Font},
	}
}

// ParseMode converts a user-supplied mode string, defaulting to assignment.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeAssignment, "":
		return ModeAssignment, true
	case ModeNearest:
		return ModeNearest, true
	default:
		return ModeAssignment, false
	}
}
