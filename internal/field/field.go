// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package field

// Field is one labeled, pathed unit of extracted or reference data.
// Path is the stable identity used for assignment bookkeeping; the engine
// treats it as opaque and only requires it to be unique within its set.
type Field struct {
	Path    string
	Label   string
	Value   string
	Format  string
	Font    string
	Section bool // container/section marker, excluded from matching
}

// MatchStatus classifies how well two attribute values agree.
type MatchStatus string

const (
	// StatusExact means the compared values agree at or above the exact threshold.
	StatusExact MatchStatus = "exact"
	// StatusPartial means the values are similar but below the exact threshold.
	StatusPartial MatchStatus = "partial"
	// StatusNone means the compared-against value was present but insufficiently similar.
	StatusNone MatchStatus = "none"
	// StatusEmpty means the compared-against value was absent.
	StatusEmpty MatchStatus = "empty"
)

// MatchResult is the outcome of one attribute comparison between one source
// and one target field. Confidence is always an integer in [0,100].
type MatchResult struct {
	Status      MatchStatus `json:"status"`
	Confidence  int         `json:"confidence"`
	SourceValue string      `json:"source_value"`
	TargetValue string      `json:"target_value"`
}

// FieldMatchResult is the full verdict for one (possibly partial) pairing:
// one MatchResult per compared attribute.
type FieldMatchResult struct {
	Labels MatchResult `json:"labels"`
	Values MatchResult `json:"values"`
	Format MatchResult `json:"format"`
	Font   MatchResult `json:"font"`
}

// ReconciliationResult maps a key to the verdict for that entry. The key is
// the source field's path when matched or unmatched-as-source, or the target
// field's path when unmatched-as-target (never both). Every path from both
// input sets appears in exactly one role.
type ReconciliationResult map[string]FieldMatchResult

// Empty reports whether the result carries no entries.
func (r ReconciliationResult) Empty() bool {
	return len(r) == 0
}

// Statuses returns the distinct label statuses present in the result.
// Used by formatters to decide which summary sections to render.
func (r ReconciliationResult) Statuses() map[MatchStatus]int {
	counts := make(map[MatchStatus]int)
	for _, v := range r {
		counts[v.Labels.Status]++
	}
	return counts
}
