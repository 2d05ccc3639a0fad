// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package similarity

import (
	"math"

	"field-recon/internal/field"
)

// Status thresholds on the rounded 0-100 confidence. Boundary values belong
// to the higher band: 90 is exact, 65 is partial.
const (
	ExactThreshold   = 90
	PartialThreshold = 65
)

// Sub-score weights for the blended score. The combined score is the maximum
// of the blend and each individual sub-score, so one very strong signal is
// never diluted by weaker ones.
const (
	semanticWeight  = 0.4
	tokenWeight     = 0.3
	substringWeight = 0.2
	stemWeight      = 0.1
)

// ScoreLabel computes the composite label-similarity verdict between a source
// label and a target label. It never fails: empty or malformed input degrades
// to an empty/none verdict.
func ScoreLabel(a, b string) field.MatchResult {
	result := field.MatchResult{SourceValue: a, TargetValue: b}

	normA := Normalize(a)
	normB := Normalize(b)
	if normB == "" {
		result.Status = field.StatusEmpty
		return result
	}
	if normA == normB {
		result.Status = field.StatusExact
		result.Confidence = 100
		return result
	}

	semantic := semanticScore(a, b, normA, normB)
	token := tokenSimilarity(normA, normB)
	substring := substringSimilarity(normA, normB)
	stem := stemSimilarity(normA, normB)

	weighted := semanticWeight*semantic + tokenWeight*token + substringWeight*substring + stemWeight*stem
	combined := weighted
	for _, score := range []float64{semantic, token, substring} {
		if score > combined {
			combined = score
		}
	}

	result.Confidence = clampConfidence(int(math.Round(combined)))
	result.Status = StatusFor(result.Confidence)
	return result
}

// StatusFor maps an integer confidence to its match status band.
func StatusFor(confidence int) field.MatchStatus {
	switch {
	case confidence >= ExactThreshold:
		return field.StatusExact
	case confidence >= PartialThreshold:
		return field.StatusPartial
	default:
		return field.StatusNone
	}
}

func clampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
