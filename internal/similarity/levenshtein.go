// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package similarity

import "unicode"

// enhancedLevenshtein computes an edit-distance similarity over the raw
// (un-normalized) strings so that separator and case differences can be
// charged reduced substitution costs: 0.3 for space/hyphen/underscore
// interchanges, 0.1 for case-only differences, 1 otherwise. Insertions and
// deletions cost 1. The score is (maxLen-distance)/maxLen scaled to 0-100.
func enhancedLevenshtein(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 100
	}
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	prev := make([]float64, len(rb)+1)
	curr := make([]float64, len(rb)+1)
	for j := range prev {
		prev[j] = float64(j)
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = float64(i)
		for j := 1; j <= len(rb); j++ {
			cost := substitutionCost(ra[i-1], rb[j-1])
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = minFloat(del, minFloat(ins, sub))
		}
		prev, curr = curr, prev
	}

	distance := prev[len(rb)]
	score := (float64(maxLen) - distance) / float64(maxLen) * 100
	if score < 0 {
		return 0
	}
	return score
}

// substitutionCost charges less for rune differences that normalization
// would consider cosmetic.
func substitutionCost(x, y rune) float64 {
	if x == y {
		return 0
	}
	if isSeparator(x) && isSeparator(y) {
		return 0.3
	}
	if unicode.ToLower(x) == unicode.ToLower(y) {
		return 0.1
	}
	return 1
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '-' || r == '_'
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
