// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package similarity

import "strings"

// Common English suffixes stripped by the simple stemmer, longest first so
// the most specific suffix wins.
var stemSuffixes = []string{
	"tion", "sion", "ness", "ment", "able", "ible",
	"ing", "est", "ed", "er", "ly",
}

// stemSimilarity compares the two normalized strings after simple suffix
// stripping: equal stems score 80, one stem containing the other 60.
func stemSimilarity(normA, normB string) float64 {
	sa := stripSuffix(normA)
	sb := stripSuffix(normB)
	if sa == "" || sb == "" {
		return 0
	}
	if sa == sb {
		return 80
	}
	if strings.Contains(sa, sb) || strings.Contains(sb, sa) {
		return 60
	}
	return 0
}

// stripSuffix removes the first matching suffix, but only when the remaining
// stem keeps a sensible length relative to the suffix.
func stripSuffix(s string) string {
	for _, suffix := range stemSuffixes {
		if strings.HasSuffix(s, suffix) {
			stem := s[:len(s)-len(suffix)]
			if len(stem) >= len(suffix)+2 {
				return stem
			}
		}
	}
	return s
}
