// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package similarity

import "strings"

// substringSimilarity scores whole-string containment first: when the shorter
// normalized string appears inside the longer one, the length ratio scales
// the score (95 ceiling for close lengths, 80 otherwise). Failing that, it
// falls back to word-level partial containment scored against 75.
func substringSimilarity(normA, normB string) float64 {
	if normA == "" || normB == "" {
		return 0
	}
	shorter, longer := normA, normB
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if strings.Contains(longer, shorter) {
		ratio := float64(len(shorter)) / float64(len(longer))
		if ratio > 0.6 {
			return ratio * 95
		}
		return ratio * 80
	}
	return wordContainmentRatio(normA, normB) * 75
}

// wordContainmentRatio counts how many words on the smaller side have an
// exact or containment relation with a word on the other side, as a fraction
// of the larger word count.
func wordContainmentRatio(normA, normB string) float64 {
	wordsA := words(normA)
	wordsB := words(normB)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}
	smaller, larger := wordsA, wordsB
	if len(smaller) > len(larger) {
		smaller, larger = larger, smaller
	}

	matched := 0
	for _, ws := range smaller {
		for _, wl := range larger {
			if ws == wl || strings.Contains(wl, ws) || strings.Contains(ws, wl) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(larger))
}
