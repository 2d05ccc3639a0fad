// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package similarity

import "strings"

// tokenSimilarity measures word-set overlap between the normalized strings.
// A lone token against a multi-word label scores 85 on any containment
// relation with an opposing token. Otherwise the Jaccard index is used,
// boosted when the intersection covers most of the smaller token set.
func tokenSimilarity(normA, normB string) float64 {
	tokensA := words(normA)
	tokensB := words(normB)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	if (len(tokensA) == 1 && len(tokensB) > 1) || (len(tokensB) == 1 && len(tokensA) > 1) {
		lone := tokensA[0]
		others := tokensB
		if len(tokensB) == 1 {
			lone = tokensB[0]
			others = tokensA
		}
		for _, w := range others {
			if strings.Contains(w, lone) || strings.Contains(lone, w) {
				return 85
			}
		}
		return 0
	}

	setA := toSet(tokensA)
	setB := toSet(tokensB)
	intersection := 0
	union := make(map[string]bool, len(setA)+len(setB))
	for w := range setA {
		union[w] = true
		if setB[w] {
			intersection++
		}
	}
	for w := range setB {
		union[w] = true
	}
	if len(union) == 0 {
		return 0
	}

	score := float64(intersection) / float64(len(union)) * 100
	smaller := len(setA)
	if len(setB) < smaller {
		smaller = len(setB)
	}
	if smaller > 0 && float64(intersection) >= 0.7*float64(smaller) {
		score *= 1.3
		if score > 95 {
			score = 95
		}
	}
	return score
}

func toSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}
