// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package similarity

import "strings"

// Early-exit thresholds for the semantic sub-algorithm chain. The first
// algorithm whose score exceeds its threshold decides the semantic score;
// otherwise the chain falls back to enhanced Levenshtein.
const (
	stemExitThreshold         = 80
	containmentExitThreshold  = 80
	relationshipExitThreshold = 70
)

// stopWords are stripped before compound-word comparison.
var stopWords = map[string]bool{
	"of": true, "the": true, "and": true, "or": true, "in": true,
	"on": true, "at": true, "to": true, "for": true, "with": true,
}

// proximityPairs lists term pairs that commonly co-occur in field labels.
// Labels mentioning opposite members of a pair are considered related.
var proximityPairs = [][2]string{
	{"name", "id"},
	{"date", "time"},
	{"start", "end"},
	{"first", "last"},
	{"phone", "number"},
	{"email", "address"},
	{"zip", "code"},
	{"policy", "number"},
	{"premium", "amount"},
	{"effective", "date"},
}

// semanticScore runs the semantic sub-algorithm chain over the normalized
// strings, falling back to enhanced Levenshtein over the raw strings.
func semanticScore(rawA, rawB, normA, normB string) float64 {
	if score := dynamicStemSimilarity(normA, normB); score > stemExitThreshold {
		return score
	}
	if score := dynamicContainment(normA, normB); score > containmentExitThreshold {
		return score
	}
	if score := wordRelationship(normA, normB); score > relationshipExitThreshold {
		return score
	}
	return enhancedLevenshtein(rawA, rawB)
}

// dynamicStemSimilarity aligns the i-th word of each side, strips a dynamic
// trailing fragment from each, and scores the stem agreement: identical stems
// contribute 90, one stem containing the other 75. Contributions are averaged
// over the larger word count so missing words dilute the score.
func dynamicStemSimilarity(normA, normB string) float64 {
	wordsA := words(normA)
	wordsB := words(normB)
	count := len(wordsA)
	if len(wordsB) > count {
		count = len(wordsB)
	}
	if count == 0 {
		return 0
	}

	var total float64
	for i := 0; i < count; i++ {
		var wa, wb string
		if i < len(wordsA) {
			wa = wordsA[i]
		}
		if i < len(wordsB) {
			wb = wordsB[i]
		}
		if wa == "" || wb == "" {
			continue
		}
		sa := dynamicStem(wa)
		sb := dynamicStem(wb)
		switch {
		case sa == sb:
			total += 90
		case strings.Contains(sa, sb) || strings.Contains(sb, sa):
			total += 75
		}
	}
	return total / float64(count)
}

// dynamicStem strips the longest trailing fragment of length 2-4 whose
// removal still leaves a stem of at least 3 characters.
func dynamicStem(word string) string {
	for fragLen := 4; fragLen >= 2; fragLen-- {
		if len(word)-fragLen >= 3 {
			return word[:len(word)-fragLen]
		}
	}
	return word
}

// dynamicContainment scores word-level containment between the two sides.
// Only words longer than two characters participate; every cross-pair
// contributes 1.0 for an exact match, 0.8 or 0.6 for partial containment
// depending on the length ratio. The sum is divided by the smaller token
// count. A one-word-count difference with a strong score is boosted, capped
// at 95: this captures pairs like "Email" vs "Email Address".
func dynamicContainment(normA, normB string) float64 {
	tokensA := words(normA)
	tokensB := words(normB)
	minCount := len(tokensA)
	if len(tokensB) < minCount {
		minCount = len(tokensB)
	}
	if minCount == 0 {
		return 0
	}

	longA := longWords(tokensA)
	longB := longWords(tokensB)

	var sum float64
	for _, wa := range longA {
		for _, wb := range longB {
			if wa == wb {
				sum += 1.0
				continue
			}
			if strings.Contains(wa, wb) || strings.Contains(wb, wa) {
				shorter, longer := len(wa), len(wb)
				if shorter > longer {
					shorter, longer = longer, shorter
				}
				ratio := float64(shorter) / float64(longer)
				if ratio > 0.6 {
					sum += 0.8
				} else if ratio > 0.4 {
					sum += 0.6
				}
			}
		}
	}

	score := sum / float64(minCount) * 100
	diff := len(tokensA) - len(tokensB)
	if diff < 0 {
		diff = -diff
	}
	if diff == 1 && score > 70 {
		score *= 1.2
		if score > 95 {
			score = 95
		}
	}
	return score
}

func longWords(tokens []string) []string {
	var out []string
	for _, t := range tokens {
		if len(t) > 2 {
			out = append(out, t)
		}
	}
	return out
}

// wordRelationship detects abbreviations, compound-word containment, and
// known co-occurring term pairs, returning the strongest signal.
func wordRelationship(normA, normB string) float64 {
	var best float64
	if score := abbreviationScore(normA, normB); score > best {
		best = score
	}
	if score := compoundScore(normA, normB); score > best {
		best = score
	}
	if score := proximityScore(normA, normB); score > best {
		best = score
	}
	return best
}

// abbreviationScore scores 85 when a short token on one side equals the
// concatenated first letters of the other side's words.
func abbreviationScore(normA, normB string) float64 {
	if matchesInitials(words(normA), words(normB)) || matchesInitials(words(normB), words(normA)) {
		return 85
	}
	return 0
}

func matchesInitials(candidates, expanded []string) bool {
	if len(expanded) < 2 {
		return false
	}
	var initials strings.Builder
	for _, w := range expanded {
		initials.WriteByte(w[0])
	}
	target := initials.String()
	for _, c := range candidates {
		if len(c) <= 3 && c == target {
			return true
		}
	}
	return false
}

// compoundScore strips stop words from both sides, joins the remainder, and
// tests substring containment between the compounds.
func compoundScore(normA, normB string) float64 {
	ca := joinContentWords(normA)
	cb := joinContentWords(normB)
	if ca == "" || cb == "" {
		return 0
	}
	if strings.Contains(ca, cb) || strings.Contains(cb, ca) {
		shorter, longer := len(ca), len(cb)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		return float64(shorter) / float64(longer) * 85
	}
	return 0
}

func joinContentWords(normalized string) string {
	var kept []string
	for _, w := range words(normalized) {
		if !stopWords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, "")
}

// proximityScore scores 75 when one side mentions one member of a known
// co-occurring pair and the other side mentions the other member.
func proximityScore(normA, normB string) float64 {
	for _, pair := range proximityPairs {
		if containsTerm(normA, pair[0]) && containsTerm(normB, pair[1]) {
			return 75
		}
		if containsTerm(normA, pair[1]) && containsTerm(normB, pair[0]) {
			return 75
		}
	}
	return 0
}

func containsTerm(normalized, term string) bool {
	return strings.Contains(normalized, term)
}
