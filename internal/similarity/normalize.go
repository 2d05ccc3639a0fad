// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package similarity implements the label-similarity scorer used by field
// reconciliation. It blends several independent sub-algorithms (semantic
// stem/containment/relationship analysis, token overlap, substring
// containment, suffix stemming) into a single 0-100 confidence.
package similarity

import "strings"

// Normalize canonicalizes label text for comparison: lower-case, hyphens and
// underscores become spaces, all other non-alphanumeric characters are
// stripped, whitespace runs collapse to a single space, and the result is
// trimmed. Pure and total: any input yields a (possibly empty) string.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r == '-' || r == '_':
			b.WriteRune(' ')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// words splits an already-normalized string into its tokens.
func words(normalized string) []string {
	return strings.Fields(normalized)
}
