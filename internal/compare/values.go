// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package compare implements the per-attribute comparators (value, format,
// font) used when two fields have been paired by label similarity. Every
// comparator is pure and total: absent targets yield an empty verdict,
// malformed values degrade to none.
package compare

import (
	"strconv"
	"strings"

	"field-recon/internal/field"
)

// Values compares two field values. Equality is tested strictly, then
// case-insensitively, then by substring containment, and finally numerically
// after stripping currency symbols and separators.
func Values(a, b string) field.MatchResult {
	result := field.MatchResult{SourceValue: a, TargetValue: b}
	if b == "" {
		result.Status = field.StatusEmpty
		return result
	}
	if a == b {
		result.Status = field.StatusExact
		result.Confidence = 100
		return result
	}
	if strings.EqualFold(a, b) {
		result.Status = field.StatusExact
		result.Confidence = 95
		return result
	}
	if a != "" && (strings.Contains(a, b) || strings.Contains(b, a)) {
		result.Status = field.StatusPartial
		result.Confidence = 70
		return result
	}
	if na, ok := parseNumeric(a); ok {
		if nb, ok := parseNumeric(b); ok && na == nb {
			result.Status = field.StatusExact
			result.Confidence = 100
			return result
		}
	}
	result.Status = field.StatusNone
	return result
}

// parseNumeric strips currency symbols, commas, and spaces before parsing.
func parseNumeric(s string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '$', '€', '£', '¥', ',', ' ':
			return -1
		}
		return r
	}, s)
	if cleaned == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
