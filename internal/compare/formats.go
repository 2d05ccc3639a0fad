// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package compare

import (
	"strings"

	"field-recon/internal/field"
)

// formatGroups buckets format tags into coarse families. Two different tags
// from the same family count as a partial match.
var formatGroups = map[string][]string{
	"text":     {"text", "string", "alpha", "alphanumeric", "richtext"},
	"numeric":  {"number", "numeric", "integer", "int", "float", "decimal", "percent"},
	"currency": {"currency", "money", "amount", "price"},
	"date":     {"date", "datetime", "time", "timestamp", "day", "month", "year"},
}

// Formats compares two format tags: exact match, then same format family,
// then substring containment.
func Formats(a, b string) field.MatchResult {
	result := field.MatchResult{SourceValue: a, TargetValue: b}
	if b == "" {
		result.Status = field.StatusEmpty
		return result
	}

	na := strings.ToLower(strings.TrimSpace(a))
	nb := strings.ToLower(strings.TrimSpace(b))
	if na == nb {
		result.Status = field.StatusExact
		result.Confidence = 100
		return result
	}
	if ga, ok := formatGroup(na); ok {
		if gb, ok := formatGroup(nb); ok && ga == gb {
			result.Status = field.StatusPartial
			result.Confidence = 85
			return result
		}
	}
	if na != "" && (strings.Contains(na, nb) || strings.Contains(nb, na)) {
		result.Status = field.StatusPartial
		result.Confidence = 70
		return result
	}
	result.Status = field.StatusNone
	return result
}

func formatGroup(tag string) (string, bool) {
	for group, tags := range formatGroups {
		for _, t := range tags {
			if t == tag {
				return group, true
			}
		}
	}
	return "", false
}
