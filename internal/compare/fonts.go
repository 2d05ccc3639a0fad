// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package compare

import (
	"strings"

	"field-recon/internal/field"
)

// Style modifiers stripped when reducing a font name to its base family.
var fontModifiers = []string{"bold", "italic", "light", "regular", "medium"}

// fontFamilies buckets known font families into coarse groups. Fonts from
// the same group are loosely interchangeable in rendered documents.
var fontFamilies = map[string][]string{
	"sans":  {"arial", "helvetica", "calibri", "verdana", "tahoma", "segoeui", "roboto", "opensans", "lato"},
	"serif": {"timesnewroman", "times", "georgia", "garamond", "cambria", "palatino", "bookantiqua"},
	"mono":  {"couriernew", "courier", "consolas", "monaco", "menlo", "lucidaconsole"},
}

// Fonts compares two font names: exact after normalization, then same base
// family after stripping style modifiers, then substring containment, then
// same coarse family group.
func Fonts(a, b string) field.MatchResult {
	result := field.MatchResult{SourceValue: a, TargetValue: b}
	if b == "" {
		result.Status = field.StatusEmpty
		return result
	}

	na := normalizeFont(a)
	nb := normalizeFont(b)
	if na == nb {
		result.Status = field.StatusExact
		result.Confidence = 100
		return result
	}
	if na != "" && baseFamily(na) == baseFamily(nb) {
		result.Status = field.StatusPartial
		result.Confidence = 85
		return result
	}
	if na != "" && (strings.Contains(na, nb) || strings.Contains(nb, na)) {
		result.Status = field.StatusPartial
		result.Confidence = 75
		return result
	}
	if ga, ok := familyGroup(na); ok {
		if gb, ok := familyGroup(nb); ok && ga == gb {
			result.Status = field.StatusPartial
			result.Confidence = 60
			return result
		}
	}
	result.Status = field.StatusNone
	return result
}

// normalizeFont lower-cases and strips spaces and commas so that
// "Times New Roman, Bold" and "TimesNewRoman Bold" compare equal.
func normalizeFont(name string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == ',' {
			return -1
		}
		return r
	}, strings.ToLower(name))
}

func baseFamily(normalized string) string {
	base := normalized
	for _, mod := range fontModifiers {
		base = strings.ReplaceAll(base, mod, "")
	}
	return base
}

func familyGroup(normalized string) (string, bool) {
	for group, families := range fontFamilies {
		for _, f := range families {
			if strings.Contains(normalized, f) {
				return group, true
			}
		}
	}
	return "", false
}
