// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package compare

import (
	"testing"

	"field-recon/internal/field"
)

func TestValues(t *testing.T) {
	cases := []struct {
		name       string
		a, b       string
		status     field.MatchStatus
		confidence int
	}{
		{"exact", "John", "John", field.StatusExact, 100},
		{"case insensitive", "JOHN", "john", field.StatusExact, 95},
		{"substring", "John Smith", "John", field.StatusPartial, 70},
		{"substring reversed", "John", "John Smith", field.StatusPartial, 70},
		{"currency vs plain", "$1,000", "1000", field.StatusExact, 100},
		{"currency spacing", "1 000", "1000.00", field.StatusExact, 100},
		{"different numbers", "1000", "2000", field.StatusNone, 0},
		{"unrelated", "John", "Mary", field.StatusNone, 0},
		{"empty target", "John", "", field.StatusEmpty, 0},
		{"both empty", "", "", field.StatusEmpty, 0},
		{"empty source present target", "", "John", field.StatusNone, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Values(tc.a, tc.b)
			if got.Status != tc.status {
				t.Errorf("Values(%q, %q).Status = %q, want %q", tc.a, tc.b, got.Status, tc.status)
			}
			if got.Confidence != tc.confidence {
				t.Errorf("Values(%q, %q).Confidence = %d, want %d", tc.a, tc.b, got.Confidence, tc.confidence)
			}
		})
	}
}

func TestFormats(t *testing.T) {
	cases := []struct {
		name       string
		a, b       string
		status     field.MatchStatus
		confidence int
	}{
		{"exact", "date", "date", field.StatusExact, 100},
		{"exact case insensitive", "Date", "DATE", field.StatusExact, 100},
		{"same numeric group", "integer", "float", field.StatusPartial, 85},
		{"same date group", "date", "datetime", field.StatusPartial, 85},
		{"same currency group", "money", "amount", field.StatusPartial, 85},
		{"substring", "custom-date", "date", field.StatusPartial, 70},
		{"cross group", "date", "currency", field.StatusNone, 0},
		{"empty target", "date", "", field.StatusEmpty, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Formats(tc.a, tc.b)
			if got.Status != tc.status {
				t.Errorf("Formats(%q, %q).Status = %q, want %q", tc.a, tc.b, got.Status, tc.status)
			}
			if got.Confidence != tc.confidence {
				t.Errorf("Formats(%q, %q).Confidence = %d, want %d", tc.a, tc.b, got.Confidence, tc.confidence)
			}
		})
	}
}

func TestFonts(t *testing.T) {
	cases := []struct {
		name       string
		a, b       string
		status     field.MatchStatus
		confidence int
	}{
		{"exact", "Arial", "arial", field.StatusExact, 100},
		{"exact with spacing", "Times New Roman", "TimesNewRoman", field.StatusExact, 100},
		{"style modifier", "Arial Bold", "Arial", field.StatusPartial, 85},
		{"two modifiers", "Arial Bold Italic", "Arial Regular", field.StatusPartial, 85},
		{"substring", "Helvetica Neue", "Helvetica", field.StatusPartial, 75},
		{"same sans group", "Arial", "Helvetica", field.StatusPartial, 60},
		{"same serif group", "Georgia", "Garamond", field.StatusPartial, 60},
		{"cross group", "Arial", "Courier New", field.StatusNone, 0},
		{"unknown fonts", "Foo", "Bar", field.StatusNone, 0},
		{"empty target", "Arial", "", field.StatusEmpty, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Fonts(tc.a, tc.b)
			if got.Status != tc.status {
				t.Errorf("Fonts(%q, %q).Status = %q, want %q", tc.a, tc.b, got.Status, tc.status)
			}
			if got.Confidence != tc.confidence {
				t.Errorf("Fonts(%q, %q).Confidence = %d, want %d", tc.a, tc.b, got.Confidence, tc.confidence)
			}
		})
	}
}
