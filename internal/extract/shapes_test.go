// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"testing"

	"field-recon/internal/field"
)

func TestDetectShape(t *testing.T) {
	cases := []struct {
		name string
		doc  any
		want Shape
	}{
		{"array is flat", []any{}, ShapeFlat},
		{"pages key is paginated", map[string]any{"pages": []any{}}, ShapePaginated},
		{"plain object is nested", map[string]any{"policy": map[string]any{}}, ShapeNested},
		{"scalar is unknown", "x", ShapeUnknown},
		{"null is unknown", nil, ShapeUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectShape(tc.doc); got != tc.want {
				t.Errorf("DetectShape = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestJSON_Flat(t *testing.T) {
	data := []byte(`[
		{"label": "First Name", "value": "John", "format": "text", "font": "Arial"},
		{"label": "Premium", "value": 1250.5}
	]`)

	fields, err := JSON(data)
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	want := field.Field{Path: "field[0]", Label: "First Name", Value: "John", Format: "text", Font: "Arial"}
	if fields[0] != want {
		t.Errorf("fields[0] = %+v, want %+v", fields[0], want)
	}
	if fields[1].Value != "1250.5" {
		t.Errorf("numeric value coerced to %q, want \"1250.5\"", fields[1].Value)
	}
}

func TestJSON_Paginated(t *testing.T) {
	data := []byte(`{
		"pages": [
			{"items": [{"label": "Policy Number", "value": "PN-001"}]},
			{"items": [{"label": "Premium", "value": "$1,000"}, {"label": "", "value": ""}]}
		]
	}`)

	fields, err := JSON(data)
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields (empty item skipped), got %d", len(fields))
	}
	if fields[0].Path != "page[0].item[0]" {
		t.Errorf("path = %q, want page[0].item[0]", fields[0].Path)
	}
	if fields[1].Path != "page[1].item[0]" {
		t.Errorf("path = %q, want page[1].item[0]", fields[1].Path)
	}
}

func TestJSON_PaginatedTextItemsAlias(t *testing.T) {
	data := []byte(`{"pages": [{"textItems": [{"label": "Name", "value": "Ann"}]}]}`)
	fields, err := JSON(data)
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	if len(fields) != 1 || fields[0].Label != "Name" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestJSON_Nested(t *testing.T) {
	data := []byte(`{
		"policy": {
			"holder": {"label": "Policy Holder", "value": "Jane Doe"},
			"number": "PN-001"
		},
		"premium": {"value": 99}
	}`)

	fields, err := JSON(data)
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d: %+v", len(fields), fields)
	}

	byPath := make(map[string]field.Field, len(fields))
	for _, f := range fields {
		byPath[f.Path] = f
	}
	if f := byPath["policy.holder"]; f.Label != "Policy Holder" || f.Value != "Jane Doe" {
		t.Errorf("policy.holder = %+v", f)
	}
	if f := byPath["policy.number"]; f.Label != "number" || f.Value != "PN-001" {
		t.Errorf("policy.number = %+v", f)
	}
	if f := byPath["premium"]; f.Value != "99" {
		t.Errorf("premium = %+v", f)
	}
}

func TestJSON_NestedDeterministicPaths(t *testing.T) {
	data := []byte(`{"b": "2", "a": "1", "c": {"d": "3"}}`)
	first, err := JSON(data)
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	second, _ := JSON(data)
	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected 3 fields, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("extraction order not deterministic at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
	if first[0].Path != "a" {
		t.Errorf("keys not visited in sorted order: first path %q", first[0].Path)
	}
}

func TestJSON_Unsupported(t *testing.T) {
	if _, err := JSON([]byte(`"just a string"`)); err == nil {
		t.Error("expected error for unsupported shape")
	}
	if _, err := JSON([]byte(`{invalid`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestParseLabeledLines(t *testing.T) {
	text := "Policy Number: PN-001\nsome prose without separator\nPremium: $1,000\n: missing label\n"
	fields := parseLabeledLines(text, 1, 0)
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d: %+v", len(fields), fields)
	}
	if fields[0].Label != "Policy Number" || fields[0].Value != "PN-001" {
		t.Errorf("fields[0] = %+v", fields[0])
	}
	if fields[1].Path != "page[1].line[1]" {
		t.Errorf("path = %q", fields[1].Path)
	}
}

func TestCanProcess(t *testing.T) {
	cases := map[string]bool{
		"doc.json": true,
		"doc.PDF":  true,
		"doc.txt":  false,
		"doc":      false,
	}
	for path, want := range cases {
		if got := CanProcess(path); got != want {
			t.Errorf("CanProcess(%q) = %v, want %v", path, got, want)
		}
	}
}
