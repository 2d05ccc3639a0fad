// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package structure

import (
	"testing"

	"field-recon/internal/field"
)

const sampleYAML = `
name: Policy Statement
sections:
  - name: Insured
    fields:
      - label: First Name
        format: text
      - label: Last Name
        format: text
  - name: Coverage
    fields:
      - label: Premium Amount
        format: currency
        value: "$1,000"
`

func TestParse_YAML(t *testing.T) {
	fields, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	// Two section markers plus three leaves.
	if len(fields) != 5 {
		t.Fatalf("expected 5 fields, got %d: %+v", len(fields), fields)
	}

	matchable, sections := Partition(fields)
	if len(sections) != 2 {
		t.Errorf("expected 2 section markers, got %d", len(sections))
	}
	if len(matchable) != 3 {
		t.Errorf("expected 3 matchable fields, got %d", len(matchable))
	}

	byPath := make(map[string]field.Field)
	for _, f := range fields {
		byPath[f.Path] = f
	}
	if f := byPath["Insured"]; !f.Section || f.Label != "Insured" {
		t.Errorf("Insured section = %+v", f)
	}
	if f := byPath["Insured.First Name"]; f.Section || f.Label != "First Name" || f.Format != "text" {
		t.Errorf("First Name leaf = %+v", f)
	}
	if f := byPath["Coverage.Premium Amount"]; f.Value != "$1,000" || f.Format != "currency" {
		t.Errorf("Premium leaf = %+v", f)
	}
}

func TestParse_JSONInput(t *testing.T) {
	data := []byte(`{"fields": [{"label": "Email Address", "format": "text"}]}`)
	fields, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(fields) != 1 || fields[0].Label != "Email Address" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestFlatten_DuplicateLabels(t *testing.T) {
	data := []byte(`
fields:
  - label: Address
  - label: Address
`)
	fields, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Path == fields[1].Path {
		t.Errorf("duplicate labels must get unique paths, both %q", fields[0].Path)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("{unclosed")); err == nil {
		t.Error("expected error for malformed input")
	}
}
