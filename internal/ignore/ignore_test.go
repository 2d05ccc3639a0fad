// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"field-recon/internal/field"
)

func TestFilter_ByPathAndLabel(t *testing.T) {
	m := NewManagerFromRules([]Rule{
		{Path: "page[0].item[1]", Reason: "known OCR artifact"},
		{Label: "internal id"},
		{Path: "form[*", Reason: "form fields reviewed separately"},
	})

	fields := []field.Field{
		{Path: "page[0].item[0]", Label: "First Name"},
		{Path: "page[0].item[1]", Label: "Noise"},
		{Path: "page[0].item[2]", Label: "Internal ID"},
		{Path: "form[3]", Label: "Signature"},
	}

	kept, ignored := m.Filter(fields)
	if len(kept) != 1 || kept[0].Path != "page[0].item[0]" {
		t.Errorf("kept = %+v", kept)
	}
	if len(ignored) != 3 {
		t.Errorf("expected 3 ignored, got %d: %+v", len(ignored), ignored)
	}
}

func TestFilter_NoRules(t *testing.T) {
	m := NewManager("")
	fields := []field.Field{{Path: "a", Label: "A"}}
	kept, ignored := m.Filter(fields)
	if len(kept) != 1 || ignored != nil {
		t.Errorf("kept=%+v ignored=%+v", kept, ignored)
	}
}

func TestNewManager_LoadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ignore.yaml")
	content := "version: \"1.0\"\nrules:\n  - label: Watermark\n    reason: decorative\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	m := NewManager(path)
	if m.Len() != 1 {
		t.Fatalf("expected 1 rule, got %d", m.Len())
	}
	kept, ignored := m.Filter([]field.Field{
		{Path: "p1", Label: "watermark"},
		{Path: "p2", Label: "First Name"},
	})
	if len(ignored) != 1 || ignored[0].Path != "p1" {
		t.Errorf("ignored = %+v", ignored)
	}
	if len(kept) != 1 {
		t.Errorf("kept = %+v", kept)
	}
}

func TestNewManager_MissingFile(t *testing.T) {
	m := NewManager("/nonexistent/ignore.yaml")
	if m.Len() != 0 {
		t.Errorf("expected no rules, got %d", m.Len())
	}
}

func TestConfigValidate(t *testing.T) {
	bad := Config{Rules: []Rule{{Reason: "no selector"}}}
	if err := bad.Validate(); err == nil {
		t.Error("expected validation error for selector-less rule")
	}
	good := Config{Rules: []Rule{{Path: "a"}}}
	if err := good.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
