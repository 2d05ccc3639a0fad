// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters_test

import (
	"encoding/json"
	"strings"
	"testing"

	"field-recon/internal/core"
	"field-recon/internal/field"
	"field-recon/internal/formatters"
	"field-recon/internal/reconcile"

	_ "field-recon/internal/formatters/csv"
	_ "field-recon/internal/formatters/json"
	_ "field-recon/internal/formatters/text"
	_ "field-recon/internal/formatters/yaml"

	goyaml "gopkg.in/yaml.v3"
)

func sampleRun() *core.RunResult {
	result := field.ReconciliationResult{
		"field[0]": {
			Labels: field.MatchResult{Status: field.StatusExact, Confidence: 100, SourceValue: "First Name", TargetValue: "first name"},
			Values: field.MatchResult{Status: field.StatusExact, Confidence: 100, SourceValue: "John", TargetValue: "John"},
			Format: field.MatchResult{Status: field.StatusEmpty},
			Font:   field.MatchResult{Status: field.StatusEmpty},
		},
		"field[1]": {
			Labels: field.MatchResult{Status: field.StatusNone, Confidence: 0, SourceValue: "Watermark"},
			Values: field.MatchResult{Status: field.StatusEmpty, SourceValue: "DRAFT"},
			Format: field.MatchResult{Status: field.StatusEmpty},
			Font:   field.MatchResult{Status: field.StatusEmpty},
		},
	}
	return &core.RunResult{
		Result:   result,
		Summary:  reconcile.Summarize(result),
		Sections: []field.Field{{Path: "Insured", Label: "Insured", Section: true}},
		Ignored:  []field.Field{{Path: "field[2]", Label: "Page Number"}},
	}
}

func allLevels() map[string]bool {
	return map[string]bool{"high": true, "medium": true, "low": true}
}

func TestRows_SortedByKey(t *testing.T) {
	rows := formatters.Rows(sampleRun().Result)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Key != "field[0]" || rows[1].Key != "field[1]" {
		t.Errorf("unexpected order: %q, %q", rows[0].Key, rows[1].Key)
	}
}

func TestFilterRows(t *testing.T) {
	rows := formatters.Rows(sampleRun().Result)

	highOnly := formatters.FilterRows(rows, formatters.FormatterOptions{
		ConfidenceLevel: map[string]bool{"high": true},
	})
	if len(highOnly) != 1 || highOnly[0].Key != "field[0]" {
		t.Errorf("high-only rows = %+v", highOnly)
	}

	unfiltered := formatters.FilterRows(rows, formatters.FormatterOptions{})
	if len(unfiltered) != 2 {
		t.Errorf("nil band map should keep all rows, got %d", len(unfiltered))
	}
}

func TestExport_Text(t *testing.T) {
	out, err := formatters.Export("text", sampleRun(), formatters.FormatterOptions{
		ConfidenceLevel: allLevels(),
		NoColor:         true,
	})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	for _, want := range []string{"First Name", "field[0]", "Summary:", "2 entries, 1 matched", "Sections: Insured"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestExport_TextVerbose(t *testing.T) {
	out, err := formatters.Export("text", sampleRun(), formatters.FormatterOptions{
		ConfidenceLevel: allLevels(),
		NoColor:         true,
		Verbose:         true,
	})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(out, "=== field[0] ===") {
		t.Errorf("verbose output missing detail block:\n%s", out)
	}
	if !strings.Contains(out, `"John" vs "John"`) {
		t.Errorf("verbose output missing value comparison:\n%s", out)
	}
}

func TestExport_JSON(t *testing.T) {
	out, err := formatters.Export("json", sampleRun(), formatters.FormatterOptions{
		ConfidenceLevel: allLevels(),
	})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var report struct {
		Summary struct {
			Total   int `json:"total"`
			Matched int `json:"matched"`
		} `json:"summary"`
		Entries []struct {
			Key            string `json:"key"`
			ConfidenceBand string `json:"confidence_band"`
		} `json:"entries"`
		Ignored []struct {
			Label string `json:"label"`
		} `json:"ignored"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if report.Summary.Total != 2 || report.Summary.Matched != 1 {
		t.Errorf("summary = %+v", report.Summary)
	}
	if len(report.Entries) != 2 || report.Entries[0].Key != "field[0]" {
		t.Errorf("entries = %+v", report.Entries)
	}
	if report.Entries[0].ConfidenceBand != "high" || report.Entries[1].ConfidenceBand != "low" {
		t.Errorf("bands = %+v", report.Entries)
	}
	if len(report.Ignored) != 1 || report.Ignored[0].Label != "Page Number" {
		t.Errorf("ignored = %+v", report.Ignored)
	}
}

func TestExport_CSV(t *testing.T) {
	out, err := formatters.Export("csv", sampleRun(), formatters.FormatterOptions{
		ConfidenceLevel: allLevels(),
	})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("csv lines = %d, want header plus 2 rows:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "Key,Confidence Band,Label Status") {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "field[0],high,exact,100,First Name,first name") {
		t.Errorf("unexpected first row: %q", lines[1])
	}
}

func TestExport_YAML(t *testing.T) {
	out, err := formatters.Export("yaml", sampleRun(), formatters.FormatterOptions{
		ConfidenceLevel: allLevels(),
	})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var report struct {
		Summary struct {
			Total int `yaml:"total"`
		} `yaml:"summary"`
		Entries []struct {
			Key string `yaml:"key"`
		} `yaml:"entries"`
	}
	if err := goyaml.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid YAML output: %v", err)
	}
	if report.Summary.Total != 2 || len(report.Entries) != 2 {
		t.Errorf("report = %+v", report)
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	if _, err := formatters.Export("xml", sampleRun(), formatters.FormatterOptions{}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestList_ContainsAllFormats(t *testing.T) {
	names := formatters.List()
	want := []string{"csv", "json", "text", "yaml"}
	for _, name := range want {
		found := false
		for _, got := range names {
			if got == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("formatter %q not registered (have %v)", name, names)
		}
	}
}

func TestGetFormatInfo(t *testing.T) {
	info := formatters.GetFormatInfo("json")
	if info.MimeType != "application/json" || info.Extension != ".json" {
		t.Errorf("json info = %+v", info)
	}
	if unknown := formatters.GetFormatInfo("nope"); unknown.Name != "" {
		t.Errorf("unknown format info = %+v", unknown)
	}
}
