// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"fmt"
	"strings"

	"field-recon/internal/core"
	"field-recon/internal/formatters"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(run *core.RunResult, options formatters.FormatterOptions) (string, error) {
	rows := formatters.FilterRows(formatters.Rows(run.Result), options)

	headers := []string{
		"Key", "Confidence Band",
		"Label Status", "Label Confidence", "Source Label", "Target Label",
		"Value Status", "Value Confidence", "Source Value", "Target Value",
		"Format Status", "Font Status",
	}
	csvRows := []string{strings.Join(headers, ",")}

	for _, row := range rows {
		m := row.Match
		record := []string{
			f.escapeCSVField(row.Key),
			core.ConfidenceBand(m.Labels.Confidence),
			string(m.Labels.Status),
			fmt.Sprintf("%d", m.Labels.Confidence),
			f.escapeCSVField(m.Labels.SourceValue),
			f.escapeCSVField(m.Labels.TargetValue),
			string(m.Values.Status),
			fmt.Sprintf("%d", m.Values.Confidence),
			f.escapeCSVField(m.Values.SourceValue),
			f.escapeCSVField(m.Values.TargetValue),
			string(m.Format.Status),
			string(m.Font.Status),
		}
		csvRows = append(csvRows, strings.Join(record, ","))
	}

	return strings.Join(csvRows, "\n"), nil
}

// escapeCSVField properly escapes a field for CSV format and prevents CSV injection
func (f *Formatter) escapeCSVField(field string) string {
	field = f.sanitizeFormulaInjection(field)

	if strings.ContainsAny(field, ",\"\n\r") {
		escaped := strings.ReplaceAll(field, "\"", "\"\"")
		return fmt.Sprintf("\"%s\"", escaped)
	}
	return field
}

// sanitizeFormulaInjection prevents CSV injection attacks by sanitizing formula characters
func (f *Formatter) sanitizeFormulaInjection(field string) string {
	if len(field) == 0 {
		return field
	}

	firstChar := field[0]
	if firstChar == '=' || firstChar == '+' || firstChar == '-' || firstChar == '@' {
		return "'" + field
	}

	return field
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
