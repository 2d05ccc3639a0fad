// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"field-recon/internal/core"
	"field-recon/internal/field"
	"field-recon/internal/formatters"
	"field-recon/internal/reconcile"

	"github.com/fatih/color"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":   color.New(color.FgGreen),
			"yellow":  color.New(color.FgYellow),
			"red":     color.New(color.FgRed),
			"cyan":    color.New(color.FgCyan),
			"magenta": color.New(color.FgMagenta),
			"blue":    color.New(color.FgBlue),
			"white":   color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors and a summary table"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(run *core.RunResult, options formatters.FormatterOptions) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	rows := formatters.FilterRows(formatters.Rows(run.Result), options)
	if len(rows) == 0 {
		if run.Result.Empty() {
			return "No fields to reconcile.", nil
		}
		return "No entries at the specified confidence levels.", nil
	}

	var builder strings.Builder

	if !options.Verbose {
		f.appendHeaders(&builder, rows, options)
	}

	for _, row := range rows {
		if options.Verbose {
			f.appendDetailedRow(&builder, row, options)
			continue
		}
		f.appendSummaryLine(&builder, row, rows, options)
	}

	f.appendSummary(&builder, run, options)

	return builder.String(), nil
}

// labelWidth computes a shared width for the source and target label columns.
func (f *Formatter) labelWidth(rows []formatters.Row) int {
	width := 12
	for _, row := range rows {
		if n := len([]rune(row.Match.Labels.SourceValue)); n > width {
			width = n
		}
		if n := len([]rune(row.Match.Labels.TargetValue)); n > width {
			width = n
		}
	}
	if width > 30 {
		width = 30
	}
	return width
}

func (f *Formatter) keyWidth(rows []formatters.Row) int {
	width := 8
	for _, row := range rows {
		if n := len(row.Key); n > width {
			width = n
		}
	}
	if width > 28 {
		width = 28
	}
	return width
}

// appendHeaders adds column headers to the string builder
func (f *Formatter) appendHeaders(builder *strings.Builder, rows []formatters.Row, options formatters.FormatterOptions) {
	keyWidth := f.keyWidth(rows)
	labelWidth := f.labelWidth(rows)
	headerStr := fmt.Sprintf("%-9s %6s %-*s %-*s %-*s %s\n",
		"LABELS", "CONF%", keyWidth, "KEY", labelWidth, "SOURCE LABEL", labelWidth, "TARGET LABEL", "VALUES/FORMAT/FONT")
	if !options.NoColor {
		headerStr = f.colors["white"].Sprint(headerStr)
	}
	builder.WriteString(headerStr)

	totalWidth := 9 + 1 + 6 + 1 + keyWidth + 1 + 2*labelWidth + 2 + 19
	separator := strings.Repeat("-", totalWidth) + "\n"
	if !options.NoColor {
		separator = f.colors["white"].Sprint(separator)
	}
	builder.WriteString(separator)
}

// appendSummaryLine adds a single line summary for one entry
func (f *Formatter) appendSummaryLine(builder *strings.Builder, row formatters.Row, rows []formatters.Row, options formatters.FormatterOptions) {
	match := row.Match

	statusStr := fmt.Sprintf("[%-7s]", strings.ToUpper(string(match.Labels.Status)))
	if !options.NoColor {
		statusStr = f.statusColor(match.Labels.Status).Sprint(statusStr)
	}

	confidenceStr := fmt.Sprintf("%5d%%", match.Labels.Confidence)
	if !options.NoColor {
		confidenceStr = f.colors["blue"].Sprint(confidenceStr)
	}

	keyStr := fmt.Sprintf("%-*s", f.keyWidth(rows), f.truncate(row.Key, f.keyWidth(rows)))
	if !options.NoColor {
		keyStr = f.colors["magenta"].Sprint(keyStr)
	}

	labelWidth := f.labelWidth(rows)
	sourceStr := fmt.Sprintf("%-*s", labelWidth, f.truncate(f.orDash(match.Labels.SourceValue), labelWidth))
	targetStr := fmt.Sprintf("%-*s", labelWidth, f.truncate(f.orDash(match.Labels.TargetValue), labelWidth))
	if !options.NoColor {
		sourceStr = f.colors["cyan"].Sprint(sourceStr)
		targetStr = f.colors["cyan"].Sprint(targetStr)
	}

	attrs := fmt.Sprintf("%s/%s/%s",
		f.shortStatus(match.Values.Status),
		f.shortStatus(match.Format.Status),
		f.shortStatus(match.Font.Status))

	fmt.Fprintf(builder, "%s %s %s %s %s %s\n",
		statusStr, confidenceStr, keyStr, sourceStr, targetStr, attrs)
}

// appendDetailedRow prints the full verdict for one entry
func (f *Formatter) appendDetailedRow(builder *strings.Builder, row formatters.Row, options formatters.FormatterOptions) {
	if !options.NoColor {
		f.colors["white"].Fprintf(builder, "=== %s ===\n", row.Key)
	} else {
		fmt.Fprintf(builder, "=== %s ===\n", row.Key)
	}

	f.appendAttribute(builder, "Labels", row.Match.Labels, options)
	f.appendAttribute(builder, "Values", row.Match.Values, options)
	f.appendAttribute(builder, "Format", row.Match.Format, options)
	f.appendAttribute(builder, "Font", row.Match.Font, options)
	fmt.Fprintln(builder)
}

func (f *Formatter) appendAttribute(builder *strings.Builder, name string, m field.MatchResult, options formatters.FormatterOptions) {
	if m.Status == field.StatusEmpty && m.SourceValue == "" && m.TargetValue == "" {
		if !options.NoColor {
			f.colors["cyan"].Fprintf(builder, "%s: ", name)
			fmt.Fprintln(builder, "empty")
		} else {
			fmt.Fprintf(builder, "%s: empty\n", name)
		}
		return
	}

	if !options.NoColor {
		f.colors["cyan"].Fprintf(builder, "%s: ", name)
		f.statusColor(m.Status).Fprintf(builder, "%s", m.Status)
		f.colors["blue"].Fprintf(builder, " (%d%%)", m.Confidence)
		fmt.Fprintf(builder, "  %q vs %q\n", m.SourceValue, m.TargetValue)
	} else {
		fmt.Fprintf(builder, "%s: %s (%d%%)  %q vs %q\n", name, m.Status, m.Confidence, m.SourceValue, m.TargetValue)
	}
}

// appendSummary prints aggregate counts plus section and ignore information
func (f *Formatter) appendSummary(builder *strings.Builder, run *core.RunResult, options formatters.FormatterOptions) {
	fmt.Fprintln(builder)
	if !options.NoColor {
		f.colors["white"].Fprintf(builder, "Summary: ")
	} else {
		fmt.Fprintf(builder, "Summary: ")
	}
	fmt.Fprintf(builder, "%d entries, %d matched\n", run.Summary.Total, run.Summary.Matched)

	f.appendCounts(builder, "labels", run.Summary.Labels, options)
	f.appendCounts(builder, "values", run.Summary.Values, options)
	f.appendCounts(builder, "format", run.Summary.Format, options)
	f.appendCounts(builder, "font", run.Summary.Font, options)

	if len(run.Sections) > 0 {
		names := make([]string, 0, len(run.Sections))
		for _, s := range run.Sections {
			names = append(names, s.Label)
		}
		fmt.Fprintf(builder, "Sections: %s\n", strings.Join(names, ", "))
	}
	if len(run.Ignored) > 0 {
		fmt.Fprintf(builder, "Ignored: %d fields skipped by rule\n", len(run.Ignored))
	}
}

func (f *Formatter) appendCounts(builder *strings.Builder, name string, c reconcile.StatusCounts, options formatters.FormatterOptions) {
	line := fmt.Sprintf("  %-6s exact %d, partial %d, none %d, empty %d\n",
		name, c.Exact, c.Partial, c.None, c.Empty)
	if !options.NoColor {
		line = fmt.Sprintf("  %-6s %s, %s, %s, %s\n", name,
			f.colors["green"].Sprintf("exact %d", c.Exact),
			f.colors["yellow"].Sprintf("partial %d", c.Partial),
			f.colors["red"].Sprintf("none %d", c.None),
			f.colors["white"].Sprintf("empty %d", c.Empty))
	}
	builder.WriteString(line)
}

func (f *Formatter) statusColor(status field.MatchStatus) *color.Color {
	switch status {
	case field.StatusExact:
		return f.colors["green"]
	case field.StatusPartial:
		return f.colors["yellow"]
	case field.StatusNone:
		return f.colors["red"]
	default:
		return f.colors["white"]
	}
}

func (f *Formatter) shortStatus(status field.MatchStatus) string {
	switch status {
	case field.StatusExact:
		return "exact"
	case field.StatusPartial:
		return "part"
	case field.StatusNone:
		return "none"
	default:
		return "-"
	}
}

func (f *Formatter) truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func (f *Formatter) orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
