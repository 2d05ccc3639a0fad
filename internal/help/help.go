// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package help renders the CLI help text.
package help

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
)

// System renders help content with optional color.
type System struct {
	noColor bool
	colors  map[string]*color.Color
}

// NewSystem creates a new help system
func NewSystem(noColor bool) *System {
	if noColor {
		color.NoColor = true
	}

	return &System{
		noColor: noColor,
		colors: map[string]*color.Color{
			"title":   color.New(color.FgWhite, color.Bold),
			"header":  color.New(color.FgBlue, color.Bold),
			"item":    color.New(color.FgCyan),
			"example": color.New(color.FgMagenta),
		},
	}
}

// ShowGeneralHelp displays general help information
func (h *System) ShowGeneralHelp() {
	h.colors["title"].Println("field-recon - Field Reconciliation & Similarity Matching")
	fmt.Println("========================================================")
	fmt.Println()
	h.colors["header"].Println("USAGE:")
	fmt.Println("  field-recon --source <extracted.json> --reference <structure.yaml> [options]")
	fmt.Println("  field-recon --serve [--port <port>]  # Web server mode")
	fmt.Println()

	h.colors["header"].Println("OPTIONS:")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  --source\t<path>\tPath to the extracted source document (.json or .pdf)")
	fmt.Fprintln(w, "  --reference\t<path>\tPath to the reference structure document (.yaml or .json)")
	fmt.Fprintln(w, "  --mode\t<mode>\tMatching mode: assignment or nearest (default: assignment)")
	fmt.Fprintln(w, "  --format\t<format>\tOutput format: text, json, csv, yaml (default: text)")
	fmt.Fprintln(w, "  --confidence\t<levels>\tConfidence levels to display: high,medium,low,all (default: all)")
	fmt.Fprintln(w, "  --output\t<path>\tPath to output file (if not specified, output to stdout)")
	fmt.Fprintln(w, "  --config\t<path>\tPath to configuration file (YAML)")
	fmt.Fprintln(w, "  --profile\t<name>\tProfile name to use from config file")
	fmt.Fprintln(w, "  --list-profiles\t\tList available profiles in config file")
	fmt.Fprintln(w, "  --ignore-file\t<path>\tPath to ignore rules file (default: .field-recon-ignore.yaml)")
	fmt.Fprintln(w, "  --verbose\t\tDisplay the full verdict for every entry")
	fmt.Fprintln(w, "  --debug\t\tEnable debug logging of the extraction and matching pipeline")
	fmt.Fprintln(w, "  --no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  --serve\t\tStart web server mode instead of CLI reconciliation")
	fmt.Fprintln(w, "  --port\t<port>\tPort for web server (default: 8080)")
	fmt.Fprintln(w, "  --version\t\tShow version information")
	fmt.Fprintln(w, "  --help\t\tShow help information")
	w.Flush()
	fmt.Println()

	h.colors["header"].Println("MATCHING MODES:")
	fmt.Println("  assignment  Each source and target field is consumed at most once;")
	fmt.Println("              pairs are chosen greedily by descending label confidence.")
	fmt.Println("  nearest     Each source field reports its best target; targets may be")
	fmt.Println("              reused by several source fields.")
	fmt.Println()

	h.colors["header"].Println("EXAMPLES:")
	h.colors["example"].Println("  field-recon --source extracted.json --reference structure.yaml")
	h.colors["example"].Println("  field-recon --source form.pdf --reference structure.yaml --format json --output result.json")
	h.colors["example"].Println("  field-recon --source extracted.json --reference structure.yaml --confidence high,medium --verbose")
	h.colors["example"].Println("  field-recon --serve --port 8085")
}
