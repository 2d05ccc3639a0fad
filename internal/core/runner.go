// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package core holds the reconciliation pipeline shared by the CLI and the
// web server: extract the source document, load the reference structure,
// apply ignore rules, reconcile, summarize.
package core

import (
	"fmt"
	"os"
	"strings"

	"field-recon/internal/extract"
	"field-recon/internal/field"
	"field-recon/internal/ignore"
	"field-recon/internal/observability"
	"field-recon/internal/reconcile"
	"field-recon/internal/structure"
)

// RunConfig holds configuration for one reconciliation run.
type RunConfig struct {
	SourcePath    string
	ReferencePath string
	Mode          reconcile.Mode
	IgnoreFile    string
	Debug         bool
}

// RunResult holds the outcome of one reconciliation run.
type RunResult struct {
	Result   field.ReconciliationResult
	Summary  reconcile.Summary
	Sections []field.Field
	Ignored  []field.Field
}

// Run performs the reconciliation pipeline shared by the CLI and the web
// server.
func Run(cfg RunConfig) (*RunResult, error) {
	level := observability.Metrics
	if cfg.Debug {
		level = observability.Debug
	}
	observer := observability.NewObserver(level, os.Stderr)

	finish := observer.StartStep("extract", "source document")
	sourceFields, err := extract.ForFile(cfg.SourcePath)
	if err != nil {
		finish(false, err.Error())
		return nil, fmt.Errorf("extracting source fields: %w", err)
	}
	finish(true, fmt.Sprintf("%d fields", len(sourceFields)))

	finish = observer.StartStep("structure", "reference document")
	referenceFields, err := structure.Load(cfg.ReferencePath)
	if err != nil {
		finish(false, err.Error())
		return nil, fmt.Errorf("loading reference structure: %w", err)
	}
	targetFields, sections := structure.Partition(referenceFields)
	finish(true, fmt.Sprintf("%d fields, %d sections", len(targetFields), len(sections)))

	ignoreManager := ignore.NewManager(cfg.IgnoreFile)
	sourceFields, ignoredSource := ignoreManager.Filter(sourceFields)
	targetFields, ignoredTarget := ignoreManager.Filter(targetFields)
	ignored := append(ignoredSource, ignoredTarget...)
	if len(ignored) > 0 {
		observer.Detail("ignore", fmt.Sprintf("%d fields skipped by rule", len(ignored)))
	}

	finishTiming := observer.StartTiming("reconcile", string(cfg.Mode), cfg.SourcePath)
	result := reconcile.Reconcile(sourceFields, targetFields, cfg.Mode)
	summary := reconcile.Summarize(result)
	finishTiming(true, map[string]any{
		"entries": summary.Total,
		"matched": summary.Matched,
	})

	return &RunResult{
		Result:   result,
		Summary:  summary,
		Sections: sections,
		Ignored:  ignored,
	}, nil
}

// ParseConfidenceLevels converts a comma-separated confidence level string
// into a map. "all" or empty string enables every level.
func ParseConfidenceLevels(levels string) map[string]bool {
	result := map[string]bool{
		"high":   false,
		"medium": false,
		"low":    false,
	}

	if levels == "all" || levels == "" {
		for k := range result {
			result[k] = true
		}
		return result
	}

	for _, level := range strings.Split(levels, ",") {
		switch strings.ToLower(strings.TrimSpace(level)) {
		case "high", "medium", "low":
			result[strings.ToLower(strings.TrimSpace(level))] = true
		}
	}

	return result
}

// ConfidenceBand buckets a 0-100 confidence into high/medium/low, aligned
// with the engine's exact and partial thresholds.
func ConfidenceBand(confidence int) string {
	switch {
	case confidence >= 90:
		return "high"
	case confidence >= 65:
		return "medium"
	default:
		return "low"
	}
}
