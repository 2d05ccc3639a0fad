// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package observability provides lightweight timing and step diagnostics
// for the extraction and reconciliation pipeline, written to stderr when
// debug output is enabled.
package observability

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Level controls how much diagnostic output is emitted.
type Level int

const (
	// Off disables all diagnostic output.
	Off Level = iota
	// Metrics records operation timings without printing step logs.
	Metrics
	// Debug prints JSON operation records and step-by-step progress.
	Debug
)

// Observer records pipeline operations.
type Observer struct {
	level  Level
	writer io.Writer
	indent int
}

// NewObserver creates an observer writing to w at the given level.
func NewObserver(level Level, w io.Writer) *Observer {
	return &Observer{level: level, writer: w}
}

// Operation is one recorded pipeline operation.
type Operation struct {
	Component  string         `json:"component"`
	Name       string         `json:"operation"`
	Document   string         `json:"document,omitempty"`
	DurationMs int64          `json:"duration_ms"`
	Success    bool           `json:"success"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// StartTiming returns a completion function that records the operation's
// duration and outcome.
func (o *Observer) StartTiming(component, operation, document string) func(success bool, metadata map[string]any) {
	start := time.Now()
	return func(success bool, metadata map[string]any) {
		if o == nil || o.level == Off {
			return
		}
		op := Operation{
			Component:  component,
			Name:       operation,
			Document:   document,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		}
		if o.level == Debug {
			json.NewEncoder(o.writer).Encode(op)
		}
	}
}

// StartStep prints a nested progress line and returns a completion function.
// No output is produced below Debug level.
func (o *Observer) StartStep(component, step string) func(success bool, details string) {
	if o == nil || o.level < Debug {
		return func(bool, string) {}
	}
	start := time.Now()
	fmt.Fprintf(o.writer, "%s-> %s: %s\n", strings.Repeat("  ", o.indent), component, step)
	o.indent++
	return func(success bool, details string) {
		o.indent--
		marker := "ok"
		if !success {
			marker = "failed"
		}
		fmt.Fprintf(o.writer, "%s<- %s: %s %s (%dms) %s\n",
			strings.Repeat("  ", o.indent), component, step, marker,
			time.Since(start).Milliseconds(), details)
	}
}

// Detail logs a free-form detail line at Debug level.
func (o *Observer) Detail(component, detail string) {
	if o == nil || o.level < Debug {
		return
	}
	fmt.Fprintf(o.writer, "%s   %s: %s\n", strings.Repeat("  ", o.indent), component, detail)
}
