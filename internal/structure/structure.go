// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package structure loads authored reference structures and flattens them
// into the field list the reconciliation engine consumes. Container nodes
// are flagged as section markers; callers exclude those from matching.
package structure

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"field-recon/internal/field"
)

// Node is one entry in an authored structure: either a leaf field (label
// with optional expected value/format/font) or a container with child
// fields and subsections.
type Node struct {
	Name     string `yaml:"name"`
	Label    string `yaml:"label"`
	Value    string `yaml:"value"`
	Format   string `yaml:"format"`
	Font     string `yaml:"font"`
	Fields   []Node `yaml:"fields"`
	Sections []Node `yaml:"sections"`
}

// Document is the root of an authored reference structure.
type Document struct {
	Name     string `yaml:"name"`
	Fields   []Node `yaml:"fields"`
	Sections []Node `yaml:"sections"`
}

// Load reads and flattens a structure document. YAML and JSON are both
// accepted (yaml.v3 parses JSON input).
func Load(filePath string) ([]field.Field, error) {
	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		return nil, fmt.Errorf("reading structure file: %w", err)
	}
	return Parse(data)
}

// Parse flattens a structure document from raw bytes.
func Parse(data []byte) ([]field.Field, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing structure document: %w", err)
	}
	return Flatten(doc), nil
}

// Flatten walks the structure tree depth-first and emits one field per
// node. Paths are the joined node chain, deduplicated so they stay unique
// within the document.
func Flatten(doc Document) []field.Field {
	fl := &flattener{seen: make(map[string]int)}
	for _, n := range doc.Fields {
		fl.walk(n, "")
	}
	for _, n := range doc.Sections {
		fl.walk(n, "")
	}
	return fl.fields
}

type flattener struct {
	fields []field.Field
	seen   map[string]int
}

func (fl *flattener) walk(n Node, parent string) {
	name := n.Name
	if name == "" {
		name = n.Label
	}
	path := fl.uniquePath(joinPath(parent, name))

	if len(n.Fields) == 0 && len(n.Sections) == 0 {
		fl.fields = append(fl.fields, field.Field{
			Path:   path,
			Label:  n.Label,
			Value:  n.Value,
			Format: n.Format,
			Font:   n.Font,
		})
		return
	}

	label := n.Label
	if label == "" {
		label = n.Name
	}
	fl.fields = append(fl.fields, field.Field{Path: path, Label: label, Section: true})
	for _, child := range n.Fields {
		fl.walk(child, path)
	}
	for _, child := range n.Sections {
		fl.walk(child, path)
	}
}

// uniquePath suffixes duplicate node chains so the path stays a usable
// identity even when authors repeat labels.
func (fl *flattener) uniquePath(path string) string {
	count := fl.seen[path]
	fl.seen[path] = count + 1
	if count == 0 {
		return path
	}
	return fmt.Sprintf("%s#%d", path, count+1)
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// Partition splits flattened fields into matchable leaves and section
// markers. Section markers are excluded from reconciliation but still
// reported to the caller.
func Partition(fields []field.Field) (matchable, sections []field.Field) {
	for _, f := range fields {
		if f.Section {
			sections = append(sections, f)
		} else {
			matchable = append(matchable, f)
		}
	}
	return matchable, sections
}
