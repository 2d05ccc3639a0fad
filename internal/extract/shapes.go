// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package extract flattens heterogeneous document exports into the flat
// labeled field lists the reconciliation engine consumes. Each supported
// document shape has its own pure extraction function, selected by an
// explicit discriminator, so adding a shape is additive.
package extract

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"field-recon/internal/field"
)

// Shape discriminates the supported JSON document layouts.
type Shape string

const (
	// ShapeFlat is a top-level array of labeled field objects.
	ShapeFlat Shape = "flat"
	// ShapePaginated is an object with a pages array, each page holding an
	// items (or textItems) array.
	ShapePaginated Shape = "paginated"
	// ShapeNested is an object tree whose value-bearing leaves become fields.
	ShapeNested Shape = "nested"
	// ShapeUnknown means no extraction function applies.
	ShapeUnknown Shape = "unknown"
)

// DetectShape inspects a decoded JSON document and picks the extraction
// shape. The discriminators are mutually exclusive: a top-level array is
// flat, an object with a "pages" array is paginated, any other object is
// treated as a nested tree.
func DetectShape(doc any) Shape {
	switch v := doc.(type) {
	case []any:
		return ShapeFlat
	case map[string]any:
		if pages, ok := v["pages"].([]any); ok && pages != nil {
			return ShapePaginated
		}
		return ShapeNested
	default:
		return ShapeUnknown
	}
}

// JSON decodes data and extracts fields according to the detected shape.
func JSON(data []byte) ([]field.Field, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document JSON: %w", err)
	}
	switch DetectShape(doc) {
	case ShapeFlat:
		return extractFlat(doc.([]any)), nil
	case ShapePaginated:
		return extractPaginated(doc.(map[string]any)), nil
	case ShapeNested:
		return extractNested(doc.(map[string]any)), nil
	default:
		return nil, fmt.Errorf("unsupported document shape")
	}
}

// extractFlat handles a top-level array of field objects.
func extractFlat(items []any) []field.Field {
	fields := make([]field.Field, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		f := fieldFromObject(obj, fmt.Sprintf("field[%d]", i))
		if f.Label != "" || f.Value != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// extractPaginated handles the paged export shape: pages[i].items[j] (the
// doc-style textItems key is accepted as an alias).
func extractPaginated(doc map[string]any) []field.Field {
	pages, _ := doc["pages"].([]any)
	var fields []field.Field
	for pi, page := range pages {
		pageObj, ok := page.(map[string]any)
		if !ok {
			continue
		}
		items, ok := pageObj["items"].([]any)
		if !ok {
			items, _ = pageObj["textItems"].([]any)
		}
		for ii, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			f := fieldFromObject(obj, fmt.Sprintf("page[%d].item[%d]", pi, ii))
			if f.Label != "" || f.Value != "" {
				fields = append(fields, f)
			}
		}
	}
	return fields
}

// extractNested walks an object tree. Objects carrying a label or value key
// are value-bearing leaves; everything else is a container whose key joins
// the path chain. Keys are visited in sorted order for determinism.
func extractNested(doc map[string]any) []field.Field {
	var fields []field.Field
	walkNested(doc, "", &fields)
	return fields
}

func walkNested(node any, path string, out *[]field.Field) {
	switch v := node.(type) {
	case map[string]any:
		if isLeafObject(v) {
			f := fieldFromObject(v, path)
			if f.Label == "" {
				f.Label = lastSegment(path)
			}
			*out = append(*out, f)
			return
		}
		for _, key := range sortedKeys(v) {
			walkNested(v[key], joinPath(path, key), out)
		}
	case []any:
		for i, item := range v {
			walkNested(item, fmt.Sprintf("%s[%d]", path, i), out)
		}
	default:
		// Scalar leaf without a wrapping object: the key is the label.
		if path == "" {
			return
		}
		*out = append(*out, field.Field{
			Path:  path,
			Label: lastSegment(path),
			Value: coerceString(node),
		})
	}
}

// isLeafObject reports whether an object is a value-bearing leaf rather than
// a container of children.
func isLeafObject(obj map[string]any) bool {
	if _, ok := obj["label"]; ok {
		return true
	}
	if _, ok := obj["value"]; ok {
		return true
	}
	return false
}

// fieldFromObject builds a Field from one decoded object. All attribute
// coercions default to empty strings, never fail.
func fieldFromObject(obj map[string]any, path string) field.Field {
	return field.Field{
		Path:   path,
		Label:  coerceString(obj["label"]),
		Value:  coerceString(obj["value"]),
		Format: coerceString(obj["format"]),
		Font:   coerceString(obj["font"]),
	}
}

// coerceString renders a decoded JSON scalar as a string; anything
// non-scalar coerces to "".
func coerceString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	case json.Number:
		return s.String()
	default:
		return ""
	}
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

func lastSegment(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i+1:]
		}
	}
	return path
}
