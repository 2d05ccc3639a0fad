// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"field-recon/internal/field"
)

// ForFile extracts fields from a document file, routed by extension.
func ForFile(filePath string) ([]field.Field, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json":
		data, err := os.ReadFile(filepath.Clean(filePath))
		if err != nil {
			return nil, fmt.Errorf("reading document: %w", err)
		}
		return JSON(data)
	case ".pdf":
		return PDF(filePath)
	default:
		return nil, fmt.Errorf("unsupported document type %q (expected .json or .pdf)", filepath.Ext(filePath))
	}
}

// CanProcess reports whether ForFile supports the file's extension.
func CanProcess(filePath string) bool {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json", ".pdf":
		return true
	}
	return false
}
