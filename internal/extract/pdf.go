// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"field-recon/internal/field"
)

// maxTextPages bounds text-fallback extraction for very large documents.
const maxTextPages = 50

// PDF extracts fields from a PDF document. Interactive AcroForm fields are
// preferred; documents without a form fall back to text extraction with
// "Label: value" line parsing.
func PDF(filePath string) ([]field.Field, error) {
	conf := model.NewDefaultConfiguration()
	if err := api.ValidateFile(filePath, conf); err != nil {
		return nil, fmt.Errorf("validating PDF: %w", err)
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	if fields := formFields(r); len(fields) > 0 {
		return fields, nil
	}
	return textFields(r), nil
}

// formFields walks the AcroForm field array in the document catalog.
func formFields(r *pdf.Reader) []field.Field {
	root := r.Trailer().Key("Root")
	if root.IsNull() {
		return nil
	}
	acroForm := root.Key("AcroForm")
	if acroForm.IsNull() {
		return nil
	}
	array := acroForm.Key("Fields")
	if array.IsNull() || array.Kind() != pdf.Array {
		return nil
	}

	var fields []field.Field
	for i := 0; i < array.Len(); i++ {
		collectFormField(array.Index(i), fmt.Sprintf("form[%d]", i), &fields)
	}
	return fields
}

// collectFormField extracts one field dictionary, recursing into Kids for
// hierarchical fields.
func collectFormField(v pdf.Value, path string, out *[]field.Field) {
	if v.IsNull() || v.Kind() != pdf.Dict {
		return
	}

	name := stringValue(v.Key("T"))
	value := stringValue(v.Key("V"))
	if value == "" {
		value = stringValue(v.Key("DV"))
	}
	if name != "" {
		*out = append(*out, field.Field{
			Path:   path,
			Label:  name,
			Value:  value,
			Format: formFieldFormat(v),
		})
	}

	kids := v.Key("Kids")
	if !kids.IsNull() && kids.Kind() == pdf.Array {
		for i := 0; i < kids.Len(); i++ {
			collectFormField(kids.Index(i), fmt.Sprintf("%s.kid[%d]", path, i), out)
		}
	}
}

// formFieldFormat maps the PDF field type tag to a coarse format name.
func formFieldFormat(v pdf.Value) string {
	switch stringValue(v.Key("FT")) {
	case "Tx":
		return "text"
	case "Btn":
		return "button"
	case "Ch":
		return "choice"
	case "Sig":
		return "signature"
	default:
		return ""
	}
}

func stringValue(v pdf.Value) string {
	if v.IsNull() {
		return ""
	}
	switch v.Kind() {
	case pdf.String:
		return v.Text()
	case pdf.Name:
		return v.Name()
	default:
		return ""
	}
}

// textFields extracts plain text page by page and parses labeled lines.
func textFields(r *pdf.Reader) []field.Field {
	pageCount := r.NumPage()
	if pageCount > maxTextPages {
		pageCount = maxTextPages
	}

	var fields []field.Field
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		p := r.Page(pageNum)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		fields = append(fields, parseLabeledLines(text, pageNum, len(fields))...)
	}
	return fields
}

// parseLabeledLines turns "Label: value" lines into fields. Lines without a
// colon, or with an over-long label, are skipped as prose.
func parseLabeledLines(text string, pageNum, offset int) []field.Field {
	var fields []field.Field
	for _, line := range strings.Split(text, "\n") {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		label = strings.TrimSpace(label)
		value = strings.TrimSpace(value)
		if label == "" || len(label) > 60 {
			continue
		}
		fields = append(fields, field.Field{
			Path:  fmt.Sprintf("page[%d].line[%d]", pageNum, offset+len(fields)),
			Label: label,
			Value: value,
		})
	}
	return fields
}
