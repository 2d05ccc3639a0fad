// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

const sourceJSON = `[
	{"label": "First Name", "value": "John"},
	{"label": "Premium Amount", "value": "$1,000"}
]`

const referenceYAML = `
fields:
  - label: first name
    value: John
  - label: Premium Amount
    value: "1000"
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer("8080")
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(s.uploads.dir) })
	return s
}

func postMultipart(t *testing.T, handler http.Handler, url string, files map[string][2]string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for field, nameAndContent := range files {
		part, err := writer.CreateFormFile(field, nameAndContent[0])
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write([]byte(nameAndContent[1])); err != nil {
			t.Fatal(err)
		}
	}
	for field, value := range fields {
		if err := writer.WriteField(field, value); err != nil {
			t.Fatal(err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var health map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if health["status"] != "healthy" || health["service"] != "field-recon-web" {
		t.Errorf("health = %+v", health)
	}
}

func TestHandleFormats(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/formats", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Formats []struct {
			Name string `json:"name"`
		} `json:"formats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	names := make(map[string]bool)
	for _, f := range resp.Formats {
		names[f.Name] = true
	}
	for _, want := range []string{"csv", "json", "text", "yaml"} {
		if !names[want] {
			t.Errorf("format %q missing from %v", want, names)
		}
	}
}

func TestHandleReconcile_Multipart(t *testing.T) {
	s := newTestServer(t)
	rec := postMultipart(t, s.Handler(), "/api/reconcile",
		map[string][2]string{
			"source":    {"source.json", sourceJSON},
			"reference": {"reference.yaml", referenceYAML},
		},
		map[string]string{"mode": "assignment", "format": "json"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var report struct {
		Summary struct {
			Total   int `json:"total"`
			Matched int `json:"matched"`
		} `json:"summary"`
		Entries []struct {
			Key string `json:"key"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if report.Summary.Total != 2 || report.Summary.Matched != 2 {
		t.Errorf("summary = %+v", report.Summary)
	}
	if len(report.Entries) != 2 {
		t.Errorf("entries = %+v", report.Entries)
	}
}

func TestHandleReconcile_MissingUpload(t *testing.T) {
	s := newTestServer(t)
	rec := postMultipart(t, s.Handler(), "/api/reconcile",
		map[string][2]string{
			"source": {"source.json", sourceJSON},
		},
		map[string]string{"mode": "assignment"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "reference") {
		t.Errorf("error should mention missing reference: %s", rec.Body.String())
	}
}

func TestHandleReconcile_UnknownMode(t *testing.T) {
	s := newTestServer(t)
	rec := postMultipart(t, s.Handler(), "/api/reconcile",
		map[string][2]string{
			"source":    {"source.json", sourceJSON},
			"reference": {"reference.yaml", referenceYAML},
		},
		map[string]string{"mode": "optimal"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestChunkedUploadFlow(t *testing.T) {
	s := newTestServer(t)
	handler := s.Handler()

	payload := []byte(sourceJSON)
	half := (len(payload) + 1) / 2
	chunks := [][]byte{payload[:half], payload[half:]}

	initBody, _ := json.Marshal(map[string]any{
		"fileName":    "source.json",
		"totalSize":   len(payload),
		"chunkSize":   half,
		"totalChunks": 2,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/chunked/init", bytes.NewReader(initBody))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("init status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var initResp struct {
		UploadID string `json:"uploadId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &initResp); err != nil || initResp.UploadID == "" {
		t.Fatalf("init response = %s", rec.Body.String())
	}

	// Upload out of order with checksums.
	for _, idx := range []int{1, 0} {
		sum := sha256.Sum256(chunks[idx])
		rec := postMultipart(t, handler, "/api/chunked/chunk",
			map[string][2]string{"chunk": {"blob", string(chunks[idx])}},
			map[string]string{
				"uploadId":   initResp.UploadID,
				"chunkIndex": fmt.Sprintf("%d", idx),
				"checksum":   hex.EncodeToString(sum[:]),
			})
		if rec.Code != http.StatusOK {
			t.Fatalf("chunk %d status = %d, body = %s", idx, rec.Code, rec.Body.String())
		}
	}

	completeBody, _ := json.Marshal(map[string]string{"uploadId": initResp.UploadID})
	req = httptest.NewRequest(http.MethodPost, "/api/chunked/complete", bytes.NewReader(completeBody))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var completeResp struct {
		FileID string `json:"fileId"`
		Size   int64  `json:"size"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &completeResp); err != nil {
		t.Fatal(err)
	}
	if completeResp.FileID == "" || completeResp.Size != int64(len(payload)) {
		t.Fatalf("complete response = %s", rec.Body.String())
	}

	// The assembled file can drive a reconciliation via its fileId.
	rec2 := postMultipart(t, handler, "/api/reconcile",
		map[string][2]string{
			"reference": {"reference.yaml", referenceYAML},
		},
		map[string]string{
			"sourceFileId": completeResp.FileID,
			"mode":         "assignment",
			"format":       "json",
		})
	if rec2.Code != http.StatusOK {
		t.Fatalf("reconcile via fileId status = %d, body = %s", rec2.Code, rec2.Body.String())
	}
}

func TestChunked_ChecksumMismatch(t *testing.T) {
	s := newTestServer(t)
	session, err := s.uploads.Init("doc.json", 4, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.uploads.SaveChunk(session.ID, 0, []byte("abcd"), "deadbeef"); err == nil {
		t.Error("expected checksum mismatch error")
	}
}

func TestChunked_CompleteMissingChunks(t *testing.T) {
	s := newTestServer(t)
	session, err := s.uploads.Init("doc.json", 10, 5, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.uploads.SaveChunk(session.ID, 0, []byte("12345"), ""); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := s.uploads.Complete(session.ID); err == nil {
		t.Error("expected error for missing chunk")
	}
}

func TestChunked_InitValidatesGeometry(t *testing.T) {
	s := newTestServer(t)
	if _, err := s.uploads.Init("doc.json", 10, 4, 2); err == nil {
		t.Error("expected chunk count validation error (10 bytes in 4-byte chunks needs 3)")
	}
	if _, err := s.uploads.Init("", 10, 5, 2); err == nil {
		t.Error("expected error for empty file name")
	}
}
