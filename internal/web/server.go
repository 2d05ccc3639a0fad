// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package web exposes the reconciliation pipeline over HTTP: a direct
// multipart endpoint for small documents, chunked uploads for large ones,
// and discovery endpoints for the available output formats.
package web

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"field-recon/internal/core"
	"field-recon/internal/formatters"
	"field-recon/internal/reconcile"
	"field-recon/internal/version"

	// Import formatters to register them
	_ "field-recon/internal/formatters/csv"
	_ "field-recon/internal/formatters/json"
	_ "field-recon/internal/formatters/text"
	_ "field-recon/internal/formatters/yaml"
)

// maxUploadBytes caps any single uploaded document or chunk.
const maxUploadBytes = 100 << 20

// Server serves the reconciliation HTTP API.
type Server struct {
	port    string
	server  *http.Server
	mux     *http.ServeMux
	uploads *uploadStore
}

// NewServer creates a server that stages uploads under a fresh temp
// directory.
func NewServer(port string) (*Server, error) {
	dir, err := os.MkdirTemp("", "field-recon-uploads-")
	if err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	s := &Server{
		port:    port,
		mux:     http.NewServeMux(),
		uploads: newUploadStore(dir),
	}
	s.setupRoutes()
	return s, nil
}

// Handler returns the server's route handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start listens on the configured port, falling back through 8080-8089 when
// the requested port is busy.
func (s *Server) Start() error {
	var lastError error
	for i := 0; i < 10; i++ {
		currentPort := s.port
		if i > 0 || s.port == "8080" {
			currentPort = fmt.Sprintf("%d", 8080+i)
		}

		listener, err := net.Listen("tcp", ":"+currentPort)
		if err != nil {
			lastError = err
			if i == 0 {
				fmt.Printf("Port %s is not available, trying alternative ports...\n", currentPort)
			}
			continue
		}
		listener.Close()

		s.server = &http.Server{
			Addr:              ":" + currentPort,
			Handler:           s.mux,
			ReadHeaderTimeout: 15 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		fmt.Printf("field-recon server started on port %s\n", currentPort)
		fmt.Printf("Local: http://localhost:%s\n", currentPort)

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lastError = err
			fmt.Printf("Server on port %s failed: %v\n", currentPort, err)
			continue
		}
		return nil
	}

	return fmt.Errorf("could not find an available port in range 8080-8089: %v", lastError)
}

// Stop shuts down the server.
func (s *Server) Stop() error {
	if s.server != nil {
		return s.server.Close()
	}
	return nil
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/formats", s.handleFormats)
	s.mux.HandleFunc("/api/reconcile", s.handleReconcile)
	s.mux.HandleFunc("/api/chunked/init", s.handleChunkedInit)
	s.mux.HandleFunc("/api/chunked/chunk", s.handleChunkedChunk)
	s.mux.HandleFunc("/api/chunked/complete", s.handleChunkedComplete)
	s.mux.HandleFunc("/api/chunked/status", s.handleChunkedStatus)
	s.mux.HandleFunc("/api/chunked/cancel", s.handleChunkedCancel)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	versionInfo := version.Full()
	healthData := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "field-recon-web",
		"version":   versionInfo["version"],
		"build_info": map[string]any{
			"version":    versionInfo["version"],
			"commit":     versionInfo["commit"],
			"build_date": versionInfo["buildDate"],
			"go_version": versionInfo["goVersion"],
			"platform":   versionInfo["platform"],
		},
	}

	s.sendJSON(w, http.StatusOK, healthData)
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.sendJSON(w, http.StatusOK, map[string]any{
		"formats": formatters.GetSupportedFormats(),
	})
}

// handleReconcile reconciles an uploaded source document against an uploaded
// reference structure. Each side arrives either as a multipart file part
// ("source", "reference") or as the fileId of a completed chunked upload
// ("sourceFileId", "referenceFileId").
func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.sendError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	sourcePath, cleanupSource, err := s.resolveDocument(r, "source", "sourceFileId")
	if err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanupSource()

	referencePath, cleanupReference, err := s.resolveDocument(r, "reference", "referenceFileId")
	if err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanupReference()

	mode, ok := reconcile.ParseMode(r.FormValue("mode"))
	if !ok {
		s.sendError(w, http.StatusBadRequest, fmt.Sprintf("unknown mode %q", r.FormValue("mode")))
		return
	}

	format := r.FormValue("format")
	if format == "" {
		format = "json"
	}
	confidence := r.FormValue("confidence")
	if confidence == "" {
		confidence = "all"
	}

	run, err := core.Run(core.RunConfig{
		SourcePath:    sourcePath,
		ReferencePath: referencePath,
		Mode:          mode,
	})
	if err != nil {
		s.sendError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	content, mimeType, filename, err := formatters.ExportForWeb(format, run, formatters.FormatterOptions{
		ConfidenceLevel: core.ParseConfidenceLevels(confidence),
		NoColor:         true,
	})
	if err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, content)
}

// resolveDocument returns a local path for one side of the reconciliation,
// from either an uploaded part or a completed chunked upload.
func (s *Server) resolveDocument(r *http.Request, fileField, idField string) (string, func(), error) {
	noop := func() {}

	if fileID := r.FormValue(idField); fileID != "" {
		path, ok := s.uploads.Lookup(fileID)
		if !ok {
			return "", noop, fmt.Errorf("unknown fileId %q", fileID)
		}
		return path, noop, nil
	}

	file, header, err := r.FormFile(fileField)
	if err != nil {
		return "", noop, fmt.Errorf("missing %q upload", fileField)
	}
	defer file.Close()

	path, err := s.stageUpload(file, header)
	if err != nil {
		return "", noop, err
	}
	return path, func() { os.Remove(path) }, nil
}

// stageUpload copies an uploaded part to a temp file, preserving the
// extension so the extractor can route on it.
func (s *Server) stageUpload(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := filepath.Ext(header.Filename)
	tmp, err := os.CreateTemp(s.uploads.dir, "upload_*"+ext)
	if err != nil {
		return "", fmt.Errorf("creating temporary file: %w", err)
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, io.LimitReader(file, maxUploadBytes)); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("copying upload: %w", err)
	}
	return tmp.Name(), nil
}

type chunkedInitRequest struct {
	FileName    string `json:"fileName"`
	TotalSize   int64  `json:"totalSize"`
	ChunkSize   int64  `json:"chunkSize"`
	TotalChunks int    `json:"totalChunks"`
	FileType    string `json:"fileType,omitempty"`
}

func (s *Server) handleChunkedInit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chunkedInitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	session, err := s.uploads.Init(req.FileName, req.TotalSize, req.ChunkSize, req.TotalChunks)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.sendJSON(w, http.StatusOK, map[string]any{
		"uploadId":    session.ID,
		"chunkSize":   session.ChunkSize,
		"totalChunks": session.TotalChunks,
		"expiresAt":   session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleChunkedChunk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.sendError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	uploadID := r.FormValue("uploadId")
	var chunkIndex int
	if _, err := fmt.Sscanf(r.FormValue("chunkIndex"), "%d", &chunkIndex); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid chunkIndex")
		return
	}

	file, _, err := r.FormFile("chunk")
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "missing chunk upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "reading chunk")
		return
	}

	if err := s.uploads.SaveChunk(uploadID, chunkIndex, data, r.FormValue("checksum")); err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.sendJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"chunkIndex": chunkIndex,
		"chunkSize":  len(data),
	})
}

type chunkedCompleteRequest struct {
	UploadID string `json:"uploadId"`
}

func (s *Server) handleChunkedComplete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chunkedCompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	fileID, fileName, size, err := s.uploads.Complete(req.UploadID)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.sendJSON(w, http.StatusOK, map[string]any{
		"fileId":   fileID,
		"fileName": fileName,
		"size":     size,
		"message":  fmt.Sprintf("File %q uploaded successfully via chunked upload", fileName),
	})
}

func (s *Server) handleChunkedStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uploadID := r.URL.Query().Get("uploadId")
	received, total, ok := s.uploads.Status(uploadID)
	if !ok {
		s.sendError(w, http.StatusNotFound, "upload session not found")
		return
	}

	s.sendJSON(w, http.StatusOK, map[string]any{
		"uploadId":       uploadID,
		"receivedChunks": received,
		"totalChunks":    total,
		"progress":       float64(received) / float64(total) * 100,
	})
}

func (s *Server) handleChunkedCancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uploadID := r.URL.Query().Get("uploadId")
	if !s.uploads.Cancel(uploadID) {
		s.sendError(w, http.StatusNotFound, "upload session not found")
		return
	}

	s.sendJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Upload %s cancelled successfully", uploadID),
	})
}

func (s *Server) sendJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func (s *Server) sendError(w http.ResponseWriter, status int, message string) {
	s.sendJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}
