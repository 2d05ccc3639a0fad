// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// sessionTTL is how long an initialized upload may stay incomplete before
// the store reclaims its chunks.
const sessionTTL = time.Hour

// uploadSession tracks one in-flight chunked upload.
type uploadSession struct {
	ID          string
	FileName    string
	TotalSize   int64
	ChunkSize   int64
	TotalChunks int
	Chunks      map[int]string // chunk index -> chunk file path
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// uploadStore holds chunked upload sessions and assembled files in memory,
// with chunk payloads staged on disk under dir.
type uploadStore struct {
	mu       sync.Mutex
	sessions map[string]*uploadSession
	files    map[string]string // fileId -> assembled file path
	dir      string
	now      func() time.Time
}

func newUploadStore(dir string) *uploadStore {
	return &uploadStore{
		sessions: make(map[string]*uploadSession),
		files:    make(map[string]string),
		dir:      dir,
		now:      time.Now,
	}
}

// newID returns a random 128-bit hex identifier.
func newID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// timestamp so uploads still work if it somehow does.
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}

// Init validates the declared geometry and creates a new session.
func (s *uploadStore) Init(fileName string, totalSize, chunkSize int64, totalChunks int) (*uploadSession, error) {
	if fileName == "" {
		return nil, fmt.Errorf("fileName is required")
	}
	if totalSize <= 0 || chunkSize <= 0 {
		return nil, fmt.Errorf("totalSize and chunkSize must be positive")
	}
	expected := int((totalSize + chunkSize - 1) / chunkSize)
	if totalChunks != expected {
		return nil, fmt.Errorf("invalid chunk count: expected %d, got %d", expected, totalChunks)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneExpiredLocked()

	now := s.now()
	session := &uploadSession{
		ID:          newID(),
		FileName:    filepath.Base(fileName),
		TotalSize:   totalSize,
		ChunkSize:   chunkSize,
		TotalChunks: totalChunks,
		Chunks:      make(map[int]string),
		CreatedAt:   now,
		ExpiresAt:   now.Add(sessionTTL),
	}
	s.sessions[session.ID] = session
	return session, nil
}

// SaveChunk stores one chunk payload. When checksum is non-empty it must be
// the hex SHA-256 of the payload. Re-uploading a received chunk is a no-op.
func (s *uploadStore) SaveChunk(uploadID string, chunkIndex int, data []byte, checksum string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneExpiredLocked()

	session, ok := s.sessions[uploadID]
	if !ok {
		return fmt.Errorf("upload session %s not found", uploadID)
	}
	if chunkIndex < 0 || chunkIndex >= session.TotalChunks {
		return fmt.Errorf("invalid chunk index %d: expected 0-%d", chunkIndex, session.TotalChunks-1)
	}
	if _, exists := session.Chunks[chunkIndex]; exists {
		return nil
	}
	if checksum != "" {
		sum := sha256.Sum256(data)
		if !hexEqual(checksum, sum[:]) {
			return fmt.Errorf("chunk %d checksum mismatch", chunkIndex)
		}
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s_chunk_%d", uploadID, chunkIndex))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing chunk %d: %w", chunkIndex, err)
	}
	session.Chunks[chunkIndex] = path
	return nil
}

// Complete assembles all chunks in index order into a single file, verifies
// the declared total size, registers the file, and drops the session.
func (s *uploadStore) Complete(uploadID string) (fileID, fileName string, size int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[uploadID]
	if !ok {
		return "", "", 0, fmt.Errorf("upload session %s not found", uploadID)
	}

	var missing []int
	for i := 0; i < session.TotalChunks; i++ {
		if _, ok := session.Chunks[i]; !ok {
			missing = append(missing, i)
		}
	}
	if len(missing) > 0 {
		return "", "", 0, fmt.Errorf("missing chunks: %v", missing)
	}

	fileID = newID()
	finalPath := filepath.Join(s.dir, fileID+"_"+session.FileName)
	final, err := os.Create(finalPath)
	if err != nil {
		return "", "", 0, fmt.Errorf("creating assembled file: %w", err)
	}

	indexes := make([]int, 0, len(session.Chunks))
	for i := range session.Chunks {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	for _, i := range indexes {
		data, readErr := os.ReadFile(session.Chunks[i])
		if readErr != nil {
			final.Close()
			os.Remove(finalPath)
			return "", "", 0, fmt.Errorf("reading chunk %d: %w", i, readErr)
		}
		if _, writeErr := final.Write(data); writeErr != nil {
			final.Close()
			os.Remove(finalPath)
			return "", "", 0, fmt.Errorf("assembling chunk %d: %w", i, writeErr)
		}
		size += int64(len(data))
		os.Remove(session.Chunks[i])
	}
	if closeErr := final.Close(); closeErr != nil {
		os.Remove(finalPath)
		return "", "", 0, closeErr
	}

	if size != session.TotalSize {
		os.Remove(finalPath)
		return "", "", 0, fmt.Errorf("file size mismatch: expected %d, got %d", session.TotalSize, size)
	}

	s.files[fileID] = finalPath
	delete(s.sessions, uploadID)
	return fileID, session.FileName, size, nil
}

// Lookup resolves a completed upload's file path by its fileId.
func (s *uploadStore) Lookup(fileID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	path, ok := s.files[fileID]
	return path, ok
}

// Status reports progress for an in-flight session.
func (s *uploadStore) Status(uploadID string) (received, total int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, exists := s.sessions[uploadID]
	if !exists {
		return 0, 0, false
	}
	return len(session.Chunks), session.TotalChunks, true
}

// Cancel drops a session and removes its staged chunks.
func (s *uploadStore) Cancel(uploadID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[uploadID]
	if !ok {
		return false
	}
	for _, path := range session.Chunks {
		os.Remove(path)
	}
	delete(s.sessions, uploadID)
	return true
}

func (s *uploadStore) pruneExpiredLocked() {
	now := s.now()
	for id, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			for _, path := range session.Chunks {
				os.Remove(path)
			}
			delete(s.sessions, id)
		}
	}
}

func hexEqual(checksum string, sum []byte) bool {
	decoded, err := hex.DecodeString(checksum)
	if err != nil || len(decoded) != len(sum) {
		return false
	}
	for i := range sum {
		if decoded[i] != sum[i] {
			return false
		}
	}
	return true
}
