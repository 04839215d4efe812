package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/AmarAbbas123/People-lookup/internal/metrics"
)

// Upload handles POST /api/upload - multipart CSV ingestion.
//
// The uploaded file is spooled to a temp file, parsed in batches, and the
// temp file is removed regardless of outcome. Missing file input is a 400;
// a read error mid-stream is a 500; otherwise the parsed/upserted counts
// plus the resulting store size are returned.
func (h *APIHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	done := metrics.TimeHTTPRequest("/api/upload")

	r.Body = http.MaxBytesReader(w, r.Body, h.config.Upload.MaxBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		status := http.StatusBadRequest
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			status = http.StatusRequestEntityTooLarge
		}
		done(status)
		respondError(w, status, "failed to parse upload", err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		done(http.StatusBadRequest)
		respondError(w, http.StatusBadRequest, "no file uploaded", err)
		return
	}
	defer func() { _ = file.Close() }()

	tmpPath, err := h.spool(file)
	if err != nil {
		done(http.StatusInternalServerError)
		respondError(w, http.StatusInternalServerError, "failed to store upload", err)
		return
	}
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			log.Printf("upload: failed to remove temp file %s: %v", tmpPath, err)
		}
	}()

	tmp, err := os.Open(tmpPath)
	if err != nil {
		done(http.StatusInternalServerError)
		respondError(w, http.StatusInternalServerError, "failed to read upload", err)
		return
	}
	defer func() { _ = tmp.Close() }()

	result, err := h.ingestor.Ingest(r.Context(), tmp)
	if err != nil {
		done(http.StatusInternalServerError)
		respondError(w, http.StatusInternalServerError, "failed to process csv", err)
		return
	}

	count, err := h.store.Count(r.Context())
	if err != nil {
		log.Printf("upload: failed to count records: %v", err)
	}

	done(http.StatusOK)
	respondJSON(w, http.StatusOK, UploadResponse{
		Message:       fmt.Sprintf("Processed %d rows", result.ParsedRows),
		ParsedRows:    result.ParsedRows,
		TotalUpserted: result.TotalUpserted,
		DBCount:       count,
	})
}

// spool copies the upload to a uniquely named temp file and returns its path.
func (h *APIHandlers) spool(src io.Reader) (string, error) {
	dir := h.config.Upload.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, "upload-"+uuid.New().String()+".csv")

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	return path, nil
}
