// Package handlers provides HTTP handlers and middleware for the People
// Lookup API.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/AmarAbbas123/People-lookup/internal/answer"
	"github.com/AmarAbbas123/People-lookup/internal/config"
	"github.com/AmarAbbas123/People-lookup/internal/ingest"
	"github.com/AmarAbbas123/People-lookup/internal/metrics"
	"github.com/AmarAbbas123/People-lookup/internal/retrieval"
	"github.com/AmarAbbas123/People-lookup/internal/storage"
)

const (
	peopleLimitDefault = 100
	peopleLimitMax     = 1000
)

// APIHandlers contains HTTP handlers for the REST API.
type APIHandlers struct {
	store     storage.PersonStore
	config    *config.Config
	ingestor  *ingest.Ingestor
	engine    *retrieval.Engine
	responder *answer.Responder
	hub       *WebSocketHub
	startTime time.Time
}

// NewAPIHandlers creates a new APIHandlers instance. hub may be nil when no
// event stream is attached.
func NewAPIHandlers(store storage.PersonStore, cfg *config.Config, ingestor *ingest.Ingestor, engine *retrieval.Engine, responder *answer.Responder, hub *WebSocketHub) *APIHandlers {
	return &APIHandlers{
		store:     store,
		config:    cfg,
		ingestor:  ingestor,
		engine:    engine,
		responder: responder,
		hub:       hub,
		startTime: time.Now(),
	}
}

// People handles GET /api/people - case-insensitive substring search on name.
func (h *APIHandlers) People(w http.ResponseWriter, r *http.Request) {
	done := metrics.TimeHTTPRequest("/api/people")

	name := r.URL.Query().Get("name")
	if name == "" {
		done(http.StatusBadRequest)
		respondError(w, http.StatusBadRequest, "name query parameter is required", nil)
		return
	}

	limit := parseInt(r.URL.Query().Get("limit"), peopleLimitDefault)
	if limit > peopleLimitMax {
		limit = peopleLimitMax
	}
	if limit < 1 {
		limit = peopleLimitDefault
	}

	people, err := h.store.FindByName(r.Context(), name, limit)
	if err != nil {
		done(http.StatusInternalServerError)
		respondError(w, http.StatusInternalServerError, "failed to search people", err)
		return
	}

	// Vectors are an internal detail; keep them off the wire.
	for i := range people {
		people[i].Embedding = nil
		people[i].EmbeddingModel = ""
	}

	done(http.StatusOK)
	respondJSON(w, http.StatusOK, people)
}

// Health handles GET /api/health - liveness plus basic store stats.
func (h *APIHandlers) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.Count(r.Context())
	if err != nil {
		respondJSON(w, http.StatusOK, HealthResponse{
			Status:        "degraded",
			UptimeSeconds: time.Since(h.startTime).Seconds(),
		})
		return
	}
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Records:       count,
	})
}

// parseInt parses an integer from a string, returning defaultValue if parsing fails.
func parseInt(s string, defaultValue int) int {
	if s == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return val
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers already sent; log and move on.
		fmt.Printf("failed to encode JSON response: %v\n", err)
	}
}

// respondError writes an error response with the given status code.
func respondError(w http.ResponseWriter, statusCode int, message string, err error) {
	errResp := ErrorResponse{
		Error: message,
		Code:  http.StatusText(statusCode),
	}
	if err != nil {
		errResp.Details = map[string]interface{}{
			"error": err.Error(),
		}
	}
	respondJSON(w, statusCode, errResp)
}
