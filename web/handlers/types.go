package handlers

import "github.com/AmarAbbas123/People-lookup/pkg/types"

// ErrorResponse is the standard error response format for the API.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// UploadResponse is the response format for POST /api/upload.
type UploadResponse struct {
	Message       string `json:"message"`
	ParsedRows    int    `json:"parsedRows"`
	TotalUpserted int    `json:"totalUpserted"`
	DBCount       int    `json:"dbCount"`
}

// ChatRequest is the request format for POST /api/chat.
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse is the response format for POST /api/chat. Degraded marks
// answers where an upstream embedding or generation call failed and the
// response fell back to a locally formatted summary.
type ChatResponse struct {
	Answer   string               `json:"answer"`
	Results  []types.ScoredPerson `json:"results,omitempty"`
	Degraded bool                 `json:"degraded,omitempty"`
}

// HealthResponse is the response format for GET /api/health.
type HealthResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Records       int     `json:"records"`
}
