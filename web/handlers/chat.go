package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/AmarAbbas123/People-lookup/internal/answer"
	"github.com/AmarAbbas123/People-lookup/internal/metrics"
)

// Chat handles POST /api/chat - free-text question answering.
//
// Upstream embedding/generation failures never surface as 500s: the
// response degrades to a locally formatted summary with degraded set.
// Only a store failure is a server error.
func (h *APIHandlers) Chat(w http.ResponseWriter, r *http.Request) {
	done := metrics.TimeHTTPRequest("/api/chat")

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		done(http.StatusBadRequest)
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		done(http.StatusOK)
		respondJSON(w, http.StatusOK, ChatResponse{
			Answer: "Please ask a question (e.g., 'Tell me about CryptoGame').",
		})
		return
	}

	results, intent, err := h.engine.Run(r.Context(), question)
	if err != nil {
		done(http.StatusInternalServerError)
		respondError(w, http.StatusInternalServerError, "failed to search records", err)
		return
	}

	if len(results) == 0 {
		done(http.StatusOK)
		h.broadcastChat(question, intent.Kind.String(), 0, false)
		respondJSON(w, http.StatusOK, ChatResponse{
			Answer:  answer.NoMatchAnswer,
			Results: results,
		})
		return
	}

	// Vectors are an internal detail; keep them off the wire.
	for i := range results {
		results[i].Embedding = nil
		results[i].EmbeddingModel = ""
	}

	text, degraded := h.responder.Respond(r.Context(), question, results)
	done(http.StatusOK)
	h.broadcastChat(question, intent.Kind.String(), len(results), degraded)
	respondJSON(w, http.StatusOK, ChatResponse{
		Answer:   text,
		Results:  results,
		Degraded: degraded,
	})
}

func (h *APIHandlers) broadcastChat(question, kind string, results int, degraded bool) {
	if h.hub == nil {
		return
	}
	h.hub.BroadcastChat(ChatActivity{
		Question: question,
		Kind:     kind,
		Results:  results,
		Degraded: degraded,
	})
}
