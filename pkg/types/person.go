// Package types defines the core data structures shared across the
// People Lookup application.
package types

import "strings"

// Person is the single record type managed by the application. Records are
// keyed by Name for upsert purposes: a later CSV row with the same name
// overwrites the earlier row's fields.
type Person struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Blockchain  string  `json:"blockchain,omitempty"`
	Device      string  `json:"device,omitempty"`
	Status      string  `json:"status,omitempty"`
	NFT         string  `json:"nft,omitempty"`
	F2P         string  `json:"f2p,omitempty"`
	P2E         string  `json:"p2e,omitempty"`
	P2EScore    float64 `json:"p2e_score"`

	// Embedding is the vector produced by the configured embedding model.
	// Empty until an embedding pass has run over the record.
	Embedding []float64 `json:"embedding,omitempty"`

	// EmbeddingModel records which model produced Embedding. Retrieval
	// treats a vector from a different model as absent, so switching
	// embedding providers never silently desyncs scores.
	EmbeddingModel string `json:"embedding_model,omitempty"`
}

// ScoredPerson is a Person annotated with a retrieval relevance score.
type ScoredPerson struct {
	Person
	Score float64 `json:"_score,omitempty"`
}

// EmbeddingText returns the text that is embedded for a record: name,
// description and category joined with spaces, skipping empty fields.
func (p *Person) EmbeddingText() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.Name, p.Description, p.Category} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// HasEmbedding reports whether the record carries a usable vector for the
// given model. An empty model argument accepts any stored vector.
func (p *Person) HasEmbedding(model string) bool {
	if len(p.Embedding) == 0 {
		return false
	}
	return model == "" || p.EmbeddingModel == model
}
