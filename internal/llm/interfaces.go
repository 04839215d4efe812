// Package llm provides clients for hosted embedding and text-generation
// APIs. All HTTP calls are wrapped with circuit breaker protection.
package llm

import "context"

// TextGenerator is the interface for answer generation. The chat path uses
// single-string completion style (not multi-turn chat).
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
	GetModel() string
}

// EmbeddingGenerator is the interface for generating vector embeddings.
// EmbedBatch returns one vector per input text, in the same order.
type EmbeddingGenerator interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
	GetModel() string
}
