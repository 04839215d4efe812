// Package storage provides composable storage interfaces for People Lookup.
//
// The storage layer is designed with small, focused interfaces that can be
// implemented independently and composed as needed, allowing SQLite and
// PostgreSQL backends to be swapped behind the same contract.
package storage

import (
	"context"

	"github.com/AmarAbbas123/People-lookup/pkg/types"
)

// PersonStore provides upsert and lookup operations for Person records.
type PersonStore interface {
	// Upsert creates or updates a single record keyed by name.
	Upsert(ctx context.Context, person *types.Person) error

	// BulkUpsert applies a batch of records as individual upserts keyed by
	// name, with unordered semantics: one failing record does not abort the
	// rest of the batch. The result counts created and changed records;
	// records whose stored fields are already identical are not counted.
	BulkUpsert(ctx context.Context, people []types.Person) (BulkResult, error)

	// FindByName returns records whose name contains the given substring,
	// case-insensitively, bounded by limit and ordered by insertion order.
	FindByName(ctx context.Context, substr string, limit int) ([]types.Person, error)

	// TopByScore returns the n records with the highest p2e_score.
	// Ties are broken by insertion order so results are deterministic.
	TopByScore(ctx context.Context, n int) ([]types.Person, error)

	// MatchFields returns records where any of the named fields contains
	// term case-insensitively, bounded by limit.
	MatchFields(ctx context.Context, term string, fields []string, limit int) ([]types.Person, error)

	// Count returns the total number of stored records.
	Count(ctx context.Context) (int, error)

	// DeleteAll removes every record. Used by the seed command.
	DeleteAll(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

// VectorSearcher ranks records by similarity to a query embedding.
// Only records carrying a vector produced by the given model participate.
type VectorSearcher interface {
	VectorSearch(ctx context.Context, query []float64, model string, opts VectorOptions) ([]types.ScoredPerson, error)
}
