package sqlite

import (
	"context"
	"fmt"
	"sort"

	"github.com/AmarAbbas123/People-lookup/internal/storage"
	"github.com/AmarAbbas123/People-lookup/pkg/types"
)

// Ensure *PersonStore implements storage.VectorSearcher at compile time.
var _ storage.VectorSearcher = (*PersonStore)(nil)

// VectorSearch ranks stored records by cosine similarity to the query
// vector. Candidates are loaded into Go memory in insertion order, capped
// by opts.CandidateLimit, and only records whose embedding was produced by
// the given model participate — a vector from a different model is treated
// as absent rather than compared against incompatible coordinates.
//
// The sort is stable, so equal scores keep insertion order and results are
// reproducible across runs.
func (s *PersonStore) VectorSearch(ctx context.Context, query []float64, model string, opts storage.VectorOptions) ([]types.ScoredPerson, error) {
	opts.Normalize()

	if len(query) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+personSelectColumns+`
		FROM people
		WHERE embedding IS NOT NULL AND LENGTH(embedding) > 0 AND embedding_model = ?
		ORDER BY rowid
		LIMIT ?`, model, opts.CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: VectorSearch load candidates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	candidates, err := scanPeople(rows)
	if err != nil {
		return nil, fmt.Errorf("sqlite: VectorSearch scan: %w", err)
	}

	scored := make([]types.ScoredPerson, 0, len(candidates))
	for _, p := range candidates {
		scored = append(scored, types.ScoredPerson{
			Person: p,
			Score:  storage.CosineSimilarity(query, p.Embedding),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > opts.TopK {
		scored = scored[:opts.TopK]
	}
	return scored, nil
}
