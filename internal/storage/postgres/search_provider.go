package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AmarAbbas123/People-lookup/internal/storage"
	"github.com/AmarAbbas123/People-lookup/pkg/types"
)

// Ensure *PersonStore implements storage.VectorSearcher at compile time.
var _ storage.VectorSearcher = (*PersonStore)(nil)

// VectorSearch performs similarity search inside PostgreSQL using the
// pgvector <=> cosine-distance operator. A candidate pool of
// opts.NumCandidates nearest rows is ranked and the top opts.TopK are
// returned, mirroring a managed vector-search call with numCandidates and
// limit parameters.
//
// Returns storage.ErrVectorUnavailable when pgvector is absent, so callers
// degrade to keyword retrieval.
func (s *PersonStore) VectorSearch(ctx context.Context, query []float64, model string, opts storage.VectorOptions) ([]types.ScoredPerson, error) {
	opts.Normalize()

	if !s.pgvectorAvailable {
		return nil, storage.ErrVectorUnavailable
	}
	if len(query) == 0 {
		return nil, nil
	}

	const querySQL = `
		SELECT name, description, category, blockchain, device, status,
		       nft, f2p, p2e, p2e_score, embedding_model,
		       1 - (embedding <=> $1) AS score
		FROM (
			SELECT *
			FROM people
			WHERE embedding IS NOT NULL AND embedding_model = $2
			ORDER BY embedding <=> $1
			LIMIT $3
		) candidates
		ORDER BY embedding <=> $1
		LIMIT $4
	`

	rows, err := s.db.QueryContext(ctx, querySQL,
		toVector(query), model, opts.NumCandidates, opts.TopK)
	if err != nil {
		return nil, fmt.Errorf("postgres: VectorSearch: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanScoredPeople(rows)
}

// scanScoredPeople reads rows produced by VectorSearch, which append a
// score column to the usual person columns.
func scanScoredPeople(rows *sql.Rows) ([]types.ScoredPerson, error) {
	var results []types.ScoredPerson

	for rows.Next() {
		var sp types.ScoredPerson
		err := rows.Scan(
			&sp.Name, &sp.Description, &sp.Category, &sp.Blockchain, &sp.Device,
			&sp.Status, &sp.NFT, &sp.F2P, &sp.P2E, &sp.P2EScore,
			&sp.EmbeddingModel, &sp.Score,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan scored row: %w", err)
		}
		results = append(results, sp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows error: %w", err)
	}
	return results, nil
}
