// Package retrieval executes classified intents against a PersonStore, or
// runs a semantic vector search when the service is configured for it.
package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/AmarAbbas123/People-lookup/internal/config"
	"github.com/AmarAbbas123/People-lookup/internal/llm"
	"github.com/AmarAbbas123/People-lookup/internal/metrics"
	"github.com/AmarAbbas123/People-lookup/internal/query"
	"github.com/AmarAbbas123/People-lookup/internal/storage"
	"github.com/AmarAbbas123/People-lookup/pkg/types"
)

const (
	nameLookupLimit = 10
	listingLimit    = 50
)

// Engine resolves questions to matching records.
type Engine struct {
	store    storage.PersonStore
	vector   storage.VectorSearcher // nil when the backend has no vector path
	embedder llm.EmbeddingGenerator // nil when no provider is configured
	cfg      config.RetrievalConfig
}

// NewEngine creates a retrieval engine. vector and embedder may be nil; the
// semantic mode then falls back to pattern retrieval.
func NewEngine(store storage.PersonStore, vector storage.VectorSearcher, embedder llm.EmbeddingGenerator, cfg config.RetrievalConfig) *Engine {
	return &Engine{store: store, vector: vector, embedder: embedder, cfg: cfg}
}

// Run resolves a question into scored records plus the intent that produced
// them. In semantic mode with a configured embedder, the question is
// embedded and ranked by vector similarity; any semantic failure falls back
// to pattern retrieval rather than erroring.
func (e *Engine) Run(ctx context.Context, question string) ([]types.ScoredPerson, query.Intent, error) {
	if e.cfg.Mode == "semantic" && e.embedder != nil && e.vector != nil {
		results, err := e.Semantic(ctx, question)
		if err == nil {
			return results, query.Intent{Kind: query.KindGeneric, Term: question}, nil
		}
	}

	intent := query.Classify(question)
	results, err := e.Resolve(ctx, intent)
	return results, intent, err
}

// Resolve executes a single classified intent.
func (e *Engine) Resolve(ctx context.Context, intent query.Intent) ([]types.ScoredPerson, error) {
	done := metrics.TimeStoreOp("retrieve_" + intent.Kind.String())

	var (
		people []types.Person
		err    error
	)
	switch intent.Kind {
	case query.KindName:
		people, err = e.byName(ctx, intent.Name)
	case query.KindTopN:
		people, err = e.store.TopByScore(ctx, intent.N)
	case query.KindListing:
		people, err = e.store.MatchFields(ctx, intent.Term, storage.MatchableFields, listingLimit)
	default:
		people, err = e.store.MatchFields(ctx, intent.Term, storage.PrimaryTextFields, listingLimit)
	}
	done(err == nil)
	if err != nil {
		return nil, err
	}
	return asScored(people), nil
}

// byName looks a record up by partial name. When the bounded partial list
// contains an exact (case-insensitive) match, or exactly one record matched
// at all, a single record is returned; otherwise the partial list stands.
func (e *Engine) byName(ctx context.Context, name string) ([]types.Person, error) {
	people, err := e.store.FindByName(ctx, name, nameLookupLimit)
	if err != nil {
		return nil, err
	}
	if len(people) <= 1 {
		return people, nil
	}
	for i := range people {
		if strings.EqualFold(people[i].Name, name) {
			return people[i : i+1], nil
		}
	}
	return people, nil
}

// Semantic embeds the question and ranks stored vectors against it.
func (e *Engine) Semantic(ctx context.Context, question string) ([]types.ScoredPerson, error) {
	if e.embedder == nil || e.vector == nil {
		return nil, fmt.Errorf("semantic retrieval is not configured")
	}

	qvec, err := e.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	done := metrics.TimeStoreOp("vector_search")
	results, err := e.vector.VectorSearch(ctx, qvec, e.embedder.GetModel(), storage.VectorOptions{
		CandidateLimit: e.cfg.CandidateLimit,
		NumCandidates:  e.cfg.NumCandidates,
		TopK:           e.cfg.TopK,
	})
	done(err == nil)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}
	return results, nil
}

func asScored(people []types.Person) []types.ScoredPerson {
	scored := make([]types.ScoredPerson, len(people))
	for i := range people {
		scored[i] = types.ScoredPerson{Person: people[i]}
	}
	return scored
}
