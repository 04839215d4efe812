package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmarAbbas123/People-lookup/internal/answer"
	"github.com/AmarAbbas123/People-lookup/internal/config"
	"github.com/AmarAbbas123/People-lookup/internal/ingest"
	"github.com/AmarAbbas123/People-lookup/internal/llm"
	"github.com/AmarAbbas123/People-lookup/internal/retrieval"
	"github.com/AmarAbbas123/People-lookup/internal/storage/sqlite"
	"github.com/AmarAbbas123/People-lookup/pkg/types"
)

func testConfig() *config.Config {
	return &config.Config{
		Upload: config.UploadConfig{
			MaxBytes:       50 * 1024 * 1024,
			BatchSize:      1000,
			EmbedBatchSize: 100,
			Workers:        4,
		},
		Retrieval: config.RetrievalConfig{Mode: "pattern"},
		Security:  config.SecurityConfig{Mode: "development"},
	}
}

// newTestHandlers wires APIHandlers against an in-memory SQLite store.
// generator may be nil for handlers that never reach the LLM.
func newTestHandlers(t *testing.T, generator llm.TextGenerator) (*APIHandlers, *sqlite.PersonStore) {
	t.Helper()
	store, err := sqlite.NewPersonStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cfg := testConfig()
	ingestor := ingest.NewIngestor(store, nil, ingest.Options{}, nil)
	engine := retrieval.NewEngine(store, store, nil, cfg.Retrieval)
	responder := answer.NewResponder(generator)
	return NewAPIHandlers(store, cfg, ingestor, engine, responder, nil), store
}

func insertTestPerson(t *testing.T, store *sqlite.PersonStore, p types.Person) {
	t.Helper()
	require.NoError(t, store.Upsert(context.Background(), &p))
}

func TestPeople_MissingNameParam(t *testing.T) {
	h, _ := newTestHandlers(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/people", nil)
	rec := httptest.NewRecorder()
	h.People(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Contains(t, errResp.Error, "name")
}

func TestPeople_Search(t *testing.T) {
	h, store := newTestHandlers(t, nil)
	insertTestPerson(t, store, types.Person{Name: "CryptoGame", Category: "Gaming"})
	insertTestPerson(t, store, types.Person{Name: "cryptopunk"})
	insertTestPerson(t, store, types.Person{Name: "ArtNFT"})

	req := httptest.NewRequest(http.MethodGet, "/api/people?name=crypto", nil)
	rec := httptest.NewRecorder()
	h.People(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var people []types.Person
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &people))
	require.Len(t, people, 2)
	assert.Equal(t, "CryptoGame", people[0].Name)
}

func TestPeople_LimitCappedAt1000(t *testing.T) {
	h, store := newTestHandlers(t, nil)
	insertTestPerson(t, store, types.Person{Name: "CryptoGame"})

	// An absurd limit must not error; it is clamped server-side.
	req := httptest.NewRequest(http.MethodGet, "/api/people?name=crypto&limit=999999", nil)
	rec := httptest.NewRecorder()
	h.People(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/people?name=crypto&limit=-3", nil)
	rec = httptest.NewRecorder()
	h.People(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPeople_OmitsEmbeddings(t *testing.T) {
	h, store := newTestHandlers(t, nil)
	insertTestPerson(t, store, types.Person{
		Name:           "CryptoGame",
		Embedding:      []float64{0.1, 0.2},
		EmbeddingModel: "m1",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/people?name=crypto", nil)
	rec := httptest.NewRecorder()
	h.People(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "embedding")
}

func TestHealth(t *testing.T) {
	h, store := newTestHandlers(t, nil)
	insertTestPerson(t, store, types.Person{Name: "CryptoGame"})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 1, health.Records)
	assert.GreaterOrEqual(t, health.UptimeSeconds, 0.0)
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 7, parseInt("7", 1))
	assert.Equal(t, 1, parseInt("", 1))
	assert.Equal(t, 1, parseInt("junk", 1))
}
