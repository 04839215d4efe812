package ingest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmarAbbas123/People-lookup/internal/storage/sqlite"
)

func newTestStore(t *testing.T) *sqlite.PersonStore {
	t.Helper()
	store, err := sqlite.NewPersonStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

const demoCSV = "name,description,category,blockchain,p2e_score\n" +
	"CryptoGame,A play-to-earn game,Gaming,Ethereum,8.5\n" +
	"ArtNFT,An NFT marketplace,Marketplace,Polygon,3\n" +
	"MetaWorld,A VR metaverse,Metaverse,Solana,7.2\n"

func TestIngestor_Ingest(t *testing.T) {
	store := newTestStore(t)
	ing := NewIngestor(store, nil, Options{}, nil)

	result, err := ing.Ingest(context.Background(), strings.NewReader(demoCSV))
	require.NoError(t, err)
	assert.Equal(t, 3, result.ParsedRows)
	assert.Equal(t, 3, result.TotalUpserted)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	people, err := store.FindByName(context.Background(), "cryptogame", 10)
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "CryptoGame", people[0].Name)
	assert.Equal(t, "Gaming", people[0].Category)
	assert.Equal(t, 8.5, people[0].P2EScore)
}

func TestIngestor_IdempotentReupload(t *testing.T) {
	store := newTestStore(t)
	ing := NewIngestor(store, nil, Options{}, nil)

	_, err := ing.Ingest(context.Background(), strings.NewReader(demoCSV))
	require.NoError(t, err)

	// The same file again changes nothing, so nothing counts as upserted.
	result, err := ing.Ingest(context.Background(), strings.NewReader(demoCSV))
	require.NoError(t, err)
	assert.Equal(t, 3, result.ParsedRows)
	assert.Equal(t, 0, result.TotalUpserted)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestIngestor_ChangedRowCountsOnce(t *testing.T) {
	store := newTestStore(t)
	ing := NewIngestor(store, nil, Options{}, nil)

	_, err := ing.Ingest(context.Background(), strings.NewReader(demoCSV))
	require.NoError(t, err)

	changed := strings.Replace(demoCSV, "Marketplace", "Art", 1)
	result, err := ing.Ingest(context.Background(), strings.NewReader(changed))
	require.NoError(t, err)
	assert.Equal(t, 3, result.ParsedRows)
	assert.Equal(t, 1, result.TotalUpserted)
}

func TestIngestor_DropsEmptyNames(t *testing.T) {
	store := newTestStore(t)
	ing := NewIngestor(store, nil, Options{}, nil)

	csv := "name,category\n" +
		"CryptoGame,Gaming\n" +
		",Orphan\n" +
		"   ,AlsoOrphan\n" +
		"ArtNFT,Marketplace\n"
	result, err := ing.Ingest(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	// Dropped rows still count as parsed, but never reach the store.
	assert.Equal(t, 4, result.ParsedRows)
	assert.Equal(t, 2, result.TotalUpserted)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestIngestor_SemicolonSeparated(t *testing.T) {
	store := newTestStore(t)
	ing := NewIngestor(store, nil, Options{}, nil)

	csv := "name;category;p2e_score\nCryptoGame;Gaming;9\nArtNFT;Marketplace;2\n"
	result, err := ing.Ingest(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, result.ParsedRows)
	assert.Equal(t, 2, result.TotalUpserted)
}

func TestIngestor_HeaderNormalization(t *testing.T) {
	store := newTestStore(t)
	ing := NewIngestor(store, nil, Options{}, nil)

	csv := " Name , CATEGORY ,ignored_column\nCryptoGame,Gaming,whatever\n"
	result, err := ing.Ingest(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalUpserted)

	people, err := store.FindByName(context.Background(), "CryptoGame", 10)
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "Gaming", people[0].Category)
}

func TestIngestor_ScoreFallsBackToZero(t *testing.T) {
	store := newTestStore(t)
	ing := NewIngestor(store, nil, Options{}, nil)

	csv := "name,p2e_score\nCryptoGame,not-a-number\nArtNFT,\n"
	_, err := ing.Ingest(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	for _, name := range []string{"CryptoGame", "ArtNFT"} {
		people, err := store.FindByName(context.Background(), name, 10)
		require.NoError(t, err)
		require.Len(t, people, 1)
		assert.Equal(t, 0.0, people[0].P2EScore)
	}
}

func TestIngestor_SmallBatchesFlushAll(t *testing.T) {
	store := newTestStore(t)
	ing := NewIngestor(store, nil, Options{BatchSize: 2, Workers: 3}, nil)

	var b strings.Builder
	b.WriteString("name,p2e_score\n")
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, "Game%02d,1\n", i)
	}

	result, err := ing.Ingest(context.Background(), strings.NewReader(b.String()))
	require.NoError(t, err)
	assert.Equal(t, 25, result.ParsedRows)
	assert.Equal(t, 25, result.TotalUpserted)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25, count)
}

func TestIngestor_ProgressEvents(t *testing.T) {
	store := newTestStore(t)

	var final Progress
	ing := NewIngestor(store, nil, Options{}, func(p Progress) {
		if p.Done {
			final = p
		}
	})

	_, err := ing.Ingest(context.Background(), strings.NewReader(demoCSV))
	require.NoError(t, err)
	assert.True(t, final.Done)
	assert.Equal(t, 3, final.ParsedRows)
}

func TestIngestor_EmptyFile(t *testing.T) {
	store := newTestStore(t)
	ing := NewIngestor(store, nil, Options{}, nil)

	result, err := ing.Ingest(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, result.ParsedRows)
	assert.Equal(t, 0, result.TotalUpserted)
}

