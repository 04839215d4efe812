// Package ingest parses uploaded CSV files and loads them into a PersonStore
// in batches through a bounded worker pool.
package ingest

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/AmarAbbas123/People-lookup/internal/llm"
	"github.com/AmarAbbas123/People-lookup/internal/metrics"
	"github.com/AmarAbbas123/People-lookup/internal/storage"
	"github.com/AmarAbbas123/People-lookup/pkg/types"
)

// Result is the final summary of a completed ingestion.
type Result struct {
	// ParsedRows counts every data row read from the file, including rows
	// later dropped for having an empty name.
	ParsedRows int `json:"parsedRows"`
	// TotalUpserted counts records created or actually changed by the
	// upload. Re-uploading an identical file yields 0.
	TotalUpserted int `json:"totalUpserted"`
}

// Progress carries live progress data for a running ingestion.
type Progress struct {
	ParsedRows    int    `json:"parsed_rows"`
	TotalUpserted int    `json:"total_upserted"`
	Done          bool   `json:"done"`
	Message       string `json:"message,omitempty"`
}

// ProgressFunc receives batch-level progress events. Implementations must
// be safe for concurrent use; the worker pool calls it from several
// goroutines.
type ProgressFunc func(Progress)

// Options tune batching and enrichment behavior.
type Options struct {
	BatchSize      int  // rows per bulk upsert (default 1000)
	Workers        int  // concurrent batch flushers (default 4)
	EmbedOnIngest  bool // compute embeddings while loading
	EmbedBatchSize int  // texts per embedding call (default 100)
}

func (o *Options) applyDefaults() {
	if o.BatchSize <= 0 {
		o.BatchSize = 1000
	}
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.EmbedBatchSize <= 0 {
		o.EmbedBatchSize = 100
	}
}

// Ingestor loads CSV data into a PersonStore.
type Ingestor struct {
	store    storage.PersonStore
	embedder llm.EmbeddingGenerator // nil disables enrichment
	opts     Options
	progress ProgressFunc // nil disables progress events
}

// NewIngestor creates an Ingestor. embedder and progress may be nil.
func NewIngestor(store storage.PersonStore, embedder llm.EmbeddingGenerator, opts Options, progress ProgressFunc) *Ingestor {
	opts.applyDefaults()
	return &Ingestor{
		store:    store,
		embedder: embedder,
		opts:     opts,
		progress: progress,
	}
}

// Ingest reads CSV data from r until EOF and upserts it in batches. Batches
// flush concurrently with unordered semantics: a failed batch is logged and
// skipped, later batches continue. The returned Result is best-effort when
// batches fail.
func (ing *Ingestor) Ingest(ctx context.Context, r io.Reader) (Result, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	sample, err := br.Peek(sniffWindow)
	if err != nil && !errors.Is(err, io.EOF) {
		return Result{}, fmt.Errorf("failed to read upload: %w", err)
	}
	sep := DetectSeparator(sample)

	reader := csv.NewReader(br)
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Result{}, nil
		}
		return Result{}, fmt.Errorf("failed to read header: %w", err)
	}
	cols := headerIndex(header)

	var (
		parsedRows    atomic.Int64
		totalUpserted atomic.Int64
		wg            sync.WaitGroup
		batches       = make(chan []types.Person)
	)

	for i := 0; i < ing.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range batches {
				ing.flush(ctx, batch, &parsedRows, &totalUpserted)
			}
		}()
	}

	batch := make([]types.Person, 0, ing.opts.BatchSize)
	var readErr error
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			readErr = fmt.Errorf("failed to read csv row: %w", err)
			break
		}
		parsedRows.Add(1)

		person, ok := mapRow(cols, record)
		if !ok {
			continue
		}
		batch = append(batch, person)
		if len(batch) >= ing.opts.BatchSize {
			batches <- batch
			batch = make([]types.Person, 0, ing.opts.BatchSize)
		}
	}
	if len(batch) > 0 {
		batches <- batch
	}
	close(batches)
	wg.Wait()

	result := Result{
		ParsedRows:    int(parsedRows.Load()),
		TotalUpserted: int(totalUpserted.Load()),
	}
	metrics.Default().AddRowsIngested(result.ParsedRows)
	if ing.progress != nil {
		ing.progress(Progress{
			ParsedRows:    result.ParsedRows,
			TotalUpserted: result.TotalUpserted,
			Done:          true,
			Message:       fmt.Sprintf("Ingested %d rows", result.ParsedRows),
		})
	}
	return result, readErr
}

// flush enriches and upserts one batch, updating the shared counters.
func (ing *Ingestor) flush(ctx context.Context, batch []types.Person, parsedRows, totalUpserted *atomic.Int64) {
	if ing.embedder != nil && ing.opts.EmbedOnIngest {
		ing.enrich(ctx, batch)
	}

	done := metrics.TimeStoreOp("bulk_upsert")
	res, err := ing.store.BulkUpsert(ctx, batch)
	done(err == nil)
	if err != nil {
		log.Printf("ingest: batch of %d failed, skipping: %v", len(batch), err)
		return
	}
	totalUpserted.Add(int64(res.Upserted))
	if res.Failed > 0 {
		log.Printf("ingest: %d records in batch failed to upsert", res.Failed)
	}

	if ing.progress != nil {
		ing.progress(Progress{
			ParsedRows:    int(parsedRows.Load()),
			TotalUpserted: int(totalUpserted.Load()),
		})
	}
}

// enrich computes embeddings for a batch in sub-batches. A failed sub-batch
// degrades to records without vectors rather than failing the upload.
func (ing *Ingestor) enrich(ctx context.Context, batch []types.Person) {
	model := ing.embedder.GetModel()
	for start := 0; start < len(batch); start += ing.opts.EmbedBatchSize {
		end := start + ing.opts.EmbedBatchSize
		if end > len(batch) {
			end = len(batch)
		}
		sub := batch[start:end]

		texts := make([]string, len(sub))
		for i := range sub {
			texts[i] = sub[i].EmbeddingText()
		}

		vecs, err := ing.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			log.Printf("ingest: embedding %d texts failed, continuing without vectors: %v", len(sub), err)
			continue
		}
		for i := range sub {
			sub[i].Embedding = vecs[i]
			sub[i].EmbeddingModel = model
		}
	}
}

// headerIndex maps trimmed, lowercased column names to their positions.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, exists := cols[key]; !exists {
			cols[key] = i
		}
	}
	return cols
}

// mapRow converts one CSV record into a Person. Rows without a name are
// dropped (ok=false). Unrecognized columns are ignored and a malformed
// p2e_score falls back to 0.
func mapRow(cols map[string]int, record []string) (types.Person, bool) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	p := types.Person{
		Name:        field("name"),
		Description: field("description"),
		Category:    field("category"),
		Blockchain:  field("blockchain"),
		Device:      field("device"),
		Status:      field("status"),
		NFT:         field("nft"),
		F2P:         field("f2p"),
		P2E:         field("p2e"),
	}
	if p.Name == "" {
		return types.Person{}, false
	}
	if raw := field("p2e_score"); raw != "" {
		if score, err := strconv.ParseFloat(raw, 64); err == nil {
			p.P2EScore = score
		}
	}
	return p, true
}
