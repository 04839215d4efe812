// Package sqlite provides a SQLite implementation of the storage interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/AmarAbbas123/People-lookup/internal/storage"
	"github.com/AmarAbbas123/People-lookup/pkg/types"
)

// PersonStore implements storage.PersonStore using SQLite.
type PersonStore struct {
	db *sql.DB
}

// NewPersonStore opens a SQLite database, configures WAL mode, and creates
// the schema. The dsn is a file path or ":memory:".
func NewPersonStore(dsn string) (*PersonStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}

	// SQLite only supports one concurrent writer. A single open connection
	// serialises writes and avoids SQLITE_BUSY errors when concurrent
	// uploads flush batches at the same time. WAL mode lets readers proceed
	// without blocking the writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to set busy timeout: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to create schema: %w", err)
	}

	return &PersonStore{db: db}, nil
}

// GetDB returns the underlying database connection.
func (s *PersonStore) GetDB() *sql.DB {
	return s.db
}

// Close releases the database connection.
func (s *PersonStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// upsertSQL updates every CSV-mapped field but leaves a previously stored
// embedding untouched, mirroring a set-update that does not mention the
// embedding field. The WHERE clause skips the update when nothing changed,
// so RowsAffected counts created + actually-modified records only.
const upsertSQL = `
	INSERT INTO people (name, description, category, blockchain, device, status, nft, f2p, p2e, p2e_score)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET
		description = excluded.description,
		category    = excluded.category,
		blockchain  = excluded.blockchain,
		device      = excluded.device,
		status      = excluded.status,
		nft         = excluded.nft,
		f2p         = excluded.f2p,
		p2e         = excluded.p2e,
		p2e_score   = excluded.p2e_score,
		updated_at  = CURRENT_TIMESTAMP
	WHERE people.description IS NOT excluded.description
	   OR people.category    IS NOT excluded.category
	   OR people.blockchain  IS NOT excluded.blockchain
	   OR people.device      IS NOT excluded.device
	   OR people.status      IS NOT excluded.status
	   OR people.nft         IS NOT excluded.nft
	   OR people.f2p         IS NOT excluded.f2p
	   OR people.p2e         IS NOT excluded.p2e
	   OR people.p2e_score   IS NOT excluded.p2e_score
`

// upsertWithEmbeddingSQL additionally writes the embedding columns. Used
// when the incoming record carries a vector (seed path, embed-on-ingest).
const upsertWithEmbeddingSQL = `
	INSERT INTO people (name, description, category, blockchain, device, status, nft, f2p, p2e, p2e_score, embedding, embedding_model)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET
		description     = excluded.description,
		category        = excluded.category,
		blockchain      = excluded.blockchain,
		device          = excluded.device,
		status          = excluded.status,
		nft             = excluded.nft,
		f2p             = excluded.f2p,
		p2e             = excluded.p2e,
		p2e_score       = excluded.p2e_score,
		embedding       = excluded.embedding,
		embedding_model = excluded.embedding_model,
		updated_at      = CURRENT_TIMESTAMP
	WHERE people.description     IS NOT excluded.description
	   OR people.category        IS NOT excluded.category
	   OR people.blockchain      IS NOT excluded.blockchain
	   OR people.device          IS NOT excluded.device
	   OR people.status          IS NOT excluded.status
	   OR people.nft             IS NOT excluded.nft
	   OR people.f2p             IS NOT excluded.f2p
	   OR people.p2e             IS NOT excluded.p2e
	   OR people.p2e_score       IS NOT excluded.p2e_score
	   OR people.embedding       IS NOT excluded.embedding
	   OR people.embedding_model IS NOT excluded.embedding_model
`

// Upsert creates or updates a single record keyed by name.
func (s *PersonStore) Upsert(ctx context.Context, person *types.Person) error {
	if person == nil {
		return storage.ErrInvalidInput
	}
	if person.Name == "" {
		return fmt.Errorf("%w: person name is required", storage.ErrInvalidInput)
	}
	_, err := s.execUpsert(ctx, s.db, person)
	return err
}

// execUpsert runs the appropriate upsert statement for the record and
// returns the number of rows affected (0 when the stored row is identical).
func (s *PersonStore) execUpsert(ctx context.Context, ex execer, p *types.Person) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if len(p.Embedding) > 0 {
		res, err = ex.ExecContext(ctx, upsertWithEmbeddingSQL,
			p.Name, p.Description, p.Category, p.Blockchain, p.Device,
			p.Status, p.NFT, p.F2P, p.P2E, p.P2EScore,
			serializeEmbedding(p.Embedding), p.EmbeddingModel)
	} else {
		res, err = ex.ExecContext(ctx, upsertSQL,
			p.Name, p.Description, p.Category, p.Blockchain, p.Device,
			p.Status, p.NFT, p.F2P, p.P2E, p.P2EScore)
	}
	if err != nil {
		return 0, fmt.Errorf("sqlite: upsert %q: %w", p.Name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite: rows affected for %q: %w", p.Name, err)
	}
	return n, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// BulkUpsert applies a batch of records inside a single transaction.
// Individual record failures are logged and skipped (unordered semantics);
// the rest of the batch still commits.
func (s *PersonStore) BulkUpsert(ctx context.Context, people []types.Person) (storage.BulkResult, error) {
	var result storage.BulkResult
	if len(people) == 0 {
		return result, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("sqlite: begin bulk upsert: %w", err)
	}

	for i := range people {
		p := &people[i]
		if p.Name == "" {
			continue
		}
		n, err := s.execUpsert(ctx, tx, p)
		if err != nil {
			log.Printf("sqlite: bulk upsert error for %q: %v", p.Name, err)
			result.Failed++
			continue
		}
		result.Upserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return storage.BulkResult{}, fmt.Errorf("sqlite: commit bulk upsert: %w", err)
	}
	return result, nil
}

// personSelectColumns is the canonical SELECT column list for the people
// table. It must match the scan order in scanPerson.
const personSelectColumns = `
	name, description, category, blockchain, device, status,
	nft, f2p, p2e, p2e_score, embedding, embedding_model
`

// FindByName returns records whose name contains substr case-insensitively,
// in insertion order.
func (s *PersonStore) FindByName(ctx context.Context, substr string, limit int) ([]types.Person, error) {
	if limit < 1 {
		limit = 100
	}
	pattern := "%" + escapeLike(strings.ToLower(substr)) + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+personSelectColumns+`
		FROM people
		WHERE LOWER(name) LIKE ? ESCAPE '\'
		ORDER BY rowid
		LIMIT ?`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: FindByName %q: %w", substr, err)
	}
	defer func() { _ = rows.Close() }()

	return scanPeople(rows)
}

// TopByScore returns the n highest-scoring records, ties broken by
// insertion order.
func (s *PersonStore) TopByScore(ctx context.Context, n int) ([]types.Person, error) {
	if n < 1 {
		n = 5
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+personSelectColumns+`
		FROM people
		ORDER BY p2e_score DESC, rowid ASC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("sqlite: TopByScore: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanPeople(rows)
}

// MatchFields returns records where any of the named fields contains term
// case-insensitively. Unknown field names are rejected before they can
// reach SQL.
func (s *PersonStore) MatchFields(ctx context.Context, term string, fields []string, limit int) ([]types.Person, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: at least one field is required", storage.ErrInvalidInput)
	}
	if limit < 1 {
		limit = 50
	}

	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	var (
		clauses []string
		args    []interface{}
	)
	for _, f := range fields {
		if !storage.FieldAllowed(f) {
			return nil, fmt.Errorf("%w: unknown field %q", storage.ErrInvalidInput, f)
		}
		clauses = append(clauses, fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, f))
		args = append(args, pattern)
	}
	args = append(args, limit)

	query := `
		SELECT ` + personSelectColumns + `
		FROM people
		WHERE ` + strings.Join(clauses, " OR ") + `
		ORDER BY rowid
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: MatchFields %q: %w", term, err)
	}
	defer func() { _ = rows.Close() }()

	return scanPeople(rows)
}

// Count returns the total number of stored records.
func (s *PersonStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM people").Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: Count: %w", err)
	}
	return n, nil
}

// DeleteAll removes every record.
func (s *PersonStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM people"); err != nil {
		return fmt.Errorf("sqlite: DeleteAll: %w", err)
	}
	return nil
}

// escapeLike escapes LIKE metacharacters so user-supplied terms match
// literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// scanPeople reads all rows returned by a query into a []types.Person slice.
// The SELECT column order must match personSelectColumns.
func scanPeople(rows *sql.Rows) ([]types.Person, error) {
	var people []types.Person

	for rows.Next() {
		var p types.Person
		var blob []byte
		var model sql.NullString

		err := rows.Scan(
			&p.Name, &p.Description, &p.Category, &p.Blockchain, &p.Device,
			&p.Status, &p.NFT, &p.F2P, &p.P2E, &p.P2EScore, &blob, &model,
		)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan person row: %w", err)
		}

		if len(blob) > 0 {
			vec, err := deserializeEmbedding(blob)
			if err != nil {
				return nil, fmt.Errorf("sqlite: embedding for %q: %w", p.Name, err)
			}
			p.Embedding = vec
		}
		if model.Valid {
			p.EmbeddingModel = model.String
		}

		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: rows error: %w", err)
	}
	return people, nil
}

// Compile-time assertion.
var _ storage.PersonStore = (*PersonStore)(nil)
