package storage

import "errors"

var (
	// ErrNotFound indicates that the requested record was not found.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput indicates that the input parameters are invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrVectorUnavailable indicates that the backend cannot perform
	// vector search, so callers should degrade to keyword retrieval.
	ErrVectorUnavailable = errors.New("vector search unavailable")
)

// MatchableFields lists every column a keyword listing query may probe.
// Listing intents OR across all of them; the generic fallback uses the
// primary text fields only.
var (
	MatchableFields = []string{
		"category", "blockchain", "device", "status",
		"nft", "f2p", "p2e", "description", "name",
	}
	PrimaryTextFields = []string{"name", "description", "category"}
)

// BulkResult reports the outcome of a BulkUpsert call.
type BulkResult struct {
	// Upserted counts records that were created or whose stored fields
	// actually changed. Unchanged records do not count.
	Upserted int

	// Failed counts records that errored individually. Failures are
	// logged by the store and never abort the batch.
	Failed int
}

// VectorOptions bounds a vector similarity search.
type VectorOptions struct {
	// CandidateLimit caps how many stored embeddings are considered
	// when ranking happens in-process (default: 5000). Candidates are
	// taken in insertion order.
	CandidateLimit int

	// NumCandidates is the candidate pool size for backends that rank
	// inside the database (default: 200).
	NumCandidates int

	// TopK is the number of results to return (default: 5).
	TopK int
}

// Normalize applies defaults and caps to the options.
func (o *VectorOptions) Normalize() {
	if o.CandidateLimit < 1 {
		o.CandidateLimit = 5000
	}
	if o.NumCandidates < 1 {
		o.NumCandidates = 200
	}
	if o.TopK < 1 {
		o.TopK = 5
	}
}

// fieldAllowed reports whether a caller-supplied field name is a known
// column. MatchFields implementations whitelist through this to keep
// user-derived terms out of SQL identifiers.
func FieldAllowed(field string) bool {
	for _, f := range MatchableFields {
		if f == field {
			return true
		}
	}
	return false
}
