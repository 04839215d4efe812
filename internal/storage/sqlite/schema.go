package sqlite

// Schema defines the SQLite schema for the people collection.
//
// name carries a unique index so upserts can key on it; rowid preserves
// insertion order and is used as the deterministic tie-break in ranked
// queries. Embeddings are stored inline as little-endian float64 BLOBs
// together with the model that produced them.
const Schema = `
CREATE TABLE IF NOT EXISTS people (
	name            TEXT NOT NULL UNIQUE,
	description     TEXT NOT NULL DEFAULT '',
	category        TEXT NOT NULL DEFAULT '',
	blockchain      TEXT NOT NULL DEFAULT '',
	device          TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL DEFAULT '',
	nft             TEXT NOT NULL DEFAULT '',
	f2p             TEXT NOT NULL DEFAULT '',
	p2e             TEXT NOT NULL DEFAULT '',
	p2e_score       REAL NOT NULL DEFAULT 0,
	embedding       BLOB,
	embedding_model TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_people_score ON people(p2e_score DESC);
`
