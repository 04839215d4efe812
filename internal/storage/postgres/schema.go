package postgres

// Schema defines the base PostgreSQL schema for the people collection.
// All statements are idempotent so the schema can be re-applied on startup.
const Schema = `
CREATE TABLE IF NOT EXISTS people (
	id              BIGSERIAL PRIMARY KEY,
	name            TEXT NOT NULL UNIQUE,
	description     TEXT NOT NULL DEFAULT '',
	category        TEXT NOT NULL DEFAULT '',
	blockchain      TEXT NOT NULL DEFAULT '',
	device          TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL DEFAULT '',
	nft             TEXT NOT NULL DEFAULT '',
	f2p             TEXT NOT NULL DEFAULT '',
	p2e             TEXT NOT NULL DEFAULT '',
	p2e_score       DOUBLE PRECISION NOT NULL DEFAULT 0,
	embedding_model TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_people_score ON people (p2e_score DESC);
`

// MigrationPgvector adds the vector column once the pgvector extension is
// confirmed available. The column is dimensionless so the store works with
// any embedding model; similarity queries use the <=> cosine operator.
const MigrationPgvector = `
ALTER TABLE people ADD COLUMN IF NOT EXISTS embedding vector;
`
