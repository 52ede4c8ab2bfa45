package store

// schemaVersionV1 is the run-history schema.
const schemaVersionV1 = 1

// schemaV1 is the run-history DDL.
var schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);

CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	dataset    TEXT NOT NULL,
	split      TEXT,
	pipeline   TEXT NOT NULL,
	backend    TEXT NOT NULL,
	examples   INTEGER NOT NULL,
	score      REAL NOT NULL,
	payload    TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`
