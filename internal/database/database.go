package database

import (
	"database/sql"
	_ "github.com/mattn/go-sqlite3"
)

func New(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *sql.DB) error {
	_, err := db.Exec(`
-- TRUTHCHAIN Database Schema

-- News records are verified claims: text, content identifier, binding hash
-- and the attesting transaction. Append-only; rows are never updated.
CREATE TABLE IF NOT EXISTS news_records (
    id TEXT PRIMARY KEY,
    text TEXT NOT NULL,
    cid TEXT NOT NULL,
    hash TEXT NOT NULL,
    tx TEXT,
    file_name TEXT,
    file_type TEXT,
    timestamp TEXT NOT NULL,
    wallet_address TEXT,
    mode TEXT NOT NULL DEFAULT 'degraded',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- The verifier scans for duplicates before insert; these indexes are the
-- atomic backstop for submissions racing past that check.
CREATE UNIQUE INDEX IF NOT EXISTS idx_news_records_hash ON news_records(hash);
CREATE UNIQUE INDEX IF NOT EXISTS idx_news_records_tx ON news_records(tx) WHERE tx IS NOT NULL;
`)
	return err
}
