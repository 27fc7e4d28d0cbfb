package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
	token      TEXT PRIMARY KEY,
	user_id    TEXT    NOT NULL,
	expires_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS reminders (
	id                TEXT PRIMARY KEY,
	owner_id          TEXT    NOT NULL,
	title             TEXT    NOT NULL,
	description       TEXT    NOT NULL DEFAULT '',
	due_at            INTEGER NOT NULL,
	completed         INTEGER NOT NULL DEFAULT 0,
	notified          INTEGER NOT NULL DEFAULT 0,
	priority          TEXT    NOT NULL DEFAULT 'medium',
	location_name     TEXT,
	latitude          REAL,
	longitude         REAL,
	radius            REAL,
	location_notified INTEGER NOT NULL DEFAULT 0,
	created_at        TEXT    NOT NULL,
	updated_at        TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reminders_owner_due ON reminders (owner_id, due_at);
CREATE INDEX IF NOT EXISTS idx_reminders_due ON reminders (due_at) WHERE notified = 0 AND completed = 0;
`

// Store is an embedded SQLite backend for single-node deployments.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The sweep and HTTP handlers write from different goroutines.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
