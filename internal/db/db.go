// Package db provides the SQLite connection and schema for actueld.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQLite database connection
type DB struct {
	*sql.DB
}

// Open opens the database and initializes the schema
func Open(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &DB{db}, nil
}

// initSchema creates all required tables
func initSchema(db *sql.DB) error {
	// Transition log - append-only journal of lifecycle and day/night
	// transition events. Never read back to restore state.
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS transition_log (
			id TEXT PRIMARY KEY,
			event TEXT NOT NULL,
			timestamp INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_transition_event_ts ON transition_log(event, timestamp);
	`)
	if err != nil {
		return fmt.Errorf("failed to create transition_log table: %w", err)
	}

	return nil
}
