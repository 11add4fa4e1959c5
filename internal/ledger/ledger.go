// Package ledger provides an append-only journal of actueld lifecycle events.
// It exists for auditing only: nothing is ever read back to restore state.
package ledger

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Well-known event names.
const (
	EventConnected  = "connected"
	EventSuppressed = "suppressed"
	EventResumed    = "resumed"
)

// Entry represents a single journaled event
type Entry struct {
	ID        string
	Event     string
	Timestamp time.Time
}

// Ledger provides append-only event logging backed by SQLite
type Ledger struct {
	db *sql.DB
}

// New creates a new Ledger using the provided database connection
func New(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// Append adds a new event to the journal
func (l *Ledger) Append(event string, at time.Time) error {
	_, err := l.db.Exec(
		`INSERT INTO transition_log (id, event, timestamp) VALUES (?, ?, ?)`,
		uuid.NewString(), event, at.UTC().Unix(),
	)
	return err
}

// Transition journals a day/night transition, logging instead of failing.
// The control path never blocks on the journal.
func (l *Ledger) Transition(event string, at time.Time) {
	if err := l.Append(event, at); err != nil {
		log.Warn().Err(err).Str("event", event).Msg("Failed to journal transition")
	}
}

// Recent returns the most recent entries, newest first
func (l *Ledger) Recent(limit int) ([]*Entry, error) {
	rows, err := l.db.Query(`
		SELECT id, event, timestamp
		FROM transition_log
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var entry Entry
		var timestamp int64
		if err := rows.Scan(&entry.ID, &entry.Event, &timestamp); err != nil {
			return nil, err
		}
		entry.Timestamp = time.Unix(timestamp, 0).UTC()
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// DeleteOlderThan removes entries older than the retention period
func (l *Ledger) DeleteOlderThan(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention).Unix()
	result, err := l.db.Exec(`DELETE FROM transition_log WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
