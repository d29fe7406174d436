// Package audit persists a session audit trail of engine operations to a
// local SQLite file, using modernc.org/sqlite (the pack's pure-Go sqlite
// driver — the teacher surfaces the same "lib/sql" type contract in
// internal/modules/virtual_packages_other.go, exercised here with a real
// database/sql implementation). This is strictly an observability
// side-channel: the store itself stays in-memory and is rebuilt every run
// (spec.md §1 Non-goals "no persistence of the store").
package audit

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Log appends timestamped engine-operation records to a SQLite database
// under one session UUID per process run.
type Log struct {
	db        *sql.DB
	sessionID string
}

// Open creates (if necessary) the audit table at path and starts a new
// session.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("audit: open %s: %w", path, err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS audit_events (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT NOT NULL,
	occurred_at TEXT NOT NULL,
	op          TEXT NOT NULL,
	detail      TEXT NOT NULL
)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: create schema: %w", err)
	}
	return &Log{db: db, sessionID: uuid.NewString()}, nil
}

// SessionID returns the UUID identifying this run's audit rows.
func (l *Log) SessionID() string {
	return l.sessionID
}

// Record appends one audit row for an engine operation (e.g. "register",
// "lookup", "attach") along with a free-form detail string.
func (l *Log) Record(op, detail string) error {
	_, err := l.db.Exec(
		`INSERT INTO audit_events (session_id, occurred_at, op, detail) VALUES (?, ?, ?, ?)`,
		l.sessionID, time.Now().UTC().Format(time.RFC3339Nano), op, detail,
	)
	if err != nil {
		return fmt.Errorf("audit: record %s: %w", op, err)
	}
	return nil
}

// Event is one row read back from the audit log.
type Event struct {
	SessionID  string
	OccurredAt string
	Op         string
	Detail     string
}

// Events returns every row recorded for sessionID, oldest first.
func (l *Log) Events(sessionID string) ([]Event, error) {
	rows, err := l.db.Query(
		`SELECT session_id, occurred_at, op, detail FROM audit_events WHERE session_id = ? ORDER BY id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("audit: query session %s: %w", sessionID, err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.SessionID, &e.OccurredAt, &e.Op, &e.Detail); err != nil {
			return nil, fmt.Errorf("audit: scan row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (l *Log) Close() error {
	return l.db.Close()
}
