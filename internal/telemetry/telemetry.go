// Package telemetry is a write-only observability sink: a tick/event log
// and periodic stats snapshots. It never restores world state — the core
// loop always boots from a freshly-generated world, per the persistence
// non-goal. This is purely an operational record for after-the-fact
// inspection, the same role the teacher's events/stats_history tables play
// alongside (not instead of) its save/restore world state.
package telemetry

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS run_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	tick INTEGER NOT NULL,
	category TEXT NOT NULL,
	description TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS tick_stats (
	tick INTEGER PRIMARY KEY,
	live_players INTEGER NOT NULL,
	live_eggs INTEGER NOT NULL,
	incantations_active INTEGER NOT NULL
);
`

// Sink wraps a SQLite-backed write-only telemetry store.
type Sink struct {
	db *sqlx.DB
}

// Open opens (creating if necessary) the telemetry database at path and
// applies the schema.
func Open(path string) (*Sink, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("telemetry: migrate: %w", err)
	}
	return &Sink{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Sink) Close() error {
	return s.db.Close()
}

// RecordEvent appends one row to the event log. Never read back by the
// core loop — this is an append-only audit trail.
func (s *Sink) RecordEvent(tick uint64, category, description string) error {
	_, err := s.db.Exec(
		`INSERT INTO run_events (tick, category, description) VALUES (?, ?, ?)`,
		tick, category, description,
	)
	if err != nil {
		return fmt.Errorf("telemetry: record event: %w", err)
	}
	return nil
}

// RecordTickStats appends one row of per-tick aggregate counters.
func (s *Sink) RecordTickStats(tick uint64, livePlayers, liveEggs, incantationsActive int) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO tick_stats (tick, live_players, live_eggs, incantations_active) VALUES (?, ?, ?, ?)`,
		tick, livePlayers, liveEggs, incantationsActive,
	)
	if err != nil {
		return fmt.Errorf("telemetry: record tick stats: %w", err)
	}
	return nil
}
