// Package stats is the stat persistence adapter (spec 6): it records
// every StatEvent the tick loop emits and answers the global leaderboard
// query. Backed by modernc.org/sqlite (a pure-Go driver, so the core
// never needs cgo to persist) rather than an in-memory map, so stats
// outlive one process the way the teacher's own persistence concerns
// assume a real database.
package stats

import (
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/icehockey/core/adapter"
)

// Store is a sqlite-backed adapter.Persistence. Safe for concurrent use
// from the eventbus actor that owns it; nothing in this package is
// called from the tick loop's hot path directly (spec 9).
type Store struct {
	db *sql.DB
}

// Open creates/migrates a sqlite database at path ("file::memory:?cache=shared"
// works for tests) and returns a ready Store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "stats: open database")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "stats: migrate schema")
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS stat_events (
	id        TEXT PRIMARY KEY,
	kind      TEXT NOT NULL,
	player_id TEXT NOT NULL,
	ts        INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_stat_events_player ON stat_events(player_id);
`

// RecordStatEvent appends one stat event (spec 6 Persistence.record_stat_event).
func (s *Store) RecordStatEvent(ev adapter.StatEvent) error {
	_, err := s.db.Exec(
		`INSERT INTO stat_events (id, kind, player_id, ts) VALUES (?, ?, ?, ?)`,
		ev.ID, ev.Kind.String(), ev.PlayerID, ev.TS,
	)
	if err != nil {
		return errors.Wrap(err, "stats: record stat event")
	}
	return nil
}

// GlobalLeaderboard aggregates every recorded stat event into one row
// per player (spec 6 Persistence.get_global_leaderboard — a
// SPEC_FULL-supplemented query path the distilled spec only named).
func (s *Store) GlobalLeaderboard() ([]adapter.PlayerStats, error) {
	rows, err := s.db.Query(`
		SELECT player_id,
			SUM(kind = 'goal'),
			SUM(kind = 'assist'),
			SUM(kind = 'shot'),
			SUM(kind = 'save'),
			SUM(kind = 'hit'),
			SUM(kind = 'win'),
			SUM(kind = 'loss'),
			SUM(kind = 'game_played')
		FROM stat_events
		GROUP BY player_id
		ORDER BY SUM(kind = 'goal') DESC, SUM(kind = 'assist') DESC
	`)
	if err != nil {
		return nil, errors.Wrap(err, "stats: query leaderboard")
	}
	defer rows.Close()

	var out []adapter.PlayerStats
	for rows.Next() {
		var ps adapter.PlayerStats
		if err := rows.Scan(&ps.PlayerID, &ps.Goals, &ps.Assists, &ps.Shots, &ps.Saves, &ps.Hits, &ps.Wins, &ps.Losses, &ps.GamesPlayed); err != nil {
			return nil, errors.Wrap(err, "stats: scan leaderboard row")
		}
		out = append(out, ps)
	}
	return out, errors.Wrap(rows.Err(), "stats: iterate leaderboard rows")
}
