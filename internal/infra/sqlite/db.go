// Package sqlite provides the local persistent store for EarthWise.
// It is the durable per-profile key-value store plus the bounded day
// snapshot list and the notice log. Uses WAL mode for crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// EntriesLimit bounds the day snapshot list (newest first).
const EntriesLimit = 180

// NoticesLimit bounds the notice log.
const NoticesLimit = 50

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Engine state: one JSON value per key (task lists, daily log,
		// award state, last-open date, recents, modes, baseline, profile,
		// prefs). seq is a global write counter used to refuse stale
		// writes from a second concurrent session.
		`CREATE TABLE IF NOT EXISTS state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			seq   INTEGER NOT NULL
		)`,

		// Day snapshots: immutable, append-only, bounded, newest first.
		`CREATE TABLE IF NOT EXISTS entries (
			id               TEXT PRIMARY KEY,
			date             TEXT NOT NULL,
			ts               INTEGER NOT NULL,
			points           INTEGER NOT NULL,
			completed_count  INTEGER NOT NULL,
			health_completed INTEGER NOT NULL,
			eco_completed    INTEGER NOT NULL,
			health_json      TEXT NOT NULL,
			eco_json         TEXT NOT NULL,
			action_section   TEXT,
			action_task_id   TEXT,
			action_completed BOOLEAN
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_ts ON entries(ts)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date)`,

		// Transient user-facing notices (toasts).
		`CREATE TABLE IF NOT EXISTS notices (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			type       TEXT NOT NULL,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL,
			href       TEXT,
			created_at INTEGER NOT NULL,
			shown      BOOLEAN DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notices_created ON notices(created_at)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}
