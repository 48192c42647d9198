package sqlite

import (
	"database/sql"

	"github.com/abayate/earthwise/internal/domain"
)

// ─── State Key-Value ────────────────────────────────────────────────────────
// Values are JSON strings. Readers tolerate missing keys ("" result);
// shape validation and corrupt-value fallback belong to the engine.

// State keys. One key per persisted piece of engine state.
const (
	KeyTasksHealth      = "tasks_health"
	KeyTasksEco         = "tasks_eco"
	KeyDailyLog         = "daily_log"
	KeyLastOpenDate     = "last_open_date"
	KeyAwardedTotal     = "awarded_total"
	KeyAwardedIDs       = "awarded_ids"
	KeyRecentHealth     = "recent_health"
	KeyRecentEco        = "recent_eco"
	KeyModeHealth       = "mode_health"
	KeyModeEco          = "mode_eco"
	KeyLifetimeBaseline = "lifetime_baseline"
	KeyProfile          = "profile"
	KeyPrefs            = "prefs"
)

// SetState stores a key-value pair and bumps the global write sequence.
func (d *DB) SetState(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO state (key, value, seq)
		 VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM state))
		 ON CONFLICT(key) DO UPDATE SET
			value=excluded.value,
			seq=(SELECT COALESCE(MAX(seq), 0) + 1 FROM state)`,
		key, value,
	)
	if err != nil {
		return &domain.PersistenceError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// GetState retrieves a value by key. Returns "" if the key is absent —
// missing state is never an error, only a default.
func (d *DB) GetState(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", &domain.PersistenceError{Op: "get", Key: key, Err: err}
	}
	return value, nil
}

// StateSeq returns the current global write sequence. Every SetState
// bumps it; a session that observed seq N can detect writes it did not
// make by comparing against the live value.
func (d *DB) StateSeq() (int64, error) {
	var seq int64
	err := d.db.QueryRow(`SELECT COALESCE(MAX(seq), 0) FROM state`).Scan(&seq)
	if err != nil {
		return 0, &domain.PersistenceError{Op: "seq", Err: err}
	}
	return seq, nil
}

// DeleteState removes a key. Absent keys are a no-op.
func (d *DB) DeleteState(key string) error {
	if _, err := d.db.Exec(`DELETE FROM state WHERE key = ?`, key); err != nil {
		return &domain.PersistenceError{Op: "delete", Key: key, Err: err}
	}
	return nil
}
