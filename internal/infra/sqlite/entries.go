package sqlite

import (
	"database/sql"
	"encoding/json"

	"github.com/abayate/earthwise/internal/domain"
)

// ─── Day Snapshots ──────────────────────────────────────────────────────────

// AppendEntry inserts a day snapshot and prunes the list down to
// EntriesLimit newest entries.
func (d *DB) AppendEntry(e domain.DayEntry) error {
	healthJSON, err := json.Marshal(e.Health)
	if err != nil {
		return &domain.PersistenceError{Op: "append entry", Key: e.ID, Err: err}
	}
	ecoJSON, err := json.Marshal(e.Eco)
	if err != nil {
		return &domain.PersistenceError{Op: "append entry", Key: e.ID, Err: err}
	}

	var section, taskID sql.NullString
	var completed sql.NullBool
	if e.Action != nil {
		section = sql.NullString{String: e.Action.Section, Valid: true}
		if e.Action.TaskID != "" {
			taskID = sql.NullString{String: e.Action.TaskID, Valid: true}
		}
		completed = sql.NullBool{Bool: e.Action.Completed, Valid: true}
	}

	_, err = d.db.Exec(
		`INSERT INTO entries
		 (id, date, ts, points, completed_count, health_completed, eco_completed,
		  health_json, eco_json, action_section, action_task_id, action_completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Date, e.TS,
		e.Totals.Points, e.Totals.CompletedCount,
		e.Totals.HealthCompleted, e.Totals.EcoCompleted,
		string(healthJSON), string(ecoJSON),
		section, taskID, completed,
	)
	if err != nil {
		return &domain.PersistenceError{Op: "append entry", Key: e.ID, Err: err}
	}

	// Keep only the newest EntriesLimit snapshots.
	_, err = d.db.Exec(
		`DELETE FROM entries WHERE id NOT IN
		 (SELECT id FROM entries ORDER BY ts DESC, id DESC LIMIT ?)`,
		EntriesLimit,
	)
	if err != nil {
		return &domain.PersistenceError{Op: "prune entries", Err: err}
	}
	return nil
}

// ListEntries returns up to limit snapshots, newest first. limit <= 0
// means all retained entries.
func (d *DB) ListEntries(limit int) ([]domain.DayEntry, error) {
	if limit <= 0 || limit > EntriesLimit {
		limit = EntriesLimit
	}
	rows, err := d.db.Query(
		`SELECT id, date, ts, points, completed_count, health_completed, eco_completed,
		        health_json, eco_json, action_section, action_task_id, action_completed
		 FROM entries ORDER BY ts DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list entries", Err: err}
	}
	defer rows.Close()

	var entries []domain.DayEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, &domain.PersistenceError{Op: "scan entry", Err: err}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanEntry(rows *sql.Rows) (domain.DayEntry, error) {
	var e domain.DayEntry
	var healthJSON, ecoJSON string
	var section, taskID sql.NullString
	var completed sql.NullBool

	err := rows.Scan(&e.ID, &e.Date, &e.TS,
		&e.Totals.Points, &e.Totals.CompletedCount,
		&e.Totals.HealthCompleted, &e.Totals.EcoCompleted,
		&healthJSON, &ecoJSON, &section, &taskID, &completed)
	if err != nil {
		return e, err
	}

	// Tolerate corrupt snapshot bodies — totals are still usable.
	_ = json.Unmarshal([]byte(healthJSON), &e.Health)
	_ = json.Unmarshal([]byte(ecoJSON), &e.Eco)

	if section.Valid {
		e.Action = &domain.EntryAction{
			Section:   section.String,
			TaskID:    taskID.String,
			Completed: completed.Bool,
		}
	}
	return e, nil
}
