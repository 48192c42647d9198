package domain

import "time"

// DailyLog maps a date key (YYYY-MM-DD) to whether the completion
// threshold was met that day.
type DailyLog map[string]bool

// DateKeyLayout is the calendar-date granularity used throughout the
// engine: rollover, daily log, and aggregation all key on it.
const DateKeyLayout = "2006-01-02"

// DateKey formats t as YYYY-MM-DD in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// MonthPrefix formats t as YYYY-MM, the prefix shared by every date
// key in t's calendar month.
func MonthPrefix(t time.Time) string {
	return t.Format("2006-01")
}

// EntryAction tags what triggered a day snapshot: a toggle in one of
// the sections, or the day-boundary rollover.
type EntryAction struct {
	Section   string `json:"section"` // "health", "eco", or "rollover"
	TaskID    string `json:"task_id,omitempty"`
	Completed bool   `json:"completed,omitempty"`
}

// ActionRollover is the Section value of a rollover snapshot.
const ActionRollover = "rollover"

// EntryTotals are the counters captured at snapshot time.
type EntryTotals struct {
	Points          int `json:"points"` // awarded points, never negative
	CompletedCount  int `json:"completed_count"`
	HealthCompleted int `json:"health_completed"`
	EcoCompleted    int `json:"eco_completed"`
}

// DayEntry is an immutable snapshot of a day's task and point state.
// Stored newest-first in a bounded append-only list; never mutated
// after creation.
type DayEntry struct {
	ID     string         `json:"id"`
	Date   string         `json:"date"` // YYYY-MM-DD
	TS     int64          `json:"ts"`   // epoch millis, orders same-date entries
	Totals EntryTotals    `json:"totals"`
	Health []TaskInstance `json:"health"`
	Eco    []TaskInstance `json:"eco"`
	Action *EntryAction   `json:"action,omitempty"`
}

// Aggregates are the derived monthly and lifetime point totals.
// Recomputed on demand from the award state plus snapshot history —
// never the source of truth.
type Aggregates struct {
	MonthlyPoints  int `json:"monthly_points"`
	LifetimePoints int `json:"lifetime_points"`
}
