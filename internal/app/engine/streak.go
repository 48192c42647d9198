package engine

import (
	"time"

	"github.com/abayate/earthwise/internal/domain"
)

// LogKeepDays is the daily log retention window.
const LogKeepDays = 60

// ComputeStreak counts consecutive threshold-met days walking backward
// from today. Today counts only if already met, but a not-yet-met today
// does not break the walk: a streak stays alive mid-day as long as
// yesterday was met. Pure function over a bounded map.
func ComputeStreak(log domain.DailyLog, today time.Time) int {
	streak := 0
	cursor := today
	if log[domain.DateKey(cursor)] {
		streak++
	}
	cursor = cursor.AddDate(0, 0, -1)
	for log[domain.DateKey(cursor)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// PruneLog retains only the most recent keepDays calendar dates,
// constructed explicitly by walking back from today — stray keys
// outside the window are discarded regardless of map size.
func PruneLog(log domain.DailyLog, today time.Time, keepDays int) domain.DailyLog {
	kept := make(domain.DailyLog, keepDays)
	for i := 0; i < keepDays; i++ {
		k := domain.DateKey(today.AddDate(0, 0, -i))
		if v, ok := log[k]; ok {
			kept[k] = v
		}
	}
	return kept
}
