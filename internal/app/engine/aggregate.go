package engine

import (
	"strings"
	"time"

	"github.com/abayate/earthwise/internal/domain"
)

// latestPointsByDate collapses the snapshot history to one points
// value per date, keeping the snapshot with the latest timestamp when
// a date appears more than once — a later action snapshot supersedes
// an earlier one for the same day.
func latestPointsByDate(entries []domain.DayEntry) map[string]int {
	type latest struct {
		points int
		ts     int64
	}
	byDate := make(map[string]latest)
	for _, e := range entries {
		if prev, ok := byDate[e.Date]; !ok || e.TS > prev.ts {
			byDate[e.Date] = latest{points: e.Totals.Points, ts: e.TS}
		}
	}
	out := make(map[string]int, len(byDate))
	for d, v := range byDate {
		out[d] = v.points
	}
	return out
}

// computeAggregates derives the monthly and lifetime totals from the
// snapshot history. Today is always overridden with the live awarded
// total — a stale same-day snapshot is never trusted — and lifetime
// starts from the seeded baseline. Pure recompute, no side effects.
func computeAggregates(entries []domain.DayEntry, liveAwarded int, today time.Time, baseline int) domain.Aggregates {
	byDate := latestPointsByDate(entries)
	if liveAwarded < 0 {
		liveAwarded = 0
	}
	byDate[domain.DateKey(today)] = liveAwarded

	monthPrefix := domain.MonthPrefix(today)
	agg := domain.Aggregates{LifetimePoints: baseline}
	for date, points := range byDate {
		agg.LifetimePoints += points
		if strings.HasPrefix(date, monthPrefix) {
			agg.MonthlyPoints += points
		}
	}
	return agg
}

// pointsSeries returns daily totals for the trailing window, oldest
// first, at most days values. Missing days are skipped, today is live.
func pointsSeries(entries []domain.DayEntry, liveAwarded int, today time.Time, days int) []int {
	byDate := latestPointsByDate(entries)
	byDate[domain.DateKey(today)] = liveAwarded

	series := make([]int, 0, days)
	for i := days - 1; i >= 0; i-- {
		if v, ok := byDate[domain.DateKey(today.AddDate(0, 0, -i))]; ok {
			series = append(series, v)
		}
	}
	return series
}
