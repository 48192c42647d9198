// Package metrics provides Prometheus metrics for the EarthWise
// engine: awards, reversals, milestones, rollovers, streak, and
// remote sync health.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Award Ledger ───────────────────────────────────────────────────────────

// AwardsTotal counts first-time task awards by category.
var AwardsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "earthwise",
	Name:      "awards_total",
	Help:      "First-time task point awards.",
}, []string{"category"})

// ReversalsTotal counts undo reversals by category.
var ReversalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "earthwise",
	Name:      "reversals_total",
	Help:      "Award reversals from task undo.",
}, []string{"category"})

// PointsAwarded counts total points paid out.
var PointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "earthwise",
	Name:      "points_awarded_total",
	Help:      "Total points awarded across all days.",
})

// MilestonesTotal counts hundred-point milestones crossed.
var MilestonesTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "earthwise",
	Name:      "milestones_total",
	Help:      "Hundred-point daily milestones crossed.",
})

// AwardedToday gauges the live daily awarded total.
var AwardedToday = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "earthwise",
	Name:      "awarded_points_today",
	Help:      "Awarded points for the current day.",
})

// ─── Streak / Rollover ──────────────────────────────────────────────────────

// StreakDays gauges the current consecutive-day streak.
var StreakDays = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "earthwise",
	Name:      "streak_days",
	Help:      "Current consecutive-day completion streak.",
})

// RolloversTotal counts day-boundary rollovers performed.
var RolloversTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "earthwise",
	Name:      "rollovers_total",
	Help:      "Day-boundary rollovers performed at load.",
})

// ─── Remote Sync ────────────────────────────────────────────────────────────

// SyncFailures counts best-effort remote sync failures by operation.
var SyncFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "earthwise",
	Name:      "sync_failures_total",
	Help:      "Remote profile/audit sync failures (non-fatal).",
}, []string{"op"})

// SyncLatency tracks remote sync call duration in seconds.
var SyncLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "earthwise",
	Name:      "sync_latency_seconds",
	Help:      "Remote sync call duration in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"op"})
