package domain

import "time"

// Profile carries the user's onboarding survey. Consumed once, at
// first run, to seed the personalized task selection.
type Profile struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Name         string    `json:"name,omitempty"`
	About        string    `json:"about,omitempty"`
	HealthRating int       `json:"health_rating"` // 1–5 self-reported
	EcoRating    int       `json:"eco_rating"`    // 1–5 self-reported
	Interests    []string  `json:"interests"`
}

// Prefs are user-level presentation preferences.
type Prefs struct {
	Confetti     bool `json:"confetti"`
	Sounds       bool `json:"sounds"`
	Compact      bool `json:"compact"`
	ReduceMotion bool `json:"reduce_motion"`
}

// DefaultPrefs returns the out-of-box preference set.
func DefaultPrefs() Prefs {
	return Prefs{Confetti: true}
}

// RemoteProfile mirrors the hosted per-user profile row. The remote
// store resets the day-scoped field when last_activity_date is not
// today, and the month-scoped field when the month changed.
type RemoteProfile struct {
	UserID           string `json:"user_id"`
	TodaysPoints     int    `json:"todays_points"`
	MonthPoints      int    `json:"month_points"`
	TotalPoints      int    `json:"total_points"`
	TotalTasks       int    `json:"total_tasks"`
	LastActivityDate string `json:"last_activity_date"` // YYYY-MM-DD
}

// Completion is one row of the remote append-only audit log: a task
// paid out once, used to cross-check lifetime totals independently.
type Completion struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
	Points int    `json:"points"`
}

// BoardUser is one leaderboard row.
type BoardUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Rank places the user on a board by monthly points.
type Rank struct {
	Rank     int    `json:"rank"`
	Gap      int    `json:"gap"` // points needed to pass the next user
	NextName string `json:"next_name,omitempty"`
}
