package domain

import "time"

// NoticeType categorizes user-facing notices.
type NoticeType string

const (
	NoticeTaskCompleted NoticeType = "task_completed"
	NoticeMilestone     NoticeType = "milestone"
	NoticePlanReady     NoticeType = "plan_ready"
	NoticeSyncFailed    NoticeType = "sync_failed"
)

// Notice is a transient, non-blocking user-facing message. Sync
// failures surface here rather than as fatal errors — the task state
// stays interactive even when the remote store is unreachable.
type Notice struct {
	ID        int64      `json:"id"`
	Type      NoticeType `json:"type"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Href      string     `json:"href,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	Shown     bool       `json:"shown"`
}
