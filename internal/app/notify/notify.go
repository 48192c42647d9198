// Package notify manages user-facing notices: transient, auto-
// dismissing messages for completions, milestones, and sync failures.
// Notices never block the task UI — a failed remote sync surfaces
// here, not as an error from the engine.
package notify

import (
	"fmt"
	"time"

	"github.com/abayate/earthwise/internal/domain"
	"github.com/abayate/earthwise/internal/infra/sqlite"
)

// Service stores and serves notices.
type Service struct {
	db *sqlite.DB
}

// NewService creates a notice service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// Push records a notice. Returns the notice id.
func (s *Service) Push(n domain.Notice) (int64, error) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	id, err := s.db.InsertNotice(n)
	if err != nil {
		return 0, fmt.Errorf("push notice: %w", err)
	}
	return id, nil
}

// Pending returns unshown notices, oldest first.
func (s *Service) Pending(limit int) ([]domain.Notice, error) {
	return s.db.ListPendingNotices(limit)
}

// MarkShown dismisses a notice.
func (s *Service) MarkShown(id int64) error {
	return s.db.MarkNoticeShown(id)
}

// ─── Canned notices ─────────────────────────────────────────────────────────

// TaskCompleted builds the completion notice for a task.
func TaskCompleted(cat domain.Category, label string, points int) domain.Notice {
	title := "Health task completed"
	if cat == domain.CategoryEco {
		title = "Eco task completed"
	}
	return domain.Notice{
		Type:  domain.NoticeTaskCompleted,
		Title: title,
		Body:  fmt.Sprintf("%s  +%d pts", label, points),
		Href:  "/tasks?section=" + string(cat),
	}
}

// Milestone builds the hundred-point milestone notice.
func Milestone(hit int) domain.Notice {
	return domain.Notice{
		Type:  domain.NoticeMilestone,
		Title: "Points milestone reached",
		Body:  fmt.Sprintf("Nice! You hit %d pts today.", hit),
		Href:  "/dashboard",
	}
}

// PlanReady builds the first-run personalization notice.
func PlanReady() domain.Notice {
	return domain.Notice{
		Type:  domain.NoticePlanReady,
		Title: "Personalized plan ready",
		Body:  "Tasks prioritized from your onboarding survey.",
		Href:  "/tasks",
	}
}

// SyncFailed builds the non-fatal remote sync failure notice.
func SyncFailed(err error) domain.Notice {
	return domain.Notice{
		Type:  domain.NoticeSyncFailed,
		Title: "Sync delayed",
		Body:  fmt.Sprintf("Your points are saved locally; syncing will retry. (%v)", err),
	}
}
