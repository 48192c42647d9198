package notify_test

import (
	"testing"

	"github.com/abayate/earthwise/internal/app/notify"
	"github.com/abayate/earthwise/internal/domain"
	"github.com/abayate/earthwise/internal/infra/sqlite"
)

// testDB creates a temporary SQLite database for testing.
func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPushPendingMarkShown(t *testing.T) {
	svc := notify.NewService(testDB(t))

	id, err := svc.Push(notify.TaskCompleted(domain.CategoryHealth, "20-minute yoga", 20))
	if err != nil {
		t.Fatalf("push: %v", err)
	}

	pending, err := svc.Pending(10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending, got %d", len(pending))
	}
	if pending[0].Type != domain.NoticeTaskCompleted {
		t.Errorf("expected task_completed, got %s", pending[0].Type)
	}

	if err := svc.MarkShown(id); err != nil {
		t.Fatalf("mark: %v", err)
	}
	pending, _ = svc.Pending(10)
	if len(pending) != 0 {
		t.Errorf("expected no pending after mark, got %d", len(pending))
	}
}

func TestCannedNotices(t *testing.T) {
	if n := notify.Milestone(200); n.Type != domain.NoticeMilestone {
		t.Errorf("milestone type: %s", n.Type)
	}
	if n := notify.PlanReady(); n.Type != domain.NoticePlanReady {
		t.Errorf("plan ready type: %s", n.Type)
	}
	n := notify.TaskCompleted(domain.CategoryEco, "Meatless meal", 25)
	if n.Type != domain.NoticeTaskCompleted || n.Body == "" {
		t.Errorf("task completed notice incomplete: %+v", n)
	}
}
