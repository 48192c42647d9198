package domain_test

import (
	"testing"

	"github.com/abayate/earthwise/internal/domain"
)

// ═══════════════════════════════════════════════════════════════════════════
// Award Ledger Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestAward_PaysOutOnce(t *testing.T) {
	var a domain.AwardState

	a = a.Award("h1", 10)
	if a.Total != 10 {
		t.Fatalf("expected 10 after first award, got %d", a.Total)
	}
	if !a.Has("h1") {
		t.Fatal("expected ledger to record h1")
	}

	// A second award for the same task is a no-op.
	a = a.Award("h1", 10)
	if a.Total != 10 {
		t.Errorf("expected 10 after repeat award, got %d", a.Total)
	}
	if len(a.TaskIDs) != 1 {
		t.Errorf("expected one ledger entry, got %d", len(a.TaskIDs))
	}
}

func TestAward_ReverseRemovesExactly(t *testing.T) {
	var a domain.AwardState
	a = a.Award("h1", 10)
	a = a.Award("e2", 15)

	a = a.Reverse("h1", 10)
	if a.Total != 15 {
		t.Errorf("expected 15 after reverse, got %d", a.Total)
	}
	if a.Has("h1") {
		t.Error("expected h1 removed from ledger")
	}
	if !a.Has("e2") {
		t.Error("expected e2 still in ledger")
	}
}

func TestAward_ReverseNeverGoesNegative(t *testing.T) {
	a := domain.AwardState{Total: 5, TaskIDs: []string{"h1"}}
	a = a.Reverse("h1", 10)
	if a.Total != 0 {
		t.Errorf("expected clamp to 0, got %d", a.Total)
	}
}

func TestAward_ReverseAbsentTaskIsNoOp(t *testing.T) {
	var a domain.AwardState
	a = a.Award("h1", 10)
	a = a.Reverse("h9", 10)
	if a.Total != 10 {
		t.Errorf("expected 10 after absent reverse, got %d", a.Total)
	}
	if !a.Has("h1") {
		t.Error("expected h1 untouched")
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Milestone Crossing Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestCrossedMilestone(t *testing.T) {
	cases := []struct {
		old, new int
		hit      int
		ok       bool
	}{
		{95, 105, 100, true},
		{100, 105, 0, false},
		{95, 100, 100, true},
		{0, 99, 0, false},
		{195, 310, 300, true}, // jumps land on the highest crossed hundred
		{50, 60, 0, false},
	}
	for _, c := range cases {
		hit, ok := domain.CrossedMilestone(c.old, c.new)
		if ok != c.ok || hit != c.hit {
			t.Errorf("CrossedMilestone(%d, %d) = (%d, %v), want (%d, %v)",
				c.old, c.new, hit, ok, c.hit, c.ok)
		}
	}
}
