package domain

// AwardState is the authoritative record of points paid out today.
// Decoupled from the completed flags: undoing a task reverses its
// points, but re-completing it the same day cannot double-pay.
// Invariant: Total == sum of points for every id in TaskIDs, and
// Total never goes negative.
type AwardState struct {
	Total   int      `json:"total"`
	TaskIDs []string `json:"task_ids"`
}

// Has reports whether taskID has already been awarded today.
func (a AwardState) Has(taskID string) bool {
	for _, id := range a.TaskIDs {
		if id == taskID {
			return true
		}
	}
	return false
}

// Award pays out a first-time completion. Calling it again for the
// same task is a no-op (guards double-completion exploits).
func (a AwardState) Award(taskID string, points int) AwardState {
	if a.Has(taskID) {
		return a
	}
	next := AwardState{Total: a.Total + points}
	next.TaskIDs = append([]string{taskID}, a.TaskIDs...)
	return next
}

// Reverse undoes a previous award. A task that was never awarded is a
// no-op; the total is clamped at zero even under duplicate reversals.
func (a AwardState) Reverse(taskID string, points int) AwardState {
	if !a.Has(taskID) {
		return a
	}
	next := AwardState{Total: a.Total - points}
	if next.Total < 0 {
		next.Total = 0
	}
	for _, id := range a.TaskIDs {
		if id != taskID {
			next.TaskIDs = append(next.TaskIDs, id)
		}
	}
	return next
}

// CrossedMilestone reports whether the award moved the total across a
// hundred boundary, and which hundred was hit. Pure function of the
// before/after totals.
func CrossedMilestone(oldTotal, newTotal int) (int, bool) {
	if newTotal/100 > oldTotal/100 {
		return (newTotal / 100) * 100, true
	}
	return 0, false
}

// Milestone describes progress toward the next hundred-point target.
type Milestone struct {
	Next      int     `json:"next"`
	Remaining int     `json:"remaining"`
	Percent   float64 `json:"percent"` // 0..1 toward Next
	HitExact  bool    `json:"hit_exact"`
	Message   string  `json:"message"`
}
