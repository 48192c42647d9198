package engine

import (
	"fmt"

	"github.com/abayate/earthwise/internal/domain"
)

// MilestoneProgress describes where today's points stand relative to
// the next hundred-point target, with the dashboard's message tiers.
func MilestoneProgress(points int) domain.Milestone {
	onHundred := points%100 == 0 && points != 0
	next := (points/100 + 1) * 100
	if onHundred {
		next = points + 100
	}
	remaining := next - points
	pct := 0.0
	if !onHundred {
		pct = float64(points%100) / 100.0
	}

	var message string
	switch {
	case points == 0:
		message = "Knock out a task to start earning points."
	case onHundred:
		message = fmt.Sprintf("Milestone unlocked: %d. Next target %d (+100 pts).", points, next)
	case pct < 0.25:
		message = fmt.Sprintf("Next milestone at %d — %d pts to go.", next, remaining)
	case pct < 0.5:
		message = fmt.Sprintf("Quarter way to %d — %d pts to go.", next, remaining)
	case pct < 0.75:
		message = fmt.Sprintf("Halfway to %d! %d pts to go.", next, remaining)
	case pct < 0.9:
		message = fmt.Sprintf("Close to %d — %d pts left.", next, remaining)
	default:
		message = fmt.Sprintf("Just %d pts for %d — one task might do it.", remaining, next)
	}

	return domain.Milestone{
		Next:      next,
		Remaining: remaining,
		Percent:   pct,
		HitExact:  onHundred,
		Message:   message,
	}
}
