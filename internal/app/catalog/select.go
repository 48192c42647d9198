package catalog

import "github.com/abayate/earthwise/internal/domain"

// TaskCount maps a 1–5 self-reported rating to how many tasks the
// seeded list holds. Lower ratings get shorter, easier lists.
func TaskCount(rating int) int {
	switch {
	case rating <= 1:
		return 4
	case rating == 2:
		return 6
	case rating == 3:
		return 8
	case rating == 4:
		return 9
	default:
		return 10
	}
}

// SelectForProfile ranks a category's catalog by membership in the
// user's declared interests (interest matches outrank the rest, ties
// broken by catalog order) and takes the top N for the given rating,
// clamped to catalog size. Deterministic for a given profile.
func SelectForProfile(cat domain.Category, interests []string, rating int) []domain.Task {
	universe := Default(cat)
	var imap map[string][]string
	switch cat {
	case domain.CategoryHealth:
		imap = interestMapHealth
	case domain.CategoryEco:
		imap = interestMapEco
	}

	wanted := map[string]bool{}
	for _, interest := range interests {
		for _, id := range imap[interest] {
			wanted[id] = true
		}
	}

	type scored struct {
		task  domain.Task
		score int
	}
	ranked := make([]scored, len(universe))
	for idx, t := range universe {
		s := 500 - idx
		if wanted[t.ID] {
			s = 1000 - idx
		}
		ranked[idx] = scored{task: t, score: s}
	}
	// Stable selection sort by descending score; the universe is tiny.
	for i := 0; i < len(ranked); i++ {
		best := i
		for j := i + 1; j < len(ranked); j++ {
			if ranked[j].score > ranked[best].score {
				best = j
			}
		}
		ranked[i], ranked[best] = ranked[best], ranked[i]
	}

	count := TaskCount(rating)
	if count > len(ranked) {
		count = len(ranked)
	}
	out := make([]domain.Task, count)
	for i := 0; i < count; i++ {
		out[i] = ranked[i].task
	}
	return out
}

// ModeForRating biases new users with a low self-rating toward the
// single-task focus view.
func ModeForRating(rating int) domain.ViewMode {
	if rating <= 2 {
		return domain.ModeFocus
	}
	return domain.ModeBrowse
}
