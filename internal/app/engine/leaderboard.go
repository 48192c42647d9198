package engine

import (
	"sort"

	"github.com/abayate/earthwise/internal/domain"
)

// SeedBoard is the shipped leaderboard until real peers are synced.
func SeedBoard() []domain.BoardUser {
	return []domain.BoardUser{
		{ID: 1, Name: "Alex Chen", Score: 2150},
		{ID: 2, Name: "Sarah Miller", Score: 1950},
		{ID: 3, Name: "James Wilson", Score: 1840},
		{ID: 4, Name: "Emma Davis", Score: 1720},
		{ID: 5, Name: "Michael Brown", Score: 1680},
		{ID: 6, Name: "Lisa Taylor", Score: 1590},
		{ID: 7, Name: "David Park", Score: 1520},
		{ID: 8, Name: "Rachel Green", Score: 1480},
		{ID: 9, Name: "Thomas Lee", Score: 1440},
		{ID: 10, Name: "Jessica Kim", Score: 1390},
	}
}

// RankAndGap places a monthly score on the board: rank (1-based) and
// the points needed to pass the next user ahead. Gap is 0 when first.
func RankAndGap(myScore int, board []domain.BoardUser) domain.Rank {
	combined := make([]domain.BoardUser, 0, len(board)+1)
	combined = append(combined, board...)
	combined = append(combined, domain.BoardUser{ID: 0, Name: "You", Score: myScore})
	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].Score > combined[j].Score
	})

	meIdx := 0
	for i, u := range combined {
		if u.ID == 0 {
			meIdx = i
			break
		}
	}
	r := domain.Rank{Rank: meIdx + 1}
	if meIdx > 0 {
		ahead := combined[meIdx-1]
		gap := ahead.Score - myScore + 1
		if gap < 0 {
			gap = 0
		}
		r.Gap = gap
		r.NextName = ahead.Name
	}
	return r
}
