package engine

import (
	"github.com/google/uuid"

	"github.com/abayate/earthwise/internal/domain"
	"github.com/abayate/earthwise/internal/infra/bus"
	"github.com/abayate/earthwise/internal/infra/metrics"
	"github.com/abayate/earthwise/internal/infra/sqlite"
)

// buildEntryLocked snapshots the current task and award state into an
// immutable day entry for the given date.
func (s *Service) buildEntryLocked(date string, action *domain.EntryAction) domain.DayEntry {
	points := s.award.Total
	if points < 0 {
		points = 0
	}
	healthDone := domain.CompletedCount(s.health)
	ecoDone := domain.CompletedCount(s.eco)
	return domain.DayEntry{
		ID:   uuid.NewString(),
		Date: date,
		TS:   s.now().UnixMilli(),
		Totals: domain.EntryTotals{
			Points:          points,
			CompletedCount:  healthDone + ecoDone,
			HealthCompleted: healthDone,
			EcoCompleted:    ecoDone,
		},
		Health: copyInstances(s.health),
		Eco:    copyInstances(s.eco),
		Action: action,
	}
}

// rolloverLocked performs the day-boundary transition: archive the
// previous day under the stored marker date (not any intermediate
// day the app was closed through), then reset every daily structure.
// The snapshot is built before the reset so it captures the award
// ledger as it stood.
func (s *Service) rolloverLocked(prevDate string) error {
	entry := s.buildEntryLocked(prevDate, &domain.EntryAction{Section: domain.ActionRollover})
	if err := s.db.AppendEntry(entry); err != nil {
		return err
	}

	for i := range s.health {
		s.health[i].Completed = false
	}
	for i := range s.eco {
		s.eco[i].Completed = false
	}
	s.award = domain.AwardState{}
	s.recentHealth = nil
	s.recentEco = nil
	s.today = domain.DateKey(s.now())

	if err := s.persistTasksLocked(); err != nil {
		return err
	}
	if err := s.persistAwardLocked(); err != nil {
		return err
	}
	if err := s.setJSON(sqlite.KeyRecentHealth, []string{}); err != nil {
		return err
	}
	if err := s.setJSON(sqlite.KeyRecentEco, []string{}); err != nil {
		return err
	}

	metrics.RolloversTotal.Inc()
	s.publish(bus.EventRollover, prevDate)
	return nil
}
