// Package engine implements the daily points accounting: task state,
// the idempotent award ledger, the daily log and streak, day-boundary
// rollover, and the derived monthly/lifetime aggregates. It is the
// single stateful service all consumers go through — the dashboard,
// settings, and tasks views each call the same interface instead of
// carrying their own copy of this bookkeeping.
package engine

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/abayate/earthwise/internal/app/catalog"
	"github.com/abayate/earthwise/internal/app/notify"
	"github.com/abayate/earthwise/internal/domain"
	"github.com/abayate/earthwise/internal/infra/bus"
	"github.com/abayate/earthwise/internal/infra/metrics"
	"github.com/abayate/earthwise/internal/infra/remote"
	"github.com/abayate/earthwise/internal/infra/sqlite"
)

// DailyCompletionThreshold is the completions-per-day bar for the
// daily log: one task in either section keeps the streak alive.
const DailyCompletionThreshold = 1

// RecentLimit caps the per-category recently-completed quick list.
const RecentLimit = 5

// Options wires the engine's collaborators. Bus, Notices, and Remote
// may be nil; Now defaults to time.Now (tests override it to drive
// day boundaries).
type Options struct {
	Bus     *bus.Bus
	Notices *notify.Service
	Remote  *remote.Client
	Now     func() time.Time
}

// Service is the points/streak/rollover engine. All mutations happen
// under one lock; user actions are serialized by the callers anyway,
// the lock just makes that a guarantee instead of an assumption.
type Service struct {
	mu      sync.Mutex
	db      *sqlite.DB
	bus     *bus.Bus
	notices *notify.Service
	remote  *remote.Client
	now     func() time.Time

	health       []domain.TaskInstance
	eco          []domain.TaskInstance
	log          domain.DailyLog
	award        domain.AwardState
	recentHealth []string
	recentEco    []string
	modeHealth   domain.ViewMode
	modeEco      domain.ViewMode
	profile      *domain.Profile
	prefs        domain.Prefs
	baseline     int
	today        string // date key of the session's current day
	seq          int64  // store write sequence as of our last write
}

// Open loads persisted state, seeds first-run task lists from the
// profile, and performs the day-boundary rollover if the last-open
// marker is behind today. Rollover runs at most once per boundary.
func Open(db *sqlite.DB, opts Options) (*Service, error) {
	s := &Service{
		db:      db,
		bus:     opts.Bus,
		notices: opts.Notices,
		remote:  opts.Remote,
		now:     opts.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadLocked reads every state key (defaults on missing or corrupt
// values), seeds or rolls over as needed, and writes today's marker.
func (s *Service) loadLocked() error {
	now := s.now()
	s.today = domain.DateKey(now)

	var p domain.Profile
	if s.getJSON(sqlite.KeyProfile, &p) {
		s.profile = &p
	}

	s.prefs = domain.DefaultPrefs()
	s.getJSON(sqlite.KeyPrefs, &s.prefs) // Partial JSON merges over defaults

	if err := s.ensureBaselineLocked(); err != nil {
		return err
	}

	s.getJSON(sqlite.KeyTasksHealth, &s.health)
	s.getJSON(sqlite.KeyTasksEco, &s.eco)
	s.getJSON(sqlite.KeyDailyLog, &s.log)
	if s.log == nil {
		s.log = domain.DailyLog{}
	}
	s.getJSON(sqlite.KeyAwardedTotal, &s.award.Total)
	s.getJSON(sqlite.KeyAwardedIDs, &s.award.TaskIDs)
	if s.award.Total < 0 {
		s.award.Total = 0
	}
	s.getJSON(sqlite.KeyRecentHealth, &s.recentHealth)
	s.getJSON(sqlite.KeyRecentEco, &s.recentEco)

	s.modeHealth = s.readMode(sqlite.KeyModeHealth)
	s.modeEco = s.readMode(sqlite.KeyModeEco)

	lastOpen, err := s.db.GetState(sqlite.KeyLastOpenDate)
	if err != nil {
		return err
	}

	// First run with a profile: personalized selection. Without one,
	// the full default catalog.
	if len(s.health) == 0 || len(s.eco) == 0 {
		if s.profile != nil {
			s.health = catalog.Instances(catalog.SelectForProfile(
				domain.CategoryHealth, s.profile.Interests, s.profile.HealthRating))
			s.eco = catalog.Instances(catalog.SelectForProfile(
				domain.CategoryEco, s.profile.Interests, s.profile.EcoRating))
			s.modeHealth = catalog.ModeForRating(s.profile.HealthRating)
			s.modeEco = catalog.ModeForRating(s.profile.EcoRating)
			s.pushNotice(notify.PlanReady())
		} else {
			s.health = catalog.Instances(catalog.Default(domain.CategoryHealth))
			s.eco = catalog.Instances(catalog.Default(domain.CategoryEco))
		}
		if err := s.persistTasksLocked(); err != nil {
			return err
		}
		if err := s.persistModesLocked(); err != nil {
			return err
		}
	}

	// Day changed since last open: archive yesterday and reset.
	// An empty marker is first run — nothing to archive.
	if lastOpen != "" && lastOpen != s.today {
		if err := s.rolloverLocked(lastOpen); err != nil {
			return err
		}
	}

	s.log = PruneLog(s.log, now, LogKeepDays)
	if err := s.setJSON(sqlite.KeyDailyLog, s.log); err != nil {
		return err
	}
	if err := s.db.SetState(sqlite.KeyLastOpenDate, s.today); err != nil {
		return err
	}

	s.seq, err = s.db.StateSeq()
	if err != nil {
		return err
	}
	s.updateGauges()
	return nil
}

// ─── Mutations ──────────────────────────────────────────────────────────────

// Toggle flips exactly one task's completed flag and settles the award
// ledger in the same logical transaction: first completion of the day
// pays out once, undo reverses a prior payout, re-completion pays
// nothing. Returns the updated instance list for the category.
func (s *Service) Toggle(cat domain.Category, taskID string) ([]domain.TaskInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureFreshLocked(); err != nil {
		return nil, err
	}

	list, err := s.listLocked(cat)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range list {
		if list[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrTaskNotFound
	}

	list[idx].Completed = !list[idx].Completed
	task := list[idx]
	if err := s.persistTasksLocked(); err != nil {
		return nil, err
	}

	var syncDelta, syncTasks int
	var firstAward bool

	if task.Completed {
		s.pushRecentLocked(cat, taskID)
		s.pushNotice(notify.TaskCompleted(cat, task.Label, task.Points))

		if !s.award.Has(taskID) {
			oldTotal := s.award.Total
			s.award = s.award.Award(taskID, task.Points)
			if err := s.persistAwardLocked(); err != nil {
				return nil, err
			}
			metrics.AwardsTotal.WithLabelValues(string(cat)).Inc()
			metrics.PointsAwarded.Add(float64(task.Points))
			firstAward = true
			syncDelta, syncTasks = task.Points, 1

			if hit, ok := domain.CrossedMilestone(oldTotal, s.award.Total); ok {
				s.pushNotice(notify.Milestone(hit))
				s.publish(bus.EventMilestone, hit)
				metrics.MilestonesTotal.Inc()
			}
		}

		entry := s.buildEntryLocked(s.today, &domain.EntryAction{
			Section:   string(cat),
			TaskID:    taskID,
			Completed: true,
		})
		if err := s.db.AppendEntry(entry); err != nil {
			return nil, err
		}
	} else if s.award.Has(taskID) {
		s.award = s.award.Reverse(taskID, task.Points)
		if err := s.persistAwardLocked(); err != nil {
			return nil, err
		}
		metrics.ReversalsTotal.WithLabelValues(string(cat)).Inc()
		syncDelta, syncTasks = -task.Points, -1
	}

	if err := s.recomputeLogLocked(); err != nil {
		return nil, err
	}

	s.seq, _ = s.db.StateSeq()
	s.updateGauges()
	s.publish(bus.EventTasksChanged, cat)
	s.publish(bus.EventAwardChanged, s.award.Total)
	s.publish(bus.EventLogChanged, nil)

	// Remote sync last, detached: local state is committed and stays
	// authoritative whatever happens on the wire.
	if syncDelta != 0 {
		s.syncRemote(firstAward, taskID, task.Points, syncDelta, syncTasks)
	}

	return copyInstances(list), nil
}

// ResetCategory sets every task in the category back to incomplete
// without touching the award ledger: resets are list hygiene, not an
// undo — points already paid out stay paid out.
func (s *Service) ResetCategory(cat domain.Category) ([]domain.TaskInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureFreshLocked(); err != nil {
		return nil, err
	}

	list, err := s.listLocked(cat)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Completed = false
	}
	if err := s.persistTasksLocked(); err != nil {
		return nil, err
	}
	if err := s.recomputeLogLocked(); err != nil {
		return nil, err
	}

	s.seq, _ = s.db.StateSeq()
	s.updateGauges()
	s.publish(bus.EventTasksChanged, cat)
	s.publish(bus.EventLogChanged, nil)
	return copyInstances(list), nil
}

// SetMode stores the category's view mode flag.
func (s *Service) SetMode(cat domain.Category, mode domain.ViewMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cat {
	case domain.CategoryHealth:
		s.modeHealth = mode
	case domain.CategoryEco:
		s.modeEco = mode
	default:
		return domain.ErrUnknownCategory
	}
	if err := s.persistModesLocked(); err != nil {
		return err
	}
	s.seq, _ = s.db.StateSeq()
	return nil
}

// SetPrefs merges and persists preference changes.
func (s *Service) SetPrefs(p domain.Prefs) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs = p
	if err := s.setJSON(sqlite.KeyPrefs, s.prefs); err != nil {
		return err
	}
	s.seq, _ = s.db.StateSeq()
	s.publish(bus.EventPrefsChanged, s.prefs)
	return nil
}

// SetProfile persists the onboarding profile. Task lists are reseeded
// only on a first run with no persisted lists, not retroactively.
func (s *Service) SetProfile(p domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = &p
	if err := s.setJSON(sqlite.KeyProfile, p); err != nil {
		return err
	}
	s.seq, _ = s.db.StateSeq()
	return nil
}

// ─── Queries ────────────────────────────────────────────────────────────────

// Tasks returns a copy of today's instance list for a category.
func (s *Service) Tasks(cat domain.Category) ([]domain.TaskInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.listLocked(cat)
	if err != nil {
		return nil, err
	}
	return copyInstances(list), nil
}

// Recents returns the category's recently-completed task ids, most
// recent first.
func (s *Service) Recents(cat domain.Category) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	src := s.recentHealth
	if cat == domain.CategoryEco {
		src = s.recentEco
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Mode returns the category's view mode flag.
func (s *Service) Mode(cat domain.Category) domain.ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cat == domain.CategoryEco {
		return s.modeEco
	}
	return s.modeHealth
}

// Award returns a copy of today's award ledger state.
func (s *Service) Award() domain.AwardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := domain.AwardState{Total: s.award.Total}
	out.TaskIDs = append(out.TaskIDs, s.award.TaskIDs...)
	return out
}

// Streak returns the current consecutive-day streak.
func (s *Service) Streak() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeStreak(s.log, s.now())
}

// Log returns a copy of the daily log.
func (s *Service) Log() domain.DailyLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(domain.DailyLog, len(s.log))
	for k, v := range s.log {
		out[k] = v
	}
	return out
}

// Aggregates recomputes the derived monthly and lifetime totals from
// the snapshot history, with today taken live from the award ledger.
func (s *Service) Aggregates() (domain.Aggregates, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.db.ListEntries(0)
	if err != nil {
		return domain.Aggregates{}, err
	}
	return computeAggregates(entries, s.award.Total, s.now(), s.baseline), nil
}

// Milestone reports progress toward today's next hundred-point target.
func (s *Service) Milestone() domain.Milestone {
	s.mu.Lock()
	defer s.mu.Unlock()
	return MilestoneProgress(s.award.Total)
}

// History returns up to limit day snapshots, newest first.
func (s *Service) History(limit int) ([]domain.DayEntry, error) {
	return s.db.ListEntries(limit)
}

// PointsSeries returns daily totals for the trailing window (today
// live), oldest first — the insights forecast input.
func (s *Service) PointsSeries(days int) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.db.ListEntries(0)
	if err != nil {
		return nil, err
	}
	return pointsSeries(entries, s.award.Total, s.now(), days), nil
}

// Rank places the user's monthly points on the leaderboard.
func (s *Service) Rank(board []domain.BoardUser) (domain.Rank, error) {
	agg, err := s.Aggregates()
	if err != nil {
		return domain.Rank{}, err
	}
	return RankAndGap(agg.MonthlyPoints, board), nil
}

// Prefs returns the current preference set.
func (s *Service) Prefs() domain.Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// Profile returns the stored profile, or nil on a fresh install.
func (s *Service) Profile() *domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// Today returns the session's current date key.
func (s *Service) Today() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.today
}

// ─── Internals ──────────────────────────────────────────────────────────────

// ensureFreshLocked guards every mutation: it refuses writes when the
// store sequence moved under us (another session wrote — state is
// refreshed and the caller retries), and runs the rollover when the
// calendar day changed while the process stayed up.
func (s *Service) ensureFreshLocked() error {
	seq, err := s.db.StateSeq()
	if err != nil {
		return err
	}
	if seq != s.seq {
		if err := s.loadLocked(); err != nil {
			return err
		}
		return domain.ErrStaleState
	}

	today := domain.DateKey(s.now())
	if today != s.today {
		prev := s.today
		if err := s.rolloverLocked(prev); err != nil {
			return err
		}
		if err := s.db.SetState(sqlite.KeyLastOpenDate, s.today); err != nil {
			return err
		}
		s.seq, _ = s.db.StateSeq()
	}
	return nil
}

func (s *Service) listLocked(cat domain.Category) ([]domain.TaskInstance, error) {
	switch cat {
	case domain.CategoryHealth:
		return s.health, nil
	case domain.CategoryEco:
		return s.eco, nil
	default:
		return nil, domain.ErrUnknownCategory
	}
}

// pushRecentLocked moves a task id to the front of the category's
// quick list, deduplicated and capped.
func (s *Service) pushRecentLocked(cat domain.Category, taskID string) {
	src := &s.recentHealth
	key := sqlite.KeyRecentHealth
	if cat == domain.CategoryEco {
		src = &s.recentEco
		key = sqlite.KeyRecentEco
	}
	next := []string{taskID}
	for _, id := range *src {
		if id != taskID {
			next = append(next, id)
		}
	}
	if len(next) > RecentLimit {
		next = next[:RecentLimit]
	}
	*src = next
	if err := s.setJSON(key, next); err != nil {
		log.Printf("[engine] persist recents: %v", err)
	}
}

// recomputeLogLocked re-derives today's threshold flag and prunes the
// retention window. Runs after every task-state change.
func (s *Service) recomputeLogLocked() error {
	met := domain.CompletedCount(s.health)+domain.CompletedCount(s.eco) >= DailyCompletionThreshold
	s.log[s.today] = met
	s.log = PruneLog(s.log, s.now(), LogKeepDays)
	return s.setJSON(sqlite.KeyDailyLog, s.log)
}

// ensureBaselineLocked seeds the simulated prior-lifetime total once,
// in [3000, 9000).
func (s *Service) ensureBaselineLocked() error {
	if s.getJSON(sqlite.KeyLifetimeBaseline, &s.baseline) && s.baseline > 0 {
		return nil
	}
	s.baseline = 3000 + rand.Intn(6000)
	return s.setJSON(sqlite.KeyLifetimeBaseline, s.baseline)
}

func (s *Service) persistTasksLocked() error {
	if err := s.setJSON(sqlite.KeyTasksHealth, s.health); err != nil {
		return err
	}
	return s.setJSON(sqlite.KeyTasksEco, s.eco)
}

func (s *Service) persistAwardLocked() error {
	if err := s.setJSON(sqlite.KeyAwardedTotal, s.award.Total); err != nil {
		return err
	}
	return s.setJSON(sqlite.KeyAwardedIDs, s.award.TaskIDs)
}

func (s *Service) persistModesLocked() error {
	if err := s.db.SetState(sqlite.KeyModeHealth, string(s.modeHealth)); err != nil {
		return err
	}
	return s.db.SetState(sqlite.KeyModeEco, string(s.modeEco))
}

func (s *Service) readMode(key string) domain.ViewMode {
	raw, _ := s.db.GetState(key)
	if raw == string(domain.ModeFocus) {
		return domain.ModeFocus
	}
	return domain.ModeBrowse
}

// syncRemote pushes the award delta to the hosted profile row and, on
// a first-time award, the audit log. Detached and best-effort: a
// failure becomes a notice, never an error to the caller.
func (s *Service) syncRemote(firstAward bool, taskID string, points, delta, taskDelta int) {
	if s.remote == nil {
		return
	}
	client, notices, b := s.remote, s.notices, s.bus
	day := s.now()
	go func() {
		ctx := context.Background()
		var failed error
		if firstAward {
			if err := client.RecordCompletion(ctx, taskID, points); err != nil {
				failed = err
			}
		}
		if err := client.ApplyDelta(ctx, day, delta, taskDelta); err != nil {
			failed = err
		}
		if failed != nil {
			log.Printf("[engine] remote sync: %v", failed)
			if notices != nil {
				if _, err := notices.Push(notify.SyncFailed(failed)); err != nil {
					log.Printf("[engine] sync notice: %v", err)
				}
			}
			if b != nil {
				b.Publish(bus.Event{Type: bus.EventSyncFailed, Payload: failed.Error()})
			}
		}
	}()
}

func (s *Service) pushNotice(n domain.Notice) {
	if s.notices == nil {
		return
	}
	if _, err := s.notices.Push(n); err != nil {
		log.Printf("[engine] notice: %v", err)
	}
}

func (s *Service) publish(typ bus.EventType, payload interface{}) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(bus.Event{Type: typ, Payload: payload})
}

func (s *Service) updateGauges() {
	metrics.AwardedToday.Set(float64(s.award.Total))
	metrics.StreakDays.Set(float64(ComputeStreak(s.log, s.now())))
}

// getJSON decodes a state value into v. Missing keys and corrupt
// values both report false — the caller's default stands.
func (s *Service) getJSON(key string, v interface{}) bool {
	raw, err := s.db.GetState(key)
	if err != nil || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		log.Printf("[engine] corrupt state %q: %v (using default)", key, err)
		return false
	}
	return true
}

func (s *Service) setJSON(key string, v interface{}) error {
	buf, err := json.Marshal(v)
	if err != nil {
		return &domain.PersistenceError{Op: "encode", Key: key, Err: err}
	}
	return s.db.SetState(key, string(buf))
}

func copyInstances(list []domain.TaskInstance) []domain.TaskInstance {
	out := make([]domain.TaskInstance, len(list))
	copy(out, list)
	return out
}
