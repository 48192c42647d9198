package remote_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abayate/earthwise/internal/domain"
	"github.com/abayate/earthwise/internal/infra/remote"
)

// fakeStore is a minimal in-memory remote: one profile row per user
// and an append-only completions list.
type fakeStore struct {
	mu          sync.Mutex
	rows        map[string]domain.RemoteProfile
	completions []domain.Completion
	failures    int // respond 500 this many times before recovering
}

func (s *fakeStore) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /profiles/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.failures > 0 {
			s.failures--
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		row, ok := s.rows[r.PathValue("id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(row)
	})
	mux.HandleFunc("POST /profiles", func(w http.ResponseWriter, r *http.Request) {
		var row domain.RemoteProfile
		if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		s.rows[row.UserID] = row
		s.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("PUT /profiles/{id}", func(w http.ResponseWriter, r *http.Request) {
		var row domain.RemoteProfile
		if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		s.rows[r.PathValue("id")] = row
		s.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /completions", func(w http.ResponseWriter, r *http.Request) {
		var row domain.Completion
		if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		s.completions = append(s.completions, row)
		s.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("GET /completions", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		user := r.URL.Query().Get("user_id")
		out := []domain.Completion{}
		for _, c := range s.completions {
			if c.UserID == user {
				out = append(out, c)
			}
		}
		json.NewEncoder(w).Encode(out)
	})
	return mux
}

func (s *fakeStore) row(user string) domain.RemoteProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[user]
}

func newFixture(t *testing.T, retries int) (*fakeStore, *remote.Client) {
	t.Helper()
	store := &fakeStore{rows: map[string]domain.RemoteProfile{}}
	srv := httptest.NewServer(store.handler())
	t.Cleanup(srv.Close)
	client := remote.NewClient(remote.Config{
		BaseURL: srv.URL,
		UserID:  "u1",
		Timeout: 2 * time.Second,
		Retries: retries,
	})
	return store, client
}

var today = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestProfile_MissingRowIsNilNotError(t *testing.T) {
	_, client := newFixture(t, 0)
	row, err := client.Profile(context.Background())
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestApplyDelta_CreatesMissingRow(t *testing.T) {
	store, client := newFixture(t, 0)

	require.NoError(t, client.ApplyDelta(context.Background(), today, 20, 1))

	row := store.row("u1")
	assert.Equal(t, 20, row.TodaysPoints)
	assert.Equal(t, 20, row.MonthPoints)
	assert.Equal(t, 20, row.TotalPoints)
	assert.Equal(t, 1, row.TotalTasks)
	assert.Equal(t, "2026-03-10", row.LastActivityDate)
}

func TestApplyDelta_SameDayAccumulates(t *testing.T) {
	store, client := newFixture(t, 0)
	ctx := context.Background()

	require.NoError(t, client.ApplyDelta(ctx, today, 20, 1))
	require.NoError(t, client.ApplyDelta(ctx, today, 25, 1))

	row := store.row("u1")
	assert.Equal(t, 45, row.TodaysPoints)
	assert.Equal(t, 45, row.MonthPoints)
	assert.Equal(t, 45, row.TotalPoints)
	assert.Equal(t, 2, row.TotalTasks)
}

func TestApplyDelta_NewDayResetsDayScope(t *testing.T) {
	store, client := newFixture(t, 0)
	ctx := context.Background()

	require.NoError(t, client.ApplyDelta(ctx, today, 20, 1))
	require.NoError(t, client.ApplyDelta(ctx, today.AddDate(0, 0, 1), 25, 1))

	row := store.row("u1")
	assert.Equal(t, 25, row.TodaysPoints, "new day starts from the delta")
	assert.Equal(t, 45, row.MonthPoints, "same month keeps accumulating")
	assert.Equal(t, 45, row.TotalPoints)
}

func TestApplyDelta_NewMonthResetsMonthScope(t *testing.T) {
	store, client := newFixture(t, 0)
	ctx := context.Background()

	require.NoError(t, client.ApplyDelta(ctx, today, 20, 1))
	require.NoError(t, client.ApplyDelta(ctx, today.AddDate(0, 1, 0), 25, 1))

	row := store.row("u1")
	assert.Equal(t, 25, row.TodaysPoints)
	assert.Equal(t, 25, row.MonthPoints, "month rolled, month points restart")
	assert.Equal(t, 45, row.TotalPoints, "lifetime never resets")
}

func TestApplyDelta_UndoClampsAtZero(t *testing.T) {
	store, client := newFixture(t, 0)
	ctx := context.Background()

	require.NoError(t, client.ApplyDelta(ctx, today, 20, 1))
	// A reversal larger than the row's balance clamps instead of going
	// negative.
	require.NoError(t, client.ApplyDelta(ctx, today, -50, -2))

	row := store.row("u1")
	assert.Equal(t, 0, row.TodaysPoints)
	assert.Equal(t, 0, row.MonthPoints)
	assert.Equal(t, 0, row.TotalPoints)
	assert.Equal(t, 0, row.TotalTasks)
}

func TestApplyDelta_ZeroDeltaSkipsNetwork(t *testing.T) {
	store := &fakeStore{rows: map[string]domain.RemoteProfile{}}
	srv := httptest.NewServer(store.handler())
	srv.Close() // unreachable: a request would fail
	client := remote.NewClient(remote.Config{BaseURL: srv.URL, UserID: "u1"})

	assert.NoError(t, client.ApplyDelta(context.Background(), today, 0, 0))
}

func TestWithRetry_RecoversFromTransientFailure(t *testing.T) {
	store, client := newFixture(t, 2)
	store.failures = 2

	require.NoError(t, client.ApplyDelta(context.Background(), today, 20, 1))
	assert.Equal(t, 20, store.row("u1").TotalPoints)
}

func TestWithRetry_GivesUpAndWrapsSentinel(t *testing.T) {
	store, client := newFixture(t, 1)
	store.failures = 10

	err := client.ApplyDelta(context.Background(), today, 20, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
}

func TestRecordCompletionAndAuditSum(t *testing.T) {
	store, client := newFixture(t, 0)
	ctx := context.Background()

	require.NoError(t, client.RecordCompletion(ctx, "yoga-20", 20))
	require.NoError(t, client.RecordCompletion(ctx, "meatless-meal", 25))
	assert.Len(t, store.completions, 2)

	total, err := client.LifetimeFromAudit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 45, total)
}
