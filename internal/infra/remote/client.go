// Package remote is the best-effort client for the hosted profile
// record and the append-only completion audit log. Local state is
// always authoritative: every call here has a timeout and a bounded
// retry, and failures are reported back for a notice, never for a
// rollback of local state.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/abayate/earthwise/internal/domain"
	"github.com/abayate/earthwise/internal/infra/metrics"
)

// Client talks to the remote store.
type Client struct {
	baseURL string
	userID  string
	http    *http.Client
	retries int
}

// Config controls the remote client.
type Config struct {
	BaseURL string
	UserID  string
	Timeout time.Duration
	Retries int
}

// NewClient creates a remote client. Timeout defaults to 5s, retries
// to 2 (three attempts total).
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	return &Client{
		baseURL: cfg.BaseURL,
		userID:  cfg.UserID,
		http:    &http.Client{Timeout: cfg.Timeout},
		retries: cfg.Retries,
	}
}

// Profile fetches the remote profile row. Returns nil without error
// when no row exists yet.
func (c *Client) Profile(ctx context.Context) (*domain.RemoteProfile, error) {
	var p *domain.RemoteProfile
	err := c.withRetry(ctx, "profile_get", func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.profileURL(), nil)
		if err != nil {
			return err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer drain(resp)

		switch resp.StatusCode {
		case http.StatusOK:
			var row domain.RemoteProfile
			if err := json.NewDecoder(resp.Body).Decode(&row); err != nil {
				return fmt.Errorf("decode profile: %w", err)
			}
			p = &row
			return nil
		case http.StatusNotFound:
			p = nil
			return nil
		default:
			return statusErr(resp)
		}
	})
	return p, err
}

// ApplyDelta applies a points delta (negative for undo) and a task
// count delta to the remote row: day and month fields reset when the
// row's last activity falls outside today/this month, every field is
// clamped at zero, and a missing row is created. Mirrors what the
// engine did locally, so a lost call leaves the remote behind, never
// corrupt.
func (c *Client) ApplyDelta(ctx context.Context, today time.Time, delta, taskDelta int) error {
	if delta == 0 && taskDelta == 0 {
		return nil
	}

	row, err := c.Profile(ctx)
	if err != nil {
		return fmt.Errorf("load profile row: %w", err)
	}

	todayKey := domain.DateKey(today)
	if row == nil {
		created := domain.RemoteProfile{
			UserID:           c.userID,
			TodaysPoints:     clamp(delta),
			MonthPoints:      clamp(delta),
			TotalPoints:      clamp(delta),
			TotalTasks:       clamp(taskDelta),
			LastActivityDate: todayKey,
		}
		return c.withRetry(ctx, "profile_create", func() error {
			return c.send(ctx, http.MethodPost, c.baseURL+"/profiles", created)
		})
	}

	sameDay := row.LastActivityDate == todayKey
	sameMonth := row.LastActivityDate == "" ||
		(len(row.LastActivityDate) >= 7 && row.LastActivityDate[:7] == domain.MonthPrefix(today))

	next := domain.RemoteProfile{
		UserID:           c.userID,
		TotalPoints:      clamp(row.TotalPoints + delta),
		TotalTasks:       clamp(row.TotalTasks + taskDelta),
		LastActivityDate: todayKey,
	}
	if sameDay {
		next.TodaysPoints = clamp(row.TodaysPoints + delta)
	} else {
		next.TodaysPoints = clamp(delta)
	}
	if sameMonth {
		next.MonthPoints = clamp(row.MonthPoints + delta)
	} else {
		next.MonthPoints = clamp(delta)
	}

	return c.withRetry(ctx, "profile_update", func() error {
		return c.send(ctx, http.MethodPut, c.profileURL(), next)
	})
}

// RecordCompletion appends one audit row for a first-time award.
// Safe to retry: the server dedupes on (user, task, date).
func (c *Client) RecordCompletion(ctx context.Context, taskID string, points int) error {
	row := domain.Completion{UserID: c.userID, TaskID: taskID, Points: points}
	return c.withRetry(ctx, "completion", func() error {
		return c.send(ctx, http.MethodPost, c.baseURL+"/completions", row)
	})
}

// LifetimeFromAudit sums the audit log's points for the user — the
// independent cross-check against the profile row's lifetime total.
func (c *Client) LifetimeFromAudit(ctx context.Context) (int, error) {
	var total int
	err := c.withRetry(ctx, "audit_sum", func() error {
		url := fmt.Sprintf("%s/completions?user_id=%s", c.baseURL, c.userID)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer drain(resp)
		if resp.StatusCode != http.StatusOK {
			return statusErr(resp)
		}
		var rows []domain.Completion
		if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
			return fmt.Errorf("decode completions: %w", err)
		}
		total = 0
		for _, r := range rows {
			total += r.Points
		}
		return nil
	})
	return total, err
}

// ─── Transport helpers ──────────────────────────────────────────────────────

func (c *Client) profileURL() string {
	return c.baseURL + "/profiles/" + c.userID
}

func (c *Client) send(ctx context.Context, method, url string, body interface{}) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer drain(resp)
	if resp.StatusCode >= 300 {
		return statusErr(resp)
	}
	return nil
}

// withRetry runs op up to retries+1 times with a short linear backoff,
// recording latency and terminal failures.
func (c *Client) withRetry(ctx context.Context, op string, fn func() error) error {
	timer := time.Now()
	var err error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(attempt) * 250 * time.Millisecond):
			case <-ctx.Done():
				metrics.SyncFailures.WithLabelValues(op).Inc()
				return ctx.Err()
			}
		}
		if err = fn(); err == nil {
			metrics.SyncLatency.WithLabelValues(op).Observe(time.Since(timer).Seconds())
			return nil
		}
	}
	metrics.SyncFailures.WithLabelValues(op).Inc()
	return fmt.Errorf("%s: %w", op, err)
}

func statusErr(resp *http.Response) error {
	return fmt.Errorf("%w: %s returned %d", domain.ErrRemoteUnavailable, resp.Request.URL.Path, resp.StatusCode)
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
