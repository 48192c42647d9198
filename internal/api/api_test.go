package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abayate/earthwise/internal/api"
	"github.com/abayate/earthwise/internal/app/engine"
	"github.com/abayate/earthwise/internal/app/notify"
	"github.com/abayate/earthwise/internal/infra/bus"
	"github.com/abayate/earthwise/internal/infra/sqlite"
)

// newTestServer wires a fresh engine behind the full router.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	b := bus.New()
	notices := notify.NewService(db)
	eng, err := engine.Open(db, engine.Options{Bus: b, Notices: notices})
	if err != nil {
		t.Fatalf("open engine: %v", err)
	}

	srv := httptest.NewServer(api.NewServer(eng, notices, b).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, v interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url string, body, v interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	resp, err := http.Post(url, "application/json", &buf)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func putJSON(t *testing.T, url string, body, v interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("encode body: %v", err)
	}
	req, err := http.NewRequest(http.MethodPut, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT %s: %v", url, err)
	}
	defer resp.Body.Close()
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

// ═══════════════════════════════════════════════════════════════════════════
// Route Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestHealthAndVersion(t *testing.T) {
	srv := newTestServer(t)

	var health map[string]string
	if code := getJSON(t, srv.URL+"/health", &health); code != http.StatusOK {
		t.Fatalf("health status %d", code)
	}
	if health["status"] != "ok" {
		t.Errorf("health = %v", health)
	}
	if code := getJSON(t, srv.URL+"/api/version", nil); code != http.StatusOK {
		t.Errorf("version status %d", code)
	}
}

func TestListTasks(t *testing.T) {
	srv := newTestServer(t)

	var body struct {
		Category string `json:"category"`
		Mode     string `json:"mode"`
		Tasks    []struct {
			ID        string `json:"id"`
			Points    int    `json:"points"`
			Completed bool   `json:"completed"`
		} `json:"tasks"`
	}
	if code := getJSON(t, srv.URL+"/api/tasks/health", &body); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if len(body.Tasks) != 10 {
		t.Errorf("expected 10 health tasks, got %d", len(body.Tasks))
	}
	if body.Mode != "browse" {
		t.Errorf("expected default browse mode, got %s", body.Mode)
	}

	if code := getJSON(t, srv.URL+"/api/tasks/gardening", nil); code != http.StatusBadRequest {
		t.Errorf("unknown category: expected 400, got %d", code)
	}
}

func TestToggleRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	var result struct {
		TodaysPoints int      `json:"todays_points"`
		AwardedIDs   []string `json:"awarded_ids"`
	}
	code := postJSON(t, srv.URL+"/api/tasks/health/yoga-20/toggle", nil, &result)
	if code != http.StatusOK {
		t.Fatalf("toggle status %d", code)
	}
	if result.TodaysPoints != 20 {
		t.Errorf("expected 20 points, got %d", result.TodaysPoints)
	}
	if len(result.AwardedIDs) != 1 || result.AwardedIDs[0] != "yoga-20" {
		t.Errorf("awarded ids %v", result.AwardedIDs)
	}

	// Summary reflects it.
	var summary struct {
		TodaysPoints int `json:"todays_points"`
		StreakDays   int `json:"streak_days"`
	}
	getJSON(t, srv.URL+"/api/summary", &summary)
	if summary.TodaysPoints != 20 || summary.StreakDays != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestToggleUnknownTask(t *testing.T) {
	srv := newTestServer(t)
	if code := postJSON(t, srv.URL+"/api/tasks/health/nope/toggle", nil, nil); code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
}

func TestResetKeepsLedger(t *testing.T) {
	srv := newTestServer(t)

	postJSON(t, srv.URL+"/api/tasks/eco/meatless-meal/toggle", nil, nil)

	var result struct {
		Tasks []struct {
			Completed bool `json:"completed"`
		} `json:"tasks"`
	}
	if code := postJSON(t, srv.URL+"/api/tasks/eco/reset", nil, &result); code != http.StatusOK {
		t.Fatalf("reset status %d", code)
	}
	for i, task := range result.Tasks {
		if task.Completed {
			t.Errorf("task %d still completed after reset", i)
		}
	}

	var summary struct {
		TodaysPoints int `json:"todays_points"`
	}
	getJSON(t, srv.URL+"/api/summary", &summary)
	if summary.TodaysPoints != 25 {
		t.Errorf("reset must keep paid points, got %d", summary.TodaysPoints)
	}
}

func TestSetMode(t *testing.T) {
	srv := newTestServer(t)

	code := putJSON(t, srv.URL+"/api/tasks/health/mode", map[string]string{"mode": "focus"}, nil)
	if code != http.StatusOK {
		t.Fatalf("set mode status %d", code)
	}
	var body struct {
		Mode string `json:"mode"`
	}
	getJSON(t, srv.URL+"/api/tasks/health", &body)
	if body.Mode != "focus" {
		t.Errorf("expected focus, got %s", body.Mode)
	}

	code = putJSON(t, srv.URL+"/api/tasks/health/mode", map[string]string{"mode": "grid"}, nil)
	if code != http.StatusBadRequest {
		t.Errorf("invalid mode: expected 400, got %d", code)
	}
}

func TestPrefsPartialMerge(t *testing.T) {
	srv := newTestServer(t)

	var prefs struct {
		Confetti bool `json:"confetti"`
		Compact  bool `json:"compact"`
	}
	getJSON(t, srv.URL+"/api/prefs", &prefs)
	if !prefs.Confetti {
		t.Fatal("expected confetti on by default")
	}

	// Setting one field leaves the rest untouched.
	putJSON(t, srv.URL+"/api/prefs", map[string]bool{"compact": true}, nil)
	getJSON(t, srv.URL+"/api/prefs", &prefs)
	if !prefs.Compact {
		t.Error("compact should now be set")
	}
	if !prefs.Confetti {
		t.Error("confetti default lost in partial update")
	}
}

func TestProfileLifecycle(t *testing.T) {
	srv := newTestServer(t)

	if code := getJSON(t, srv.URL+"/api/profile", nil); code != http.StatusNotFound {
		t.Errorf("fresh install: expected 404, got %d", code)
	}

	profile := map[string]interface{}{
		"id":            "p1",
		"name":          "Casey",
		"health_rating": 4,
		"eco_rating":    3,
		"interests":     []string{"fitness"},
	}
	if code := putJSON(t, srv.URL+"/api/profile", profile, nil); code != http.StatusOK {
		t.Fatalf("put profile status %d", code)
	}

	var got struct {
		Name string `json:"name"`
	}
	if code := getJSON(t, srv.URL+"/api/profile", &got); code != http.StatusOK {
		t.Fatalf("get profile status %d", code)
	}
	if got.Name != "Casey" {
		t.Errorf("profile name %q", got.Name)
	}
}

func TestNoticesFlow(t *testing.T) {
	srv := newTestServer(t)

	// A completion pushes a notice.
	postJSON(t, srv.URL+"/api/tasks/health/yoga-20/toggle", nil, nil)

	var body struct {
		Notices []struct {
			ID   int64  `json:"id"`
			Type string `json:"type"`
		} `json:"notices"`
	}
	getJSON(t, srv.URL+"/api/notices", &body)
	if len(body.Notices) == 0 {
		t.Fatal("expected a pending notice after completion")
	}

	id := body.Notices[0].ID
	if code := postJSON(t, srv.URL+fmt.Sprintf("/api/notices/%d/shown", id), nil, nil); code != http.StatusOK {
		t.Fatalf("mark shown status %d", code)
	}
	if code := postJSON(t, srv.URL+"/api/notices/99999/shown", nil, nil); code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown notice, got %d", code)
	}
}

func TestLeaderboard(t *testing.T) {
	srv := newTestServer(t)

	var body struct {
		Board []struct {
			Name  string `json:"name"`
			Score int    `json:"score"`
		} `json:"board"`
		Rank struct {
			Rank int `json:"rank"`
			Gap  int `json:"gap"`
		} `json:"rank"`
	}
	if code := getJSON(t, srv.URL+"/api/leaderboard", &body); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if len(body.Board) != 10 {
		t.Errorf("expected 10 seeded users, got %d", len(body.Board))
	}
	if body.Rank.Rank < 1 || body.Rank.Rank > 11 {
		t.Errorf("rank out of range: %d", body.Rank.Rank)
	}
}

func TestEventsStream(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/events", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET events: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type %q", ct)
	}

	// A toggle publishes; the stream carries at least one frame.
	go func() {
		resp, err := http.Post(srv.URL+"/api/tasks/health/yoga-20/toggle", "application/json", nil)
		if err == nil {
			resp.Body.Close()
		}
	}()

	buf := make([]byte, 4096)
	done := make(chan string, 1)
	go func() {
		n, _ := resp.Body.Read(buf)
		done <- string(buf[:n])
	}()
	select {
	case frame := <-done:
		if frame == "" {
			t.Error("empty SSE frame")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for an SSE frame")
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/summary", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("preflight status %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}
