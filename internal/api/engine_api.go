package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abayate/earthwise/internal/app/engine"
	"github.com/abayate/earthwise/internal/domain"
)

// ─── Engine REST surface ────────────────────────────────────────────────────
// Every view reads and writes through these handlers; none of them
// carries its own accounting.

func categoryParam(r *http.Request) (domain.Category, bool) {
	cat := domain.Category(chi.URLParam(r, "category"))
	return cat, cat.Valid()
}

// --- /api/summary ---

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	agg, err := s.engine.Aggregates()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	award := s.engine.Award()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":            s.engine.Today(),
		"todays_points":   award.Total,
		"awarded_tasks":   len(award.TaskIDs),
		"streak_days":     s.engine.Streak(),
		"monthly_points":  agg.MonthlyPoints,
		"lifetime_points": agg.LifetimePoints,
		"milestone":       s.engine.Milestone(),
	})
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"streak_days": s.engine.Streak(),
		"log":         s.engine.Log(),
	})
}

func (s *Server) handleAggregates(w http.ResponseWriter, r *http.Request) {
	agg, err := s.engine.Aggregates()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, agg)
}

func (s *Server) handleMilestone(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Milestone())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := s.engine.History(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days <= 0 {
		days = 7
	}
	series, err := s.engine.PointsSeries(days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"days":   days,
		"points": series,
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	board := engine.SeedBoard()
	rank, err := s.engine.Rank(board)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"board": board,
		"rank":  rank,
	})
}

// --- /api/tasks/{category} ---

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	cat, ok := categoryParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, domain.ErrUnknownCategory.Error())
		return
	}
	tasks, err := s.engine.Tasks(cat)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"category": cat,
		"mode":     s.engine.Mode(cat),
		"tasks":    tasks,
	})
}

func (s *Server) handleRecents(w http.ResponseWriter, r *http.Request) {
	cat, ok := categoryParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, domain.ErrUnknownCategory.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"recent": s.engine.Recents(cat),
	})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	cat, ok := categoryParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, domain.ErrUnknownCategory.Error())
		return
	}
	tasks, err := s.engine.Toggle(cat, chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, domain.ErrStaleState):
		// Another session wrote first; the engine has refreshed.
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	award := s.engine.Award()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tasks":         tasks,
		"todays_points": award.Total,
		"awarded_ids":   award.TaskIDs,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	cat, ok := categoryParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, domain.ErrUnknownCategory.Error())
		return
	}
	tasks, err := s.engine.ResetCategory(cat)
	if errors.Is(err, domain.ErrStaleState) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tasks": tasks,
	})
}

type modeRequest struct {
	Mode domain.ViewMode `json:"mode"`
}

func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	cat, ok := categoryParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, domain.ErrUnknownCategory.Error())
		return
	}
	var req modeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Mode != domain.ModeBrowse && req.Mode != domain.ModeFocus {
		writeError(w, http.StatusBadRequest, "mode must be browse or focus")
		return
	}
	if err := s.engine.SetMode(cat, req.Mode); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"mode": req.Mode,
	})
}

// --- /api/prefs and /api/profile ---

func (s *Server) handleGetPrefs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Prefs())
}

func (s *Server) handleSetPrefs(w http.ResponseWriter, r *http.Request) {
	// Partial bodies merge over the current set: omitted fields keep
	// their stored values.
	prefs := s.engine.Prefs()
	if err := decodeBody(r, &prefs); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.engine.SetPrefs(prefs); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p := s.engine.Profile()
	if p == nil {
		writeError(w, http.StatusNotFound, "no profile stored")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSetProfile(w http.ResponseWriter, r *http.Request) {
	var p domain.Profile
	if err := decodeBody(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.engine.SetProfile(p); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// --- /api/notices ---

func (s *Server) handleNotices(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	notices, err := s.notices.Pending(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notices": notices,
	})
}

func (s *Server) handleNoticeShown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notice id")
		return
	}
	if err := s.notices.MarkShown(id); err != nil {
		if errors.Is(err, domain.ErrNoticeNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
