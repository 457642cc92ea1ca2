package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/babylog/babylog-backend/internal/service/stats"
)

// statsService defines the minimal interface needed by StatsHandler.
type statsService interface {
	Daily(ctx context.Context, date time.Time) (*stats.DailySummary, error)
}

// StatsHandler serves aggregate statistics REST endpoints.
type StatsHandler struct {
	svc statsService
	log *slog.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(svc statsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: logger.With("handler", "stats")}
}

type dailySummaryResponse struct {
	Date         string         `json:"date"`
	Counts       map[string]int `json:"counts"`
	SleepMinutes int            `json:"sleepMinutes"`
	LastFeedAt   *time.Time     `json:"lastFeedAt,omitempty"`
}

// Daily handles GET /api/v1/stats/daily. The date query parameter is a
// calendar day in YYYY-MM-DD form, defaulting to today.
func (h *StatsHandler) Daily(w http.ResponseWriter, r *http.Request) {
	date := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
			return
		}
		date = parsed
	}

	summary, err := h.svc.Daily(r.Context(), date)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := dailySummaryResponse{
		Date:         summary.Date.Format("2006-01-02"),
		Counts:       make(map[string]int, len(summary.Counts)),
		SleepMinutes: summary.SleepMinutes,
		LastFeedAt:   summary.LastFeedAt,
	}
	for typ, count := range summary.Counts {
		resp.Counts[typ.String()] = count
	}

	writeJSON(w, http.StatusOK, resp)
}
