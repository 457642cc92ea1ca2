package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/babylog/babylog-backend/internal/domain"
	"github.com/babylog/babylog-backend/internal/service/sleep"
)

// sleepService defines the minimal interface needed by SleepHandler.
type sleepService interface {
	FallAsleep(ctx context.Context, input sleep.FallAsleepInput) (*domain.Event, error)
	WakeUp(ctx context.Context, input sleep.WakeUpInput) (*sleep.Result, error)
	RecordLegacySleep(ctx context.Context, input sleep.LegacySleepInput) (*sleep.Result, error)
}

// SleepHandler serves sleep session REST endpoints.
type SleepHandler struct {
	svc sleepService
	log *slog.Logger
}

// NewSleepHandler creates a SleepHandler.
func NewSleepHandler(svc sleepService, logger *slog.Logger) *SleepHandler {
	return &SleepHandler{svc: svc, log: logger.With("handler", "sleep")}
}

type fallAsleepRequest struct {
	At *time.Time `json:"at"`
}

type wakeUpRequest struct {
	At        *time.Time `json:"at"`
	Confirmed bool       `json:"confirmed"`
}

type legacySleepRequest struct {
	Start     time.Time `json:"start"`
	Minutes   int       `json:"minutes"`
	Confirmed bool      `json:"confirmed"`
}

type confirmationResponse struct {
	Reason  string `json:"reason"`
	Minutes int    `json:"minutes"`
}

// sleepResultResponse carries either the stored event or a confirmation
// request, never both.
type sleepResultResponse struct {
	Event                *eventResponse        `json:"event,omitempty"`
	ConfirmationRequired *confirmationResponse `json:"confirmationRequired,omitempty"`
}

// FallAsleep handles POST /api/v1/sleep/fall-asleep.
func (h *SleepHandler) FallAsleep(w http.ResponseWriter, r *http.Request) {
	var req fallAsleepRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := sleep.FallAsleepInput{}
	if req.At != nil {
		input.At = *req.At
	}

	event, err := h.svc.FallAsleep(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(event))
}

// WakeUp handles POST /api/v1/sleep/wake-up.
func (h *SleepHandler) WakeUp(w http.ResponseWriter, r *http.Request) {
	var req wakeUpRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := sleep.WakeUpInput{Confirmed: req.Confirmed}
	if req.At != nil {
		input.At = *req.At
	}

	result, err := h.svc.WakeUp(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSleepResultResponse(result))
}

// Legacy handles POST /api/v1/sleep/legacy.
func (h *SleepHandler) Legacy(w http.ResponseWriter, r *http.Request) {
	var req legacySleepRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.RecordLegacySleep(r.Context(), sleep.LegacySleepInput{
		Start:     req.Start,
		Minutes:   req.Minutes,
		Confirmed: req.Confirmed,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	status := http.StatusCreated
	if result.Confirmation != nil {
		status = http.StatusOK
	}
	writeJSON(w, status, toSleepResultResponse(result))
}

func toSleepResultResponse(result *sleep.Result) sleepResultResponse {
	if result.Confirmation != nil {
		return sleepResultResponse{
			ConfirmationRequired: &confirmationResponse{
				Reason:  result.Confirmation.Reason.String(),
				Minutes: result.Confirmation.Minutes,
			},
		}
	}
	event := toEventResponse(result.Event)
	return sleepResultResponse{Event: &event}
}

// decodeBody decodes a JSON body, treating an empty body as the zero value.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
