package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/babylog/babylog-backend/internal/domain"
	"github.com/babylog/babylog-backend/internal/service/sleep"
)

// eventRecorder defines the write interface needed by EventsHandler.
// Recording goes through the sleep service so an open session is
// auto-closed in the same transaction.
type eventRecorder interface {
	RecordEvent(ctx context.Context, input sleep.RecordEventInput) (*domain.Event, error)
}

// journalService defines the read/delete interface needed by EventsHandler.
type journalService interface {
	List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, int, error)
	Get(ctx context.Context, eventID uuid.UUID) (*domain.Event, error)
	Delete(ctx context.Context, eventID uuid.UUID) error
}

// EventsHandler serves event journal REST endpoints.
type EventsHandler struct {
	recorder eventRecorder
	journal  journalService
	log      *slog.Logger
}

// NewEventsHandler creates an EventsHandler.
func NewEventsHandler(recorder eventRecorder, journal journalService, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		recorder: recorder,
		journal:  journal,
		log:      logger.With("handler", "events"),
	}
}

type createEventRequest struct {
	Type   string     `json:"type"`
	At     *time.Time `json:"at"`
	Amount *int       `json:"amount"`
	Note   *string    `json:"note"`
}

type eventResponse struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	OccurredAt time.Time  `json:"occurredAt"`
	Amount     *int       `json:"amount,omitempty"`
	Note       *string    `json:"note,omitempty"`
	SleepStart *time.Time `json:"sleepStart,omitempty"`
	SleepEnd   *time.Time `json:"sleepEnd,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type listEventsResponse struct {
	Events []eventResponse `json:"events"`
	Total  int             `json:"total"`
}

// Create handles POST /api/v1/events.
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := sleep.RecordEventInput{
		Type:   domain.EventType(req.Type),
		Amount: req.Amount,
		Note:   req.Note,
	}
	if req.At != nil {
		input.At = *req.At
	}

	event, err := h.recorder.RecordEvent(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(event))
}

// List handles GET /api/v1/events.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	events, total, err := h.journal.List(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := listEventsResponse{
		Events: make([]eventResponse, 0, len(events)),
		Total:  total,
	}
	for _, e := range events {
		resp.Events = append(resp.Events, toEventResponse(e))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/events/{id}.
func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := h.journal.Get(r.Context(), eventID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(event))
}

// Delete handles DELETE /api/v1/events/{id}.
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	if err := h.journal.Delete(r.Context(), eventID); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func filterFromQuery(r *http.Request) (domain.EventFilter, error) {
	var filter domain.EventFilter
	q := r.URL.Query()

	for _, t := range q["type"] {
		filter.Types = append(filter.Types, domain.EventType(t))
	}

	from, err := parseTimeParam(q.Get("from"))
	if err != nil {
		return filter, err
	}
	filter.From = from

	to, err := parseTimeParam(q.Get("to"))
	if err != nil {
		return filter, err
	}
	filter.To = to

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return filter, err
		}
		filter.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return filter, err
		}
		filter.Offset = offset
	}

	return filter, nil
}

func toEventResponse(e *domain.Event) eventResponse {
	return eventResponse{
		ID:         e.ID.String(),
		Type:       e.Type.String(),
		OccurredAt: e.OccurredAt,
		Amount:     e.Amount,
		Note:       e.Note,
		SleepStart: e.SleepStart,
		SleepEnd:   e.SleepEnd,
		CreatedAt:  e.CreatedAt,
	}
}
