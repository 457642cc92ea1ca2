package journal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/babylog/babylog-backend/internal/domain"
	"github.com/babylog/babylog-backend/pkg/ctxutil"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

type eventRepo interface {
	GetByID(ctx context.Context, caregiverID, eventID uuid.UUID) (*domain.Event, error)
	List(ctx context.Context, caregiverID uuid.UUID, filter domain.EventFilter) ([]*domain.Event, int, error)
	Delete(ctx context.Context, caregiverID, eventID uuid.UUID) error
}

// Service exposes read and delete access to a caregiver's event journal.
// Writes go through the sleep service, which owns the session lifecycle.
type Service struct {
	events eventRepo
	log    *slog.Logger
}

func NewService(logger *slog.Logger, events eventRepo) *Service {
	return &Service{
		events: events,
		log:    logger.With("service", "journal"),
	}
}

// List returns a page of events plus the total count for the filter.
func (s *Service) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, int, error) {
	caregiverID, ok := ctxutil.CaregiverIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}

	if err := validateFilter(filter); err != nil {
		return nil, 0, err
	}

	if filter.Limit <= 0 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}

	events, total, err := s.events.List(ctx, caregiverID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

func (s *Service) Get(ctx context.Context, eventID uuid.UUID) (*domain.Event, error) {
	caregiverID, ok := ctxutil.CaregiverIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	event, err := s.events.GetByID(ctx, caregiverID, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *Service) Delete(ctx context.Context, eventID uuid.UUID) error {
	caregiverID, ok := ctxutil.CaregiverIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.events.Delete(ctx, caregiverID, eventID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	s.log.InfoContext(ctx, "event deleted",
		slog.String("caregiver_id", caregiverID.String()),
		slog.String("event_id", eventID.String()),
	)
	return nil
}

func validateFilter(filter domain.EventFilter) error {
	var fields []domain.FieldError

	for _, typ := range filter.Types {
		if !typ.IsValid() {
			fields = append(fields, domain.FieldError{
				Field:   "types",
				Message: fmt.Sprintf("unknown event type %q", typ),
			})
		}
	}
	if filter.From != nil && filter.To != nil && !filter.To.After(*filter.From) {
		fields = append(fields, domain.FieldError{Field: "to", Message: "must be after from"})
	}
	if filter.Offset < 0 {
		fields = append(fields, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Errors: fields}
	}
	return nil
}
