package sleep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/babylog/babylog-backend/internal/domain"
	"github.com/babylog/babylog-backend/pkg/ctxutil"
)

// FallAsleep opens a new sleep session starting at input.At.
// A caregiver has at most one open session: if one exists the call fails with
// domain.ErrSessionAlreadyOpen.
func (s *Service) FallAsleep(ctx context.Context, input FallAsleepInput) (*domain.Event, error) {
	caregiverID, ok := ctxutil.CaregiverIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	start := input.At.UTC()
	if input.At.IsZero() {
		start = s.clock.Now().UTC()
	}

	var created *domain.Event

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		_, err := s.events.GetOpenSleepForUpdate(txCtx, caregiverID)
		if err == nil {
			return domain.ErrSessionAlreadyOpen
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("check open session: %w", err)
		}

		event := &domain.Event{
			ID:          uuid.New(),
			CaregiverID: caregiverID,
			Type:        domain.EventTypeSleep,
			OccurredAt:  start,
			SleepStart:  &start,
		}

		created, err = s.events.Create(txCtx, event)
		if err != nil {
			// Lost race: with no open row there was nothing to lock, and a
			// concurrent request inserted first. The unique index turns that
			// into ErrAlreadyExists, which here means a session is open.
			if errors.Is(err, domain.ErrAlreadyExists) {
				return domain.ErrSessionAlreadyOpen
			}
			return fmt.Errorf("create sleep session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "sleep session opened",
		slog.String("caregiver_id", caregiverID.String()),
		slog.String("event_id", created.ID.String()),
		slog.Time("start", *created.SleepStart),
	)

	return created, nil
}
