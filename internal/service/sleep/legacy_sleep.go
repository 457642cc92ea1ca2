package sleep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/babylog/babylog-backend/internal/domain"
	"github.com/babylog/babylog-backend/pkg/ctxutil"
)

// RecordLegacySleep logs a completed sleep for which no fall-asleep/wake-up
// pair exists: the caregiver supplies a start time and a duration, and the
// event is created fully closed with end = start + minutes. The duration and
// the resulting interval are subject to the same verifier and overlap rules
// as WakeUp. OccurredAt is the wake time, matching how one-shot entries were
// historically ordered.
func (s *Service) RecordLegacySleep(ctx context.Context, input LegacySleepInput) (*Result, error) {
	caregiverID, ok := ctxutil.CaregiverIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	// The verifier is pure; check before opening a transaction.
	switch check := s.limits.Verify(input.Minutes); check.Outcome {
	case domain.SleepInvalid:
		return nil, domain.ErrInvalidDuration
	case domain.SleepNeedsConfirmation:
		if !input.Confirmed {
			return &Result{Confirmation: &domain.SleepConfirmation{
				Reason:  check.Reason,
				Minutes: input.Minutes,
			}}, nil
		}
	}

	start := input.Start.UTC()
	end := start.Add(time.Duration(input.Minutes) * time.Minute)

	var created *domain.Event

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// Lock the open-session row if one exists, serializing against a
		// concurrent wake-up that could close into an overlapping interval.
		// An open session starting inside the legacy window is rejected now;
		// whatever end it eventually gets would overlap.
		open, err := s.events.GetOpenSleepForUpdate(txCtx, caregiverID)
		switch {
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("lock open session: %w", err)
		case err == nil:
			if openStart := open.SleepStart.UTC(); !openStart.Before(start) && openStart.Before(end) {
				return domain.ErrSleepOverlap
			}
		}

		others, err := s.events.ListClosedSleepIntersecting(txCtx, caregiverID, start, end)
		if err != nil {
			return fmt.Errorf("list sessions for overlap check: %w", err)
		}
		if domain.OverlapsAny(start, end, others) {
			return domain.ErrSleepOverlap
		}

		minutes := input.Minutes
		event := &domain.Event{
			ID:          uuid.New(),
			CaregiverID: caregiverID,
			Type:        domain.EventTypeSleep,
			OccurredAt:  end,
			Amount:      &minutes,
			SleepStart:  &start,
			SleepEnd:    &end,
		}

		created, err = s.events.Create(txCtx, event)
		if err != nil {
			return fmt.Errorf("create legacy sleep: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "legacy sleep recorded",
		slog.String("caregiver_id", caregiverID.String()),
		slog.String("event_id", created.ID.String()),
		slog.Int("minutes", input.Minutes),
	)

	return &Result{Event: created}, nil
}
