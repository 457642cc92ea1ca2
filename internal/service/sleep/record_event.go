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

// RecordEvent logs a non-sleep event. If the caregiver has an open sleep
// session it is auto-closed at input.At inside the same transaction, so the
// two changes commit or roll back together. Auto-close is best-effort:
// verification and overlap failures are logged, the session stays open, and
// the foreign event is recorded regardless.
func (s *Service) RecordEvent(ctx context.Context, input RecordEventInput) (*domain.Event, error) {
	caregiverID, ok := ctxutil.CaregiverIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	at := input.At.UTC()
	if input.At.IsZero() {
		at = s.clock.Now().UTC()
	}

	var created *domain.Event

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		open, err := s.events.GetOpenSleepForUpdate(txCtx, caregiverID)
		switch {
		case err == nil:
			// Lock held until commit; the session is closed after the
			// foreign event is recorded.
		case errors.Is(err, domain.ErrNotFound):
			open = nil
		default:
			return fmt.Errorf("check open session: %w", err)
		}

		event := &domain.Event{
			ID:          uuid.New(),
			CaregiverID: caregiverID,
			Type:        input.Type,
			OccurredAt:  at,
			Amount:      input.Amount,
			Note:        input.Note,
		}

		created, err = s.events.Create(txCtx, event)
		if err != nil {
			return fmt.Errorf("create event: %w", err)
		}

		if open != nil {
			s.autoCloseSleep(txCtx, caregiverID, open, at)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "event recorded",
		slog.String("caregiver_id", caregiverID.String()),
		slog.String("event_id", created.ID.String()),
		slog.String("type", created.Type.String()),
	)

	return created, nil
}

// autoCloseSleep closes an open session left behind by a missed wake-up,
// using the foreign event's time as the wake time. Unlike the explicit
// wake-up path, failures here never surface: a stale session must not block
// unrelated event logging. Outlier durations are closed anyway with a
// warning; hard-invalid durations and overlaps leave the session open.
func (s *Service) autoCloseSleep(ctx context.Context, caregiverID uuid.UUID, open *domain.Event, end time.Time) {
	start := open.SleepStart.UTC()
	if !end.After(start) {
		s.log.WarnContext(ctx, "auto-close skipped: event precedes session start",
			slog.String("event_id", open.ID.String()),
			slog.Time("start", start),
			slog.Time("end", end),
		)
		return
	}

	minutes := domain.SleepMinutes(start, end)

	check := s.limits.Verify(minutes)
	if check.Outcome == domain.SleepInvalid {
		s.log.WarnContext(ctx, "auto-close skipped: duration out of range, session left open",
			slog.String("event_id", open.ID.String()),
			slog.Int("minutes", minutes),
		)
		return
	}
	if check.Outcome == domain.SleepNeedsConfirmation {
		s.log.WarnContext(ctx, "auto-closing session with outlier duration",
			slog.String("event_id", open.ID.String()),
			slog.String("reason", check.Reason.String()),
			slog.Int("minutes", minutes),
		)
	}

	others, err := s.events.ListClosedSleepIntersecting(ctx, caregiverID, start, end)
	if err != nil {
		s.log.WarnContext(ctx, "auto-close skipped: overlap check failed",
			slog.String("event_id", open.ID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	if domain.OverlapsAny(start, end, others) {
		s.log.WarnContext(ctx, "auto-close skipped: interval overlaps an existing session",
			slog.String("event_id", open.ID.String()),
		)
		return
	}

	if _, err := s.events.CloseSleep(ctx, caregiverID, open.ID, end, minutes); err != nil {
		s.log.WarnContext(ctx, "auto-close failed",
			slog.String("event_id", open.ID.String()),
			slog.String("error", err.Error()),
		)
		return
	}

	s.log.InfoContext(ctx, "auto-closed stale sleep session",
		slog.String("caregiver_id", caregiverID.String()),
		slog.String("event_id", open.ID.String()),
		slog.Int("minutes", minutes),
	)
}
