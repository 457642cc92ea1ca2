package sleep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/babylog/babylog-backend/internal/domain"
	"github.com/babylog/babylog-backend/pkg/ctxutil"
)

// WakeUp closes the caregiver's open sleep session at input.At.
//
// The computed duration runs through the verifier: hard-invalid durations
// fail with domain.ErrInvalidDuration whether confirmed or not; outlier
// durations return a Confirmation without mutating anything until the caller
// repeats the call with Confirmed=true. The closed interval must not overlap
// any existing closed session, or the call fails with domain.ErrSleepOverlap.
// Rejections are deterministic: the same call against the same state yields
// the same outcome.
func (s *Service) WakeUp(ctx context.Context, input WakeUpInput) (*Result, error) {
	caregiverID, ok := ctxutil.CaregiverIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	end := input.At.UTC()
	if input.At.IsZero() {
		end = s.clock.Now().UTC()
	}

	var result *Result

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		open, err := s.events.GetOpenSleepForUpdate(txCtx, caregiverID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNoOpenSession
			}
			return fmt.Errorf("lock open session: %w", err)
		}

		start := open.SleepStart.UTC()
		if !end.After(start) {
			return domain.ErrInvalidDuration
		}

		minutes := domain.SleepMinutes(start, end)

		switch check := s.limits.Verify(minutes); check.Outcome {
		case domain.SleepInvalid:
			return domain.ErrInvalidDuration
		case domain.SleepNeedsConfirmation:
			if !input.Confirmed {
				// Nothing has been written; the transaction commits read-only.
				result = &Result{Confirmation: &domain.SleepConfirmation{
					Reason:  check.Reason,
					Minutes: minutes,
				}}
				return nil
			}
		}

		others, err := s.events.ListClosedSleepIntersecting(txCtx, caregiverID, start, end)
		if err != nil {
			return fmt.Errorf("list sessions for overlap check: %w", err)
		}
		if domain.OverlapsAny(start, end, others) {
			return domain.ErrSleepOverlap
		}

		closed, err := s.events.CloseSleep(txCtx, caregiverID, open.ID, end, minutes)
		if err != nil {
			return fmt.Errorf("close sleep session: %w", err)
		}

		result = &Result{Event: closed}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Confirmation != nil {
		s.log.InfoContext(ctx, "wake-up needs confirmation",
			slog.String("caregiver_id", caregiverID.String()),
			slog.String("reason", result.Confirmation.Reason.String()),
			slog.Int("minutes", result.Confirmation.Minutes),
		)
		return result, nil
	}

	s.log.InfoContext(ctx, "sleep session closed",
		slog.String("caregiver_id", caregiverID.String()),
		slog.String("event_id", result.Event.ID.String()),
		slog.Int("minutes", *result.Event.Amount),
	)

	return result, nil
}
