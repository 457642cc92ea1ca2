package stats

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

type eventReader interface {
	CountByTypeBetween(ctx context.Context, caregiverID uuid.UUID, from, to time.Time) (map[domain.EventType]int, error)
	SumSleepMinutesBetween(ctx context.Context, caregiverID uuid.UUID, from, to time.Time) (int, error)
	LastByType(ctx context.Context, caregiverID uuid.UUID, typ domain.EventType) (*domain.Event, error)
}

// DailySummary aggregates one calendar day of a caregiver's journal.
type DailySummary struct {
	Date         time.Time
	Counts       map[domain.EventType]int
	SleepMinutes int
	LastFeedAt   *time.Time
}

type Service struct {
	events eventReader
	log    *slog.Logger
}

func NewService(logger *slog.Logger, events eventReader) *Service {
	return &Service{
		events: events,
		log:    logger.With("service", "stats"),
	}
}

// Daily computes the summary for the UTC day containing date.
func (s *Service) Daily(ctx context.Context, date time.Time) (*DailySummary, error) {
	caregiverID, ok := ctxutil.CaregiverIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	from := date.UTC().Truncate(24 * time.Hour)
	to := from.Add(24 * time.Hour)

	counts, err := s.events.CountByTypeBetween(ctx, caregiverID, from, to)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}

	minutes, err := s.events.SumSleepMinutesBetween(ctx, caregiverID, from, to)
	if err != nil {
		return nil, fmt.Errorf("sum sleep minutes: %w", err)
	}

	summary := &DailySummary{
		Date:         from,
		Counts:       counts,
		SleepMinutes: minutes,
	}

	lastFeed, err := s.events.LastByType(ctx, caregiverID, domain.EventTypeMilk)
	switch {
	case err == nil:
		summary.LastFeedAt = &lastFeed.OccurredAt
	case errors.Is(err, domain.ErrNotFound):
		// No feeds yet.
	default:
		return nil, fmt.Errorf("last feed: %w", err)
	}

	s.log.InfoContext(ctx, "daily summary computed",
		slog.String("caregiver_id", caregiverID.String()),
		slog.Time("date", from),
	)

	return summary, nil
}
