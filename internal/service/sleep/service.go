// Package sleep implements the sleep-session lifecycle: opening a session on
// fall-asleep, closing it on wake-up, auto-closing a stale session when an
// unrelated event arrives, and logging manually entered sleeps. Every
// check-then-act sequence runs inside a transaction that locks the
// caregiver's open-session row first, so transitions for one caregiver are
// serialized while different caregivers stay independent.
package sleep

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/babylog/babylog-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type eventRepo interface {
	GetOpenSleepForUpdate(ctx context.Context, caregiverID uuid.UUID) (*domain.Event, error)
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	CloseSleep(ctx context.Context, caregiverID, eventID uuid.UUID, end time.Time, minutes int) (*domain.Event, error)
	ListClosedSleepIntersecting(ctx context.Context, caregiverID uuid.UUID, from, to time.Time) ([]*domain.Event, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the sleep session business logic.
type Service struct {
	events eventRepo
	tx     txManager
	clock  clock
	log    *slog.Logger
	limits domain.SleepLimits
}

// NewService creates a new sleep service.
func NewService(logger *slog.Logger, events eventRepo, tx txManager, limits domain.SleepLimits) *Service {
	return &Service{
		events: events,
		tx:     tx,
		clock:  realClock{},
		log:    logger.With("service", "sleep"),
		limits: limits,
	}
}

// Result is the outcome of an operation that closes or creates a sleep
// session. Exactly one field is set: Confirmation means nothing was written
// and the caller must repeat the call with Confirmed=true to proceed.
type Result struct {
	Event        *domain.Event
	Confirmation *domain.SleepConfirmation
}
