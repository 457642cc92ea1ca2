// Package memory implements the event store contract in process memory.
// It backs service tests: a single mutex held for the whole transaction
// stands in for the row-level locking the PostgreSQL store provides, so
// transactions for all caregivers are fully serialized.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/babylog/babylog-backend/internal/domain"
)

type txCtxKey struct{}

// Store is an in-memory event store. It satisfies the same consumer
// interfaces as the PostgreSQL event repository and transaction manager.
type Store struct {
	mu     sync.Mutex
	events map[uuid.UUID]*domain.Event
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{events: make(map[uuid.UUID]*domain.Event)}
}

// RunInTx executes fn while holding the store lock. On error the store is
// restored to its pre-transaction state, mirroring a database rollback.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[uuid.UUID]*domain.Event, len(s.events))
	for id, e := range s.events {
		snapshot[id] = copyEvent(e)
	}

	if err := fn(context.WithValue(ctx, txCtxKey{}, true)); err != nil {
		s.events = snapshot
		return err
	}

	return nil
}

// lock acquires the store mutex unless the context already runs inside a
// transaction holding it.
func (s *Store) lock(ctx context.Context) func() {
	if ctx.Value(txCtxKey{}) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// GetOpenSleepForUpdate returns the caregiver's open sleep session, or
// domain.ErrNotFound if none is open. Inside RunInTx the store lock already
// serializes concurrent callers, which is the locking-read guarantee.
func (s *Store) GetOpenSleepForUpdate(ctx context.Context, caregiverID uuid.UUID) (*domain.Event, error) {
	defer s.lock(ctx)()

	for _, e := range s.events {
		if e.CaregiverID == caregiverID && e.IsOpenSleep() {
			return copyEvent(e), nil
		}
	}
	return nil, fmt.Errorf("open sleep session %s: %w", caregiverID, domain.ErrNotFound)
}

// Create stores a new event. Like the durable store's partial unique index,
// it refuses a second open sleep session for the same caregiver with
// domain.ErrAlreadyExists.
func (s *Store) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	defer s.lock(ctx)()

	stored := copyEvent(event)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}

	if stored.IsOpenSleep() {
		for _, e := range s.events {
			if e.CaregiverID == stored.CaregiverID && e.IsOpenSleep() {
				return nil, fmt.Errorf("event %s: %w", stored.ID, domain.ErrAlreadyExists)
			}
		}
	}

	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.events[stored.ID] = stored

	return copyEvent(stored), nil
}

// CloseSleep sets sleep_end and amount on an open session in place.
// Returns domain.ErrNotFound if the row is missing or already closed.
func (s *Store) CloseSleep(ctx context.Context, caregiverID, eventID uuid.UUID, end time.Time, minutes int) (*domain.Event, error) {
	defer s.lock(ctx)()

	e, ok := s.events[eventID]
	if !ok || e.CaregiverID != caregiverID || !e.IsOpenSleep() {
		return nil, fmt.Errorf("sleep session %s: %w", eventID, domain.ErrNotFound)
	}

	endUTC := end.UTC()
	e.SleepEnd = &endUTC
	e.Amount = &minutes
	e.UpdatedAt = time.Now().UTC()

	return copyEvent(e), nil
}

// ListClosedSleepIntersecting returns closed sleep sessions whose interval
// intersects [from, to).
func (s *Store) ListClosedSleepIntersecting(ctx context.Context, caregiverID uuid.UUID, from, to time.Time) ([]*domain.Event, error) {
	defer s.lock(ctx)()

	result := []*domain.Event{}
	for _, e := range s.events {
		if e.CaregiverID != caregiverID || !e.IsClosedSleep() {
			continue
		}
		if e.SleepStart.Before(to) && e.SleepEnd.After(from) {
			result = append(result, copyEvent(e))
		}
	}
	return result, nil
}

// GetByID returns an event by ID scoped to the caregiver.
func (s *Store) GetByID(ctx context.Context, caregiverID, eventID uuid.UUID) (*domain.Event, error) {
	defer s.lock(ctx)()

	e, ok := s.events[eventID]
	if !ok || e.CaregiverID != caregiverID {
		return nil, fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
	}
	return copyEvent(e), nil
}

// Delete removes an event.
func (s *Store) Delete(ctx context.Context, caregiverID, eventID uuid.UUID) error {
	defer s.lock(ctx)()

	e, ok := s.events[eventID]
	if !ok || e.CaregiverID != caregiverID {
		return fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
	}
	delete(s.events, eventID)
	return nil
}

func copyEvent(e *domain.Event) *domain.Event {
	c := *e
	if e.Amount != nil {
		v := *e.Amount
		c.Amount = &v
	}
	if e.Note != nil {
		v := *e.Note
		c.Note = &v
	}
	if e.SleepStart != nil {
		v := *e.SleepStart
		c.SleepStart = &v
	}
	if e.SleepEnd != nil {
		v := *e.SleepEnd
		c.SleepEnd = &v
	}
	return &c
}
