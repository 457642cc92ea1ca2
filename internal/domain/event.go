package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is a single logged care event. Sleep events carry SleepStart and
// SleepEnd; an event with SleepStart set and SleepEnd nil is an open sleep
// session. OccurredAt is the record's canonical ordering time: the fall-asleep
// time for sleep sessions, the wake time for manually entered one-shot sleeps.
type Event struct {
	ID          uuid.UUID
	CaregiverID uuid.UUID
	Type        EventType
	OccurredAt  time.Time
	Amount      *int // minutes for sleep, ml for milk
	Note        *string
	SleepStart  *time.Time
	SleepEnd    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOpenSleep reports whether the event is a sleep session that has been
// started but not yet closed.
func (e *Event) IsOpenSleep() bool {
	return e.Type == EventTypeSleep && e.SleepStart != nil && e.SleepEnd == nil
}

// IsClosedSleep reports whether the event is a sleep session with both
// endpoints recorded.
func (e *Event) IsClosedSleep() bool {
	return e.Type == EventTypeSleep && e.SleepStart != nil && e.SleepEnd != nil
}
