package sleep

import (
	"time"

	"github.com/babylog/babylog-backend/internal/domain"
)

// FallAsleepInput holds parameters for opening a sleep session.
// A zero At means "now".
type FallAsleepInput struct {
	At time.Time
}

// WakeUpInput holds parameters for closing the open sleep session.
// A zero At means "now".
type WakeUpInput struct {
	At        time.Time
	Confirmed bool
}

// RecordEventInput holds parameters for logging a non-sleep event.
// A zero At means "now".
type RecordEventInput struct {
	Type   domain.EventType
	At     time.Time
	Amount *int
	Note   *string
}

// Validate validates the event input. Sleep is excluded: sessions go through
// FallAsleep/WakeUp/RecordLegacySleep, never through the generic event path.
func (i RecordEventInput) Validate() error {
	var errs []domain.FieldError

	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "unknown event type"})
	} else if i.Type == domain.EventTypeSleep {
		errs = append(errs, domain.FieldError{Field: "type", Message: "sleep events use the sleep endpoints"})
	}
	if i.Amount != nil && *i.Amount <= 0 {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LegacySleepInput holds parameters for a manually entered, already completed
// sleep: no fall-asleep/wake-up pair exists, only a start and a duration.
type LegacySleepInput struct {
	Start     time.Time
	Minutes   int
	Confirmed bool
}

// Validate validates the legacy sleep input. Duration range checks belong to
// the verifier, which also decides confirmability.
func (i LegacySleepInput) Validate() error {
	if i.Start.IsZero() {
		return domain.NewValidationError("start", "required")
	}
	return nil
}
