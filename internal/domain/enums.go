package domain

// EventType represents the kind of care event being logged.
type EventType string

const (
	EventTypeMilk   EventType = "MILK"
	EventTypeDiaper EventType = "DIAPER"
	EventTypeBath   EventType = "BATH"
	EventTypeSleep  EventType = "SLEEP"
)

func (t EventType) String() string { return string(t) }

func (t EventType) IsValid() bool {
	switch t {
	case EventTypeMilk, EventTypeDiaper, EventTypeBath, EventTypeSleep:
		return true
	}
	return false
}

// ConfirmReason explains why a sleep duration needs caller confirmation.
type ConfirmReason string

const (
	ConfirmReasonTooShort ConfirmReason = "TOO_SHORT"
	ConfirmReasonTooLong  ConfirmReason = "TOO_LONG"
)

func (r ConfirmReason) String() string { return string(r) }
