package domain

import "time"

// EventFilter narrows event listings. Zero-value fields are ignored.
// The time window is half-open: [From, To).
type EventFilter struct {
	Types  []EventType
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}
