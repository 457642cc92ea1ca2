package domain

import (
	"math"
	"time"
)

// SleepOutcome classifies a candidate sleep duration.
type SleepOutcome string

const (
	SleepOK                SleepOutcome = "OK"
	SleepNeedsConfirmation SleepOutcome = "NEEDS_CONFIRMATION"
	SleepInvalid           SleepOutcome = "INVALID"
)

// SleepCheck is the result of verifying a sleep duration. Reason is set only
// when Outcome is SleepNeedsConfirmation.
type SleepCheck struct {
	Outcome SleepOutcome
	Reason  ConfirmReason
}

// SleepConfirmation is returned to the caller when a session close needs an
// explicit acknowledgment before it is applied. It is an outcome, not an
// error: no mutation has happened when it is produced.
type SleepConfirmation struct {
	Reason  ConfirmReason
	Minutes int
}

// SleepLimits holds the duration thresholds for sleep verification.
// Durations outside [1, HardMaxMinutes] are invalid and can never be
// confirmed; durations outside [MinMinutes, MaxMinutes] need confirmation.
type SleepLimits struct {
	MinMinutes     int
	MaxMinutes     int
	HardMaxMinutes int
}

// DefaultSleepLimits: under 10 minutes or over 5 hours looks like a typo and
// asks for confirmation; over 12 hours is rejected outright.
var DefaultSleepLimits = SleepLimits{
	MinMinutes:     10,
	MaxMinutes:     300,
	HardMaxMinutes: 720,
}

// Verify classifies a candidate duration in whole minutes. Pure.
func (l SleepLimits) Verify(minutes int) SleepCheck {
	switch {
	case minutes <= 0 || minutes > l.HardMaxMinutes:
		return SleepCheck{Outcome: SleepInvalid}
	case minutes < l.MinMinutes:
		return SleepCheck{Outcome: SleepNeedsConfirmation, Reason: ConfirmReasonTooShort}
	case minutes > l.MaxMinutes:
		return SleepCheck{Outcome: SleepNeedsConfirmation, Reason: ConfirmReasonTooLong}
	default:
		return SleepCheck{Outcome: SleepOK}
	}
}

// SleepMinutes converts a session's time span to whole minutes, rounding to
// the nearest minute with a floor of 1. Callers must ensure end is after
// start; the floor keeps sub-minute naps from recording a zero amount.
func SleepMinutes(start, end time.Time) int {
	m := int(math.Round(end.Sub(start).Minutes()))
	if m < 1 {
		m = 1
	}
	return m
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2) share
// any instant. Intervals that merely touch do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// OverlapsAny tests a candidate [start,end) interval against existing sleep
// events. Only fully closed sessions are compared; open sessions are guarded
// separately by the single-open-session rule.
func OverlapsAny(start, end time.Time, events []*Event) bool {
	for _, e := range events {
		if !e.IsClosedSleep() {
			continue
		}
		if Overlaps(start, end, *e.SleepStart, *e.SleepEnd) {
			return true
		}
	}
	return false
}
