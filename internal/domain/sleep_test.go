package domain

import (
	"testing"
	"time"
)

func TestSleepLimits_Verify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		minutes    int
		wantOut    SleepOutcome
		wantReason ConfirmReason
	}{
		{"zero is invalid", 0, SleepInvalid, ""},
		{"negative is invalid", -5, SleepInvalid, ""},
		{"1 minute needs confirmation", 1, SleepNeedsConfirmation, ConfirmReasonTooShort},
		{"9 minutes needs confirmation", 9, SleepNeedsConfirmation, ConfirmReasonTooShort},
		{"10 minutes is ok", 10, SleepOK, ""},
		{"45 minutes is ok", 45, SleepOK, ""},
		{"300 minutes is ok", 300, SleepOK, ""},
		{"301 minutes needs confirmation", 301, SleepNeedsConfirmation, ConfirmReasonTooLong},
		{"720 minutes needs confirmation", 720, SleepNeedsConfirmation, ConfirmReasonTooLong},
		{"721 minutes is invalid", 721, SleepInvalid, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := DefaultSleepLimits.Verify(tt.minutes)
			if got.Outcome != tt.wantOut {
				t.Errorf("Verify(%d).Outcome = %s, want %s", tt.minutes, got.Outcome, tt.wantOut)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Verify(%d).Reason = %s, want %s", tt.minutes, got.Reason, tt.wantReason)
			}
		})
	}
}

func TestSleepMinutes(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"exactly 45 minutes", start.Add(45 * time.Minute), 45},
		{"rounds down under half a minute", start.Add(45*time.Minute + 29*time.Second), 45},
		{"rounds up at half a minute", start.Add(45*time.Minute + 30*time.Second), 46},
		{"sub-minute nap floors to 1", start.Add(20 * time.Second), 1},
		{"90 seconds rounds to 2", start.Add(90 * time.Second), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SleepMinutes(start, tt.end); got != tt.want {
				t.Errorf("SleepMinutes = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	t.Parallel()

	at := func(h, m int) time.Time {
		return time.Date(2026, 3, 1, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"disjoint", at(1, 0), at(2, 0), at(3, 0), at(4, 0), false},
		{"touching intervals do not overlap", at(1, 0), at(2, 0), at(2, 0), at(3, 0), false},
		{"touching intervals reversed", at(2, 0), at(3, 0), at(1, 0), at(2, 0), false},
		{"partial overlap", at(1, 0), at(2, 30), at(2, 0), at(3, 0), true},
		{"containment", at(1, 0), at(4, 0), at(2, 0), at(3, 0), true},
		{"identical", at(1, 0), at(2, 0), at(1, 0), at(2, 0), true},
		{"one minute shared", at(1, 0), at(2, 1), at(2, 0), at(3, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Overlaps(tt.s1, tt.e1, tt.s2, tt.e2); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverlapsAny_SkipsOpenSessions(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	openStart := start.Add(15 * time.Minute)
	open := &Event{Type: EventTypeSleep, SleepStart: &openStart}

	if OverlapsAny(start, end, []*Event{open}) {
		t.Error("open session must not be considered by the overlap check")
	}

	closedStart := start.Add(30 * time.Minute)
	closedEnd := start.Add(90 * time.Minute)
	closed := &Event{Type: EventTypeSleep, SleepStart: &closedStart, SleepEnd: &closedEnd}

	if !OverlapsAny(start, end, []*Event{open, closed}) {
		t.Error("closed overlapping session must be detected")
	}
}

func TestEvent_IsOpenSleep(t *testing.T) {
	t.Parallel()

	now := time.Now()

	open := &Event{Type: EventTypeSleep, SleepStart: &now}
	if !open.IsOpenSleep() {
		t.Error("sleep event with start and no end should be open")
	}
	if open.IsClosedSleep() {
		t.Error("open session is not closed")
	}

	closed := &Event{Type: EventTypeSleep, SleepStart: &now, SleepEnd: &now}
	if closed.IsOpenSleep() {
		t.Error("closed session is not open")
	}
	if !closed.IsClosedSleep() {
		t.Error("sleep event with both endpoints should be closed")
	}

	milk := &Event{Type: EventTypeMilk, OccurredAt: now}
	if milk.IsOpenSleep() || milk.IsClosedSleep() {
		t.Error("non-sleep events are never sleep sessions")
	}
}
