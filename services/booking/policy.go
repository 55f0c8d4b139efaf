package booking

import (
	"time"
)

// CancellationPolicy decides whether a client-initiated cancellation or
// reschedule arrives early enough before the appointment starts.
// Administrative actions bypass the gate entirely.
type CancellationPolicy struct {
	CutoffHours int
}

// Allows reports whether the action is permitted given the appointment's
// absolute start instant. The boundary is inclusive: exactly CutoffHours
// before the start is still allowed.
func (p CancellationPolicy) Allows(startsAt, now time.Time) bool {
	return startsAt.Sub(now) >= time.Duration(p.CutoffHours)*time.Hour
}
