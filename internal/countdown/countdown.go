// Package countdown provides the monotonic deadline timer that bounds every
// polling loop in the harness. No wait may block indefinitely regardless of
// how the runtime under test misbehaves.
package countdown

import "time"

// Timer answers "has my deadline elapsed?" for a fixed duration starting at
// construction. time.Now carries a monotonic clock reading, so wall-clock
// adjustments cannot stretch or shrink the countdown.
type Timer struct {
	start    time.Time
	duration time.Duration
}

// New starts a countdown of the given duration.
func New(duration time.Duration) *Timer {
	return &Timer{start: time.Now(), duration: duration}
}

// IsTimeUp reports whether the countdown has elapsed.
func (t *Timer) IsTimeUp() bool {
	return time.Since(t.start) >= t.duration
}

// Elapsed returns the time since the countdown started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Remaining returns the time left before the deadline, or zero once elapsed.
func (t *Timer) Remaining() time.Duration {
	left := t.duration - time.Since(t.start)
	if left < 0 {
		return 0
	}
	return left
}
