// Package poll implements the single bounded sleep-and-check primitive used
// by every wait in the harness.
//
// Both polarities of waiting share this one loop: forward-progress waits
// treat a timeout as a failure, while absence assertions treat the same
// timeout as the successful outcome. The polarity belongs to the call site's
// assertion, never to the loop itself.
package poll

import (
	"time"

	"github.com/xrcheck/xrcheck/internal/countdown"
)

// DefaultTimeout bounds a wait when Options.Timeout is zero. One second is
// long enough for a queued event to surface and short enough to use as the
// window for asserting that no event arrives.
const DefaultTimeout = time.Second

// DefaultInterval is the sleep between checks when Options.Interval is zero.
const DefaultInterval = 5 * time.Millisecond

// Options bounds a polling loop.
type Options struct {
	// Timeout is the total budget for the wait.
	Timeout time.Duration

	// Interval is the sleep between condition checks.
	Interval time.Duration
}

// Until repeatedly evaluates cond, sleeping between checks, until cond
// returns true or the timeout elapses. It reports whether cond was
// satisfied. The condition is always evaluated at least once, even with a
// zero timeout.
func Until(cond func() bool, opts *Options) bool {
	timeout := DefaultTimeout
	interval := DefaultInterval
	if opts != nil {
		if opts.Timeout > 0 {
			timeout = opts.Timeout
		}
		if opts.Interval > 0 {
			interval = opts.Interval
		}
	}

	timer := countdown.New(timeout)
	for {
		if cond() {
			return true
		}
		if timer.IsTimeUp() {
			return false
		}
		time.Sleep(interval)
	}
}
