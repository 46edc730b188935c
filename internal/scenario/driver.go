// Package scenario contains the conformance scenarios the harness runs
// against a runtime: the session lifecycle cycle, out-of-turn call probing,
// view locating, and swapchain format enumeration.
//
// The driver in this file owns the one session a scenario uses end to end.
// Its last polled state-change event is the single source of truth: the
// driver never assumes a transition happened without observing the
// corresponding event.
package scenario

import (
	"time"

	"github.com/xrcheck/xrcheck/internal/countdown"
	"github.com/xrcheck/xrcheck/internal/harness"
	"github.com/xrcheck/xrcheck/internal/poll"
	"github.com/xrcheck/xrcheck/internal/xr"
)

// driver drives one session through its lifecycle, recording every observed
// state-change event in order.
type driver struct {
	s    *harness.S
	rt   xr.Runtime
	sess xr.Session

	// observed is the sequence of states seen via polling, oldest first.
	observed []xr.SessionState

	// frame is the most recent frame state produced by the pump.
	frame xr.FrameState
}

// createSession creates the scenario's session. Callers must arrange
// teardown with `defer d.destroy()` so every exit path, including assertion
// failures, releases the session.
func createSession(s *harness.S) *driver {
	rt := s.Runtime()
	sess, res := rt.CreateSession(xr.SessionConfig{
		ViewConfig: s.ViewConfig(),
		Graphics:   s.Graphics(),
	})
	s.MustInfra("create-session", res)
	s.Require(sess != xr.NullSession, "create-session returned the null handle")
	s.Logf("session %#x created", uint64(sess))
	return &driver{s: s, rt: rt, sess: sess}
}

func (d *driver) destroy() {
	if d.sess == xr.NullSession {
		return
	}
	d.rt.DestroySession(d.sess)
	d.sess = xr.NullSession
}

// tryNextStateEvent drains all currently queued events and returns the first
// session state change, discarding unrelated event kinds along the way. It
// never blocks; an empty queue is an ordinary outcome, not an error.
func (d *driver) tryNextStateEvent() (xr.SessionStateChanged, bool) {
	for {
		evt, res := d.rt.PollEvent()
		switch res {
		case xr.Success:
			if sc, ok := evt.(xr.SessionStateChanged); ok {
				d.observed = append(d.observed, sc.State)
				return sc, true
			}
		case xr.EventUnavailable:
			return xr.SessionStateChanged{}, false
		default:
			d.s.Errorf("poll-event returned %v", res)
		}
	}
}

// waitNextStateEvent polls for a state-change event until one surfaces or
// the timeout elapses. The caller decides what a timeout means: a missed
// forward transition is a failure, while a quiet queue during an absence
// window is the desired outcome.
func (d *driver) waitNextStateEvent(timeout time.Duration) (xr.SessionStateChanged, bool) {
	var evt xr.SessionStateChanged
	found := poll.Until(func() bool {
		e, ok := d.tryNextStateEvent()
		if ok {
			evt = e
		}
		return ok
	}, &poll.Options{Timeout: timeout, Interval: d.s.Timeouts().Interval.Std()})
	return evt, found
}

// requireNextState waits for the next state-change event and asserts it
// reports want. Timeout polarity: no event within the budget is a failure.
func (d *driver) requireNextState(want xr.SessionState) {
	evt, ok := d.waitNextStateEvent(d.s.Timeouts().Event.Std())
	if !ok {
		d.s.Failf("no state-change event within %v, want %v", d.s.Timeouts().Event.Std(), want)
	}
	d.s.Require(evt.State == want, "unexpected session state %v, want %v", evt.State, want)
	d.s.Logf("observed %v", evt.State)
}

// requireNoStateChange asserts that no state-change event arrives within the
// configured window. Timeout polarity is inverted here: running out the
// clock with a quiet queue is the pass, and an event arriving is the
// conformance failure described by why.
func (d *driver) requireNoStateChange(why string) {
	if evt, ok := d.waitNextStateEvent(d.s.Timeouts().NoEvent.Std()); ok {
		d.s.Capturef("premature event: state=%v time=%d", evt.State, evt.Time)
		d.s.Failf("%s", why)
	}
	d.s.Logf("no state change within %v, as required", d.s.Timeouts().NoEvent.Std())
}

// submitFrame performs the wait/begin/end frame triad once. This path is
// assumed-healthy scaffolding: any non-success aborts the scenario as a
// harness error, not a conformance failure.
func (d *driver) submitFrame() {
	frame, res := d.rt.WaitFrame(d.sess)
	d.s.MustInfra("wait-frame", res)
	d.s.MustInfra("begin-frame", d.rt.BeginFrame(d.sess))
	d.s.MustInfra("end-frame", d.rt.EndFrame(d.sess, frame.PredictedDisplayTime))
	d.frame = frame
}

// pumpUntilState keeps the session alive with frame submission until the
// runtime reports a state change, which must be the expected state. Several
// transitions are mandated to require submitted frames, so observation and
// submission are coupled in one loop.
func (d *driver) pumpUntilState(want xr.SessionState) {
	budget := d.s.Timeouts().Transition.Std()
	timer := countdown.New(budget)
	for !timer.IsTimeUp() {
		if evt, ok := d.tryNextStateEvent(); ok {
			d.s.Require(evt.State == want, "unexpected session state %v, want %v", evt.State, want)
			d.s.Logf("reached %v after %v", want, timer.Elapsed())
			return
		}
		d.submitFrame()
	}
	d.s.Failf("failed to reach session state %v within %v", want, budget)
}

// waitState waits for the next state-change event under the long transition
// budget, without pumping frames. Used after end-session, when wait-frame
// would be rejected as not running.
func (d *driver) waitState(want xr.SessionState) {
	evt, ok := d.waitNextStateEvent(d.s.Timeouts().Transition.Std())
	if !ok {
		d.s.Failf("no state-change event within %v, want %v", d.s.Timeouts().Transition.Std(), want)
	}
	d.s.Require(evt.State == want, "unexpected session state %v, want %v", evt.State, want)
	d.s.Logf("observed %v", evt.State)
}

// beginSession begins the session with the run's view configuration.
func (d *driver) beginSession() {
	d.s.RequireSuccess("begin-session", d.rt.BeginSession(d.sess, d.s.ViewConfig()))
}

// runToFocused takes a fresh session from creation to the focused state
// along the single legal forward path.
func (d *driver) runToFocused() {
	d.requireNextState(xr.StateIdle)
	d.requireNextState(xr.StateReady)
	d.beginSession()
	d.pumpUntilState(xr.StateSynchronized)
	d.pumpUntilState(xr.StateVisible)
	d.pumpUntilState(xr.StateFocused)
}
