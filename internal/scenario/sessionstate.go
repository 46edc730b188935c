package scenario

import (
	"github.com/xrcheck/xrcheck/internal/harness"
	"github.com/xrcheck/xrcheck/internal/xr"
)

func init() {
	harness.Register("SessionState", sessionState)
	harness.Register("RequestExitNotRunning", requestExitNotRunning)
}

// mandatedSequence is the exact order of states a session must pass through
// when exit is requested once it reaches focused.
var mandatedSequence = []xr.SessionState{
	xr.StateIdle,
	xr.StateReady,
	xr.StateSynchronized,
	xr.StateVisible,
	xr.StateFocused,
	xr.StateVisible,
	xr.StateSynchronized,
	xr.StateStopping,
	xr.StateIdle,
	xr.StateExiting,
}

// sessionState cycles a session through every mandated lifecycle state and
// asserts both that each observed transition is the expected one and that no
// transition occurs where none is permitted.
func sessionState(s *harness.S) {
	d := createSession(s)
	defer d.destroy()

	d.requireNextState(xr.StateIdle)
	d.requireNextState(xr.StateReady)

	d.beginSession()

	// The runtime must not leave READY until at least one frame has been
	// submitted, when a rendering backend is in use. A quiet queue for the
	// whole window is the conforming outcome here.
	if s.Graphics() {
		d.requireNoStateChange("premature progression from READY to SYNCHRONIZED before any frame was submitted")
	}

	d.pumpUntilState(xr.StateSynchronized)
	d.pumpUntilState(xr.StateVisible)
	d.pumpUntilState(xr.StateFocused)

	// Ending is only legal in STOPPING.
	s.RequireResult("end-session in FOCUSED", d.rt.EndSession(d.sess), xr.ErrSessionNotStopping)

	s.RequireSuccess("request-exit-session", d.rt.RequestExitSession(d.sess))

	d.pumpUntilState(xr.StateVisible)
	d.pumpUntilState(xr.StateSynchronized)
	d.pumpUntilState(xr.StateStopping)

	// The runtime must hold STOPPING until the session is explicitly ended.
	d.requireNoStateChange("premature progression from STOPPING to IDLE before end-session")

	s.RequireSuccess("end-session in STOPPING", d.rt.EndSession(d.sess))

	d.waitState(xr.StateIdle)

	// Once the runtime considers the session's use concluded it moves from
	// IDLE to EXITING spontaneously.
	d.waitState(xr.StateExiting)

	s.Capturef("observed sequence: %v", d.observed)
	s.Require(len(d.observed) == len(mandatedSequence),
		"observed %d state changes, want %d", len(d.observed), len(mandatedSequence))
	for i, want := range mandatedSequence {
		s.Require(d.observed[i] == want,
			"state sequence diverged at index %d: observed %v, want %v", i, d.observed[i], want)
	}
}

// requestExitNotRunning verifies that request-exit-session is rejected with
// the not-running error both before the session has ever begun and after it
// has ended.
func requestExitNotRunning(s *harness.S) {
	// Before starting.
	func() {
		d := createSession(s)
		defer d.destroy()

		s.RequireResult("request-exit-session before begin",
			d.rt.RequestExitSession(d.sess), xr.ErrSessionNotRunning)
	}()

	// After ending. A session is running strictly between a successful
	// begin-session and a subsequent end-session.
	d := createSession(s)
	defer d.destroy()

	d.runToFocused()
	s.RequireSuccess("request-exit-session", d.rt.RequestExitSession(d.sess))
	d.pumpUntilState(xr.StateVisible)
	d.pumpUntilState(xr.StateSynchronized)
	d.pumpUntilState(xr.StateStopping)
	s.RequireSuccess("end-session", d.rt.EndSession(d.sess))

	s.RequireResult("request-exit-session after end",
		d.rt.RequestExitSession(d.sess), xr.ErrSessionNotRunning)
}
