package scenario

import (
	"github.com/xrcheck/xrcheck/internal/countdown"
	"github.com/xrcheck/xrcheck/internal/harness"
	"github.com/xrcheck/xrcheck/internal/xr"
)

func init() {
	harness.Register("OutOfTurnCalls", outOfTurnCalls)
}

// probeNotRunning issues every lifecycle-sensitive call that is forbidden
// while the session is not running and checks each rejection. The illegal
// wait-frame must report not-running without blocking, so its latency is
// measured against the configured bound.
func (d *driver) probeNotRunning(phase string) {
	timer := countdown.New(d.s.Timeouts().IllegalCall.Std())
	_, res := d.rt.WaitFrame(d.sess)
	elapsed := timer.Elapsed()

	d.s.RequireResult("wait-frame "+phase, res, xr.ErrSessionNotRunning)
	d.s.Require(elapsed < d.s.Timeouts().IllegalCall.Std(),
		"wait-frame %s blocked for %v before rejecting; must return immediately", phase, elapsed)

	d.s.RequireResult("end-session "+phase, d.rt.EndSession(d.sess), xr.ErrSessionNotRunning)
	d.s.RequireResult("request-exit-session "+phase,
		d.rt.RequestExitSession(d.sess), xr.ErrSessionNotRunning)
}

// probeRunning issues the calls that are forbidden in the given running
// state. Begin-session must report already-running in every running
// sub-state; end-session must report not-stopping everywhere but STOPPING.
// The legal calls at each state are exercised by the walk itself, since
// issuing them out of a probe would advance the lifecycle.
func (d *driver) probeRunning(state xr.SessionState) {
	d.s.RequireResult("begin-session in "+state.String(),
		d.rt.BeginSession(d.sess, d.s.ViewConfig()), xr.ErrSessionRunning)

	if state != xr.StateStopping {
		d.s.RequireResult("end-session in "+state.String(),
			d.rt.EndSession(d.sess), xr.ErrSessionNotStopping)
	}
}

// outOfTurnCalls walks the single legal lifecycle path and, at every state
// discovered along the way plus the not-running pre and post states, probes
// each lifecycle-sensitive operation against the legality table.
func outOfTurnCalls(s *harness.S) {
	d := createSession(s)
	defer d.destroy()

	// Not yet begun: nothing is running regardless of the runtime-side
	// IDLE/READY progression.
	d.probeNotRunning("before first begin")

	d.requireNextState(xr.StateIdle)
	d.requireNextState(xr.StateReady)
	d.probeNotRunning("in READY before begin")

	d.beginSession()

	d.pumpUntilState(xr.StateSynchronized)
	d.probeRunning(xr.StateSynchronized)

	d.pumpUntilState(xr.StateVisible)
	d.probeRunning(xr.StateVisible)

	d.pumpUntilState(xr.StateFocused)
	d.probeRunning(xr.StateFocused)

	s.RequireSuccess("request-exit-session", d.rt.RequestExitSession(d.sess))

	// The mirrored path revisits VISIBLE and SYNCHRONIZED; the same
	// rejections must hold with exit pending.
	d.pumpUntilState(xr.StateVisible)
	d.probeRunning(xr.StateVisible)

	d.pumpUntilState(xr.StateSynchronized)
	d.probeRunning(xr.StateSynchronized)

	d.pumpUntilState(xr.StateStopping)
	d.probeRunning(xr.StateStopping)

	s.RequireSuccess("end-session in STOPPING", d.rt.EndSession(d.sess))

	d.waitState(xr.StateIdle)
	d.probeNotRunning("after end")

	d.waitState(xr.StateExiting)
	d.probeNotRunning("in EXITING")
}
