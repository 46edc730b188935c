package fake

import (
	"testing"
	"time"

	"github.com/xrcheck/xrcheck/internal/xr"
)

// newSession creates a runtime and session with graphics enabled.
func newSession(t *testing.T, quirks Quirks) (*Runtime, xr.Session) {
	t.Helper()
	r := New(quirks)
	sess, res := r.CreateSession(xr.SessionConfig{ViewConfig: xr.ViewConfigStereo, Graphics: true})
	if res != xr.Success {
		t.Fatalf("CreateSession returned %v", res)
	}
	if sess == xr.NullSession {
		t.Fatal("CreateSession returned the null handle")
	}
	return r, sess
}

// nextState drains the event queue and returns the first state change,
// skipping unrelated event kinds.
func nextState(t *testing.T, r *Runtime) (xr.SessionState, bool) {
	t.Helper()
	for {
		evt, res := r.PollEvent()
		switch res {
		case xr.Success:
			if sc, ok := evt.(xr.SessionStateChanged); ok {
				return sc.State, true
			}
		case xr.EventUnavailable:
			return xr.StateUnknown, false
		default:
			t.Fatalf("PollEvent returned %v", res)
		}
	}
}

// requireState asserts the next queued state change reports want.
func requireState(t *testing.T, r *Runtime, want xr.SessionState) {
	t.Helper()
	state, ok := nextState(t, r)
	if !ok {
		t.Fatalf("no state-change event queued, want %v", want)
	}
	if state != want {
		t.Fatalf("observed state %v, want %v", state, want)
	}
}

// submitFrame performs one wait/begin/end triad.
func submitFrame(t *testing.T, r *Runtime, sess xr.Session) {
	t.Helper()
	frame, res := r.WaitFrame(sess)
	if res != xr.Success {
		t.Fatalf("WaitFrame returned %v", res)
	}
	if frame.PredictedDisplayTime <= 0 {
		t.Fatalf("PredictedDisplayTime = %d, want positive", frame.PredictedDisplayTime)
	}
	if res := r.BeginFrame(sess); res != xr.Success {
		t.Fatalf("BeginFrame returned %v", res)
	}
	if res := r.EndFrame(sess, frame.PredictedDisplayTime); res != xr.Success {
		t.Fatalf("EndFrame returned %v", res)
	}
}

// runToStopping drives a fresh session to STOPPING.
func runToStopping(t *testing.T, r *Runtime, sess xr.Session) {
	t.Helper()
	requireState(t, r, xr.StateIdle)
	requireState(t, r, xr.StateReady)
	if res := r.BeginSession(sess, xr.ViewConfigStereo); res != xr.Success {
		t.Fatalf("BeginSession returned %v", res)
	}
	for _, want := range []xr.SessionState{xr.StateSynchronized, xr.StateVisible, xr.StateFocused} {
		submitFrame(t, r, sess)
		requireState(t, r, want)
	}
	if res := r.RequestExitSession(sess); res != xr.Success {
		t.Fatalf("RequestExitSession returned %v", res)
	}
	for _, want := range []xr.SessionState{xr.StateVisible, xr.StateSynchronized, xr.StateStopping} {
		submitFrame(t, r, sess)
		requireState(t, r, want)
	}
}

func TestConformantLifecycle(t *testing.T) {
	r, sess := newSession(t, Quirks{})

	// Not running yet: the lifecycle-sensitive calls must be rejected.
	if _, res := r.WaitFrame(sess); res != xr.ErrSessionNotRunning {
		t.Errorf("WaitFrame before begin returned %v, want %v", res, xr.ErrSessionNotRunning)
	}
	if res := r.EndSession(sess); res != xr.ErrSessionNotRunning {
		t.Errorf("EndSession before begin returned %v, want %v", res, xr.ErrSessionNotRunning)
	}
	if res := r.RequestExitSession(sess); res != xr.ErrSessionNotRunning {
		t.Errorf("RequestExitSession before begin returned %v, want %v", res, xr.ErrSessionNotRunning)
	}

	requireState(t, r, xr.StateIdle)
	requireState(t, r, xr.StateReady)

	if res := r.BeginSession(sess, xr.ViewConfigStereo); res != xr.Success {
		t.Fatalf("BeginSession returned %v", res)
	}
	if res := r.BeginSession(sess, xr.ViewConfigStereo); res != xr.ErrSessionRunning {
		t.Errorf("second BeginSession returned %v, want %v", res, xr.ErrSessionRunning)
	}

	// With graphics, READY must hold until a frame is submitted.
	if state, ok := nextState(t, r); ok {
		t.Fatalf("state change to %v before any frame was submitted", state)
	}

	submitFrame(t, r, sess)
	requireState(t, r, xr.StateSynchronized)
	if res := r.EndSession(sess); res != xr.ErrSessionNotStopping {
		t.Errorf("EndSession in SYNCHRONIZED returned %v, want %v", res, xr.ErrSessionNotStopping)
	}

	submitFrame(t, r, sess)
	requireState(t, r, xr.StateVisible)
	submitFrame(t, r, sess)
	requireState(t, r, xr.StateFocused)

	if res := r.RequestExitSession(sess); res != xr.Success {
		t.Fatalf("RequestExitSession returned %v", res)
	}
	for _, want := range []xr.SessionState{xr.StateVisible, xr.StateSynchronized, xr.StateStopping} {
		submitFrame(t, r, sess)
		requireState(t, r, want)
	}

	// STOPPING holds until EndSession, regardless of further frames.
	submitFrame(t, r, sess)
	if state, ok := nextState(t, r); ok {
		t.Fatalf("state change to %v in STOPPING before EndSession", state)
	}

	if res := r.EndSession(sess); res != xr.Success {
		t.Fatalf("EndSession in STOPPING returned %v", res)
	}
	requireState(t, r, xr.StateIdle)
	requireState(t, r, xr.StateExiting)

	if _, res := r.WaitFrame(sess); res != xr.ErrSessionNotRunning {
		t.Errorf("WaitFrame after end returned %v, want %v", res, xr.ErrSessionNotRunning)
	}
	if res := r.RequestExitSession(sess); res != xr.ErrSessionNotRunning {
		t.Errorf("RequestExitSession after end returned %v, want %v", res, xr.ErrSessionNotRunning)
	}

	if res := r.DestroySession(sess); res != xr.Success {
		t.Errorf("DestroySession returned %v", res)
	}
	if res := r.DestroySession(sess); res != xr.ErrHandleInvalid {
		t.Errorf("DestroySession of destroyed handle returned %v, want %v", res, xr.ErrHandleInvalid)
	}
}

func TestFrameTriadOrdering(t *testing.T) {
	r, sess := newSession(t, Quirks{})
	requireState(t, r, xr.StateIdle)
	requireState(t, r, xr.StateReady)
	if res := r.BeginSession(sess, xr.ViewConfigStereo); res != xr.Success {
		t.Fatalf("BeginSession returned %v", res)
	}

	// BeginFrame without a preceding WaitFrame is a usage error.
	if res := r.BeginFrame(sess); res != xr.ErrValidationFailure {
		t.Errorf("BeginFrame without WaitFrame returned %v, want %v", res, xr.ErrValidationFailure)
	}

	if _, res := r.WaitFrame(sess); res != xr.Success {
		t.Fatalf("WaitFrame returned %v", res)
	}
	if res := r.BeginFrame(sess); res != xr.Success {
		t.Fatalf("BeginFrame returned %v", res)
	}
	if res := r.EndFrame(sess, 0); res != xr.ErrTimeInvalid {
		t.Errorf("EndFrame with display time 0 returned %v, want %v", res, xr.ErrTimeInvalid)
	}
}

func TestHeadlessSynchronizesWithoutFrames(t *testing.T) {
	r := New(Quirks{})
	sess, res := r.CreateSession(xr.SessionConfig{ViewConfig: xr.ViewConfigStereo, Graphics: false})
	if res != xr.Success {
		t.Fatalf("CreateSession returned %v", res)
	}
	requireState(t, r, xr.StateIdle)
	requireState(t, r, xr.StateReady)
	if res := r.BeginSession(sess, xr.ViewConfigStereo); res != xr.Success {
		t.Fatalf("BeginSession returned %v", res)
	}
	requireState(t, r, xr.StateSynchronized)
}

func TestLocateViews(t *testing.T) {
	r, sess := newSession(t, Quirks{})

	t.Run("valid call", func(t *testing.T) {
		views, res := r.LocateViews(sess, xr.ViewConfigStereo, xr.Time(1))
		if res != xr.Success {
			t.Fatalf("LocateViews returned %v", res)
		}
		if len(views) != 2 {
			t.Errorf("LocateViews returned %d views, want 2", len(views))
		}
		if views[0].Pose.Orientation.W != 1 {
			t.Errorf("view orientation not identity: %+v", views[0].Pose.Orientation)
		}
	})

	t.Run("invalid times", func(t *testing.T) {
		if _, res := r.LocateViews(sess, xr.ViewConfigStereo, 0); res != xr.ErrTimeInvalid {
			t.Errorf("display time 0: got %v, want %v", res, xr.ErrTimeInvalid)
		}
		if _, res := r.LocateViews(sess, xr.ViewConfigStereo, xr.Time(-42)); res != xr.ErrTimeInvalid {
			t.Errorf("negative display time: got %v, want %v", res, xr.ErrTimeInvalid)
		}
	})

	t.Run("unsupported view config", func(t *testing.T) {
		if _, res := r.LocateViews(sess, xr.ViewConfigQuadVarjo, xr.Time(1)); res != xr.ErrViewConfigTypeUnsupported {
			t.Errorf("got %v, want %v", res, xr.ErrViewConfigTypeUnsupported)
		}
	})

	t.Run("lenient quirk", func(t *testing.T) {
		lr, lsess := newSession(t, Quirks{LenientLocate: true})
		if _, res := lr.LocateViews(lsess, xr.ViewConfigQuadVarjo, xr.Time(1)); res != xr.ErrValidationFailure {
			t.Errorf("got %v, want %v", res, xr.ErrValidationFailure)
		}
	})
}

func TestEnumerations(t *testing.T) {
	r, sess := newSession(t, Quirks{})

	configs, res := r.EnumerateViewConfigs()
	if res != xr.Success {
		t.Fatalf("EnumerateViewConfigs returned %v", res)
	}
	foundStereo := false
	for _, c := range configs {
		if c == xr.ViewConfigStereo {
			foundStereo = true
		}
	}
	if !foundStereo {
		t.Error("supported view configurations do not include stereo")
	}

	formats, res := r.EnumerateSwapchainFormats(sess)
	if res != xr.Success {
		t.Fatalf("EnumerateSwapchainFormats returned %v", res)
	}
	if len(formats) == 0 {
		t.Fatal("no swapchain formats reported")
	}
	again, res := r.EnumerateSwapchainFormats(sess)
	if res != xr.Success {
		t.Fatalf("second EnumerateSwapchainFormats returned %v", res)
	}
	if len(again) != len(formats) {
		t.Errorf("format list length changed: %d then %d", len(formats), len(again))
	}
}

func TestQuirks(t *testing.T) {
	t.Run("premature sync", func(t *testing.T) {
		r, sess := newSession(t, Quirks{PrematureSync: true})
		requireState(t, r, xr.StateIdle)
		requireState(t, r, xr.StateReady)
		if res := r.BeginSession(sess, xr.ViewConfigStereo); res != xr.Success {
			t.Fatalf("BeginSession returned %v", res)
		}
		// SYNCHRONIZED appears without any frame submitted.
		requireState(t, r, xr.StateSynchronized)
	})

	t.Run("premature idle", func(t *testing.T) {
		r, sess := newSession(t, Quirks{PrematureIdle: true})
		runToStopping(t, r, sess)
		submitFrame(t, r, sess)
		state, ok := nextState(t, r)
		if !ok || state != xr.StateIdle {
			t.Fatalf("expected premature IDLE, got (%v, %v)", state, ok)
		}
	})

	t.Run("skip visible", func(t *testing.T) {
		r, sess := newSession(t, Quirks{SkipVisible: true})
		requireState(t, r, xr.StateIdle)
		requireState(t, r, xr.StateReady)
		if res := r.BeginSession(sess, xr.ViewConfigStereo); res != xr.Success {
			t.Fatalf("BeginSession returned %v", res)
		}
		submitFrame(t, r, sess)
		requireState(t, r, xr.StateSynchronized)
		submitFrame(t, r, sess)
		requireState(t, r, xr.StateFocused)
	})

	t.Run("wrong end result", func(t *testing.T) {
		r, sess := newSession(t, Quirks{WrongEndResult: xr.ErrValidationFailure})
		runToStopping(t, r, sess)
		if res := r.EndSession(sess); res != xr.ErrValidationFailure {
			t.Errorf("EndSession returned %v, want the quirk result", res)
		}
	})

	t.Run("slow illegal wait-frame", func(t *testing.T) {
		r, sess := newSession(t, Quirks{SlowIllegalWaitFrame: 30 * time.Millisecond})
		start := time.Now()
		_, res := r.WaitFrame(sess)
		if res != xr.ErrSessionNotRunning {
			t.Fatalf("WaitFrame returned %v", res)
		}
		if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
			t.Errorf("WaitFrame returned after %v, quirk should block 30ms", elapsed)
		}
	})
}
