// Package fake implements an in-process reference runtime for the harness.
//
// The default behavior is conformant: state-change events are emitted in the
// mandated order, the ready-to-synchronized transition is gated on frame
// submission, and every out-of-turn call is rejected with the specific status
// the contract requires. Quirks switch on individual misbehaviors so the
// harness's own tests can verify each check fails when it should.
package fake

import (
	"sync"
	"time"

	"github.com/xrcheck/xrcheck/internal/xr"
)

// Quirks selects deliberate contract violations. The zero value is a
// conformant runtime.
type Quirks struct {
	// PrematureSync emits SYNCHRONIZED at begin-session, before any frame
	// has been submitted.
	PrematureSync bool

	// PrematureIdle leaves STOPPING for IDLE without waiting for
	// end-session.
	PrematureIdle bool

	// SkipVisible jumps from SYNCHRONIZED straight to FOCUSED.
	SkipVisible bool

	// WrongEndResult, if nonzero, is returned by a legal end-session call
	// in place of success.
	WrongEndResult xr.Result

	// SlowIllegalWaitFrame makes an illegal wait-frame call block for the
	// given duration before reporting not-running.
	SlowIllegalWaitFrame time.Duration

	// LenientLocate reports unsupported view configuration types with the
	// generic validation error instead of the specific one.
	LenientLocate bool
}

const (
	firstHandle = xr.Session(0x1000)
	epoch       = xr.Time(1_000_000_000)
	framePeriod = xr.Time(16_666_667)
)

type session struct {
	handle          xr.Session
	state           xr.SessionState
	running         bool
	exitRequested   bool
	framesSubmitted int
	framePending    bool
	prematureFired  bool
}

// Runtime is the reference implementation of xr.Runtime. It supports one
// session at a time, which is all a scenario ever owns.
type Runtime struct {
	mu     sync.Mutex
	quirks Quirks

	graphics  bool
	supported []xr.ViewConfigType
	formats   []int64

	nextHandle xr.Session
	sess       *session
	queue      []xr.Event
	now        xr.Time
}

// New returns a runtime with the given quirks. A zero Quirks value yields a
// conformant runtime.
func New(quirks Quirks) *Runtime {
	return &Runtime{
		quirks:     quirks,
		graphics:   true,
		supported:  []xr.ViewConfigType{xr.ViewConfigStereo, xr.ViewConfigMono},
		formats:    []int64{43, 50, 37, 124, 126},
		nextHandle: firstHandle,
		now:        epoch,
	}
}

func init() {
	xr.RegisterRuntime("fake", func(cfg xr.SessionConfig) (xr.Runtime, error) {
		r := New(Quirks{})
		r.graphics = cfg.Graphics
		return r, nil
	})
}

// pushState queues a state-change event and advances the runtime-side state.
// The harness only learns of the transition when it polls.
func (r *Runtime) pushState(state xr.SessionState) {
	r.sess.state = state
	r.queue = append(r.queue, xr.SessionStateChanged{
		Session: r.sess.handle,
		State:   state,
		Time:    r.now,
	})
}

// CreateSession creates the scenario's session and queues the spontaneous
// IDLE and READY transitions, preceded by an unrelated event that pollers
// must skip.
func (r *Runtime) CreateSession(cfg xr.SessionConfig) (xr.Session, xr.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sess != nil {
		return xr.NullSession, xr.ErrLimitReached
	}
	r.graphics = cfg.Graphics

	r.sess = &session{handle: r.nextHandle}
	r.nextHandle++

	r.queue = append(r.queue, xr.EventsLost{Count: 0})
	r.pushState(xr.StateIdle)
	r.pushState(xr.StateReady)
	return r.sess.handle, xr.Success
}

// DestroySession releases the session in any state.
func (r *Runtime) DestroySession(s xr.Session) xr.Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sess == nil || r.sess.handle != s {
		return xr.ErrHandleInvalid
	}
	r.sess = nil
	r.queue = nil
	return xr.Success
}

// BeginSession begins the session. Gating: only legal in READY, rejected
// with ErrSessionRunning while running.
func (r *Runtime) BeginSession(s xr.Session, viewConfig xr.ViewConfigType) xr.Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sess == nil || r.sess.handle != s {
		return xr.ErrHandleInvalid
	}
	if r.sess.running {
		return xr.ErrSessionRunning
	}
	if r.sess.state != xr.StateReady {
		return xr.ErrSessionNotReady
	}
	if !r.viewConfigSupported(viewConfig) {
		return xr.ErrViewConfigTypeUnsupported
	}

	r.sess.running = true
	r.sess.framesSubmitted = 0
	r.queue = append(r.queue, xr.InteractionProfileChanged{Session: s})

	// Headless sessions synchronize without frame submission. PrematureSync
	// emits the transition early even with a graphics backend attached.
	if !r.graphics || r.quirks.PrematureSync {
		r.pushState(xr.StateSynchronized)
	}
	return xr.Success
}

// EndSession ends the session. Legal only in STOPPING.
func (r *Runtime) EndSession(s xr.Session) xr.Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sess == nil || r.sess.handle != s {
		return xr.ErrHandleInvalid
	}
	if !r.sess.running {
		return xr.ErrSessionNotRunning
	}
	if r.sess.state != xr.StateStopping {
		return xr.ErrSessionNotStopping
	}
	if r.quirks.WrongEndResult != xr.Success {
		return r.quirks.WrongEndResult
	}

	r.sess.running = false
	r.sess.framePending = false
	r.pushState(xr.StateIdle)
	if r.sess.exitRequested {
		r.pushState(xr.StateExiting)
	} else {
		r.pushState(xr.StateReady)
	}
	return xr.Success
}

// RequestExitSession marks the session for teardown; the mirrored state
// sequence is driven by subsequent frame submission.
func (r *Runtime) RequestExitSession(s xr.Session) xr.Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sess == nil || r.sess.handle != s {
		return xr.ErrHandleInvalid
	}
	if !r.sess.running {
		return xr.ErrSessionNotRunning
	}
	r.sess.exitRequested = true
	return xr.Success
}

// PollEvent pops the next queued event without blocking.
func (r *Runtime) PollEvent() (xr.Event, xr.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.queue) == 0 {
		return nil, xr.EventUnavailable
	}
	evt := r.queue[0]
	r.queue = r.queue[1:]
	return evt, xr.Success
}

// WaitFrame throttles the frame loop. When the session is not running it
// reports not-running immediately, unless the SlowIllegalWaitFrame quirk
// simulates a runtime that blocks where it must not.
func (r *Runtime) WaitFrame(s xr.Session) (xr.FrameState, xr.Result) {
	r.mu.Lock()

	if r.sess == nil || r.sess.handle != s {
		r.mu.Unlock()
		return xr.FrameState{}, xr.ErrHandleInvalid
	}
	if !r.sess.running {
		delay := r.quirks.SlowIllegalWaitFrame
		r.mu.Unlock()
		if delay > 0 {
			time.Sleep(delay)
		}
		return xr.FrameState{}, xr.ErrSessionNotRunning
	}
	defer r.mu.Unlock()

	r.now += framePeriod
	r.sess.framePending = true
	visible := r.sess.state == xr.StateVisible || r.sess.state == xr.StateFocused
	return xr.FrameState{
		PredictedDisplayTime:   r.now + framePeriod,
		PredictedDisplayPeriod: framePeriod,
		ShouldRender:           visible,
	}, xr.Success
}

// BeginFrame pairs with the most recent WaitFrame.
func (r *Runtime) BeginFrame(s xr.Session) xr.Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sess == nil || r.sess.handle != s {
		return xr.ErrHandleInvalid
	}
	if !r.sess.running {
		return xr.ErrSessionNotRunning
	}
	if !r.sess.framePending {
		return xr.ErrValidationFailure
	}
	return xr.Success
}

// EndFrame submits the frame and advances the lifecycle state machine by at
// most one transition.
func (r *Runtime) EndFrame(s xr.Session, displayTime xr.Time) xr.Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sess == nil || r.sess.handle != s {
		return xr.ErrHandleInvalid
	}
	if !r.sess.running {
		return xr.ErrSessionNotRunning
	}
	if displayTime <= 0 {
		return xr.ErrTimeInvalid
	}
	r.sess.framePending = false
	r.sess.framesSubmitted++
	r.advance()
	return xr.Success
}

// advance performs one lifecycle transition per submitted frame, forward
// while the app intends to keep running and mirrored once exit is requested.
func (r *Runtime) advance() {
	sess := r.sess
	if sess.exitRequested {
		switch sess.state {
		case xr.StateFocused:
			r.pushState(xr.StateVisible)
		case xr.StateVisible:
			r.pushState(xr.StateSynchronized)
		case xr.StateSynchronized, xr.StateReady:
			r.pushState(xr.StateStopping)
			if r.quirks.PrematureIdle && !sess.prematureFired {
				sess.prematureFired = true
				r.pushState(xr.StateIdle)
			}
		}
		return
	}

	switch sess.state {
	case xr.StateReady:
		if sess.framesSubmitted >= 1 {
			r.pushState(xr.StateSynchronized)
		}
	case xr.StateSynchronized:
		if r.quirks.SkipVisible {
			r.pushState(xr.StateFocused)
		} else {
			r.pushState(xr.StateVisible)
		}
	case xr.StateVisible:
		r.pushState(xr.StateFocused)
	}
}

// LocateViews returns one view per display region for the session's
// configuration.
func (r *Runtime) LocateViews(s xr.Session, viewConfig xr.ViewConfigType, displayTime xr.Time) ([]xr.View, xr.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sess == nil || r.sess.handle != s {
		return nil, xr.ErrHandleInvalid
	}
	if displayTime <= 0 {
		return nil, xr.ErrTimeInvalid
	}
	if !r.viewConfigSupported(viewConfig) {
		if r.quirks.LenientLocate {
			return nil, xr.ErrValidationFailure
		}
		return nil, xr.ErrViewConfigTypeUnsupported
	}

	count := viewCount(viewConfig)
	views := make([]xr.View, count)
	for i := range views {
		views[i] = xr.View{
			Pose: xr.Posef{
				Orientation: xr.Quaternionf{W: 1},
				Position:    xr.Vector3f{X: ipdOffset(i, count)},
			},
			FOV: xr.FOVf{AngleLeft: -0.785, AngleRight: 0.785, AngleUp: 0.785, AngleDown: -0.785},
		}
	}
	return views, xr.Success
}

// EnumerateViewConfigs lists the supported view configuration types.
func (r *Runtime) EnumerateViewConfigs() ([]xr.ViewConfigType, xr.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]xr.ViewConfigType, len(r.supported))
	copy(out, r.supported)
	return out, xr.Success
}

// EnumerateSwapchainFormats lists supported image formats in preference
// order.
func (r *Runtime) EnumerateSwapchainFormats(s xr.Session) ([]int64, xr.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sess == nil || r.sess.handle != s {
		return nil, xr.ErrHandleInvalid
	}
	out := make([]int64, len(r.formats))
	copy(out, r.formats)
	return out, xr.Success
}

func (r *Runtime) viewConfigSupported(v xr.ViewConfigType) bool {
	for _, s := range r.supported {
		if s == v {
			return true
		}
	}
	return false
}

func viewCount(v xr.ViewConfigType) int {
	switch v {
	case xr.ViewConfigMono:
		return 1
	case xr.ViewConfigStereo:
		return 2
	case xr.ViewConfigQuadVarjo, xr.ViewConfigStereoFovealInset:
		return 4
	default:
		return 0
	}
}

// ipdOffset spreads view positions symmetrically around the head origin.
func ipdOffset(i, count int) float32 {
	if count < 2 {
		return 0
	}
	const ipd = 0.063
	return ipd * (float32(i)/float32(count-1) - 0.5)
}
