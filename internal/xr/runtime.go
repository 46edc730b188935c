// Package xr models the XR runtime under test as an opaque capability
// interface. The harness drives a Runtime through its session lifecycle and
// cross-checks every returned Result against the mandated contract; it never
// assumes behavior the runtime has not reported through this surface.
package xr

// SessionConfig carries the options a session is created with.
type SessionConfig struct {
	// ViewConfig is the primary view configuration type the session will be
	// begun with.
	ViewConfig ViewConfigType

	// Graphics reports whether a rendering backend is attached. Headless
	// sessions relax the frame-submission gating of the ready-to-synchronized
	// transition.
	Graphics bool
}

// Runtime is the contract consumed from the runtime under test. All methods
// are synchronous; the runtime's only asynchrony is event emission, observed
// via PollEvent. Methods report protocol status through Result codes, never
// Go errors.
type Runtime interface {
	// CreateSession creates a session. The returned handle stays valid until
	// DestroySession.
	CreateSession(cfg SessionConfig) (Session, Result)

	// DestroySession releases a session in any state.
	DestroySession(s Session) Result

	// BeginSession begins a session with the given primary view
	// configuration. Legal only once the runtime has reported the ready
	// state; returns ErrSessionRunning if already running.
	BeginSession(s Session, viewConfig ViewConfigType) Result

	// EndSession ends a running session. Legal only in the stopping state:
	// returns ErrSessionNotStopping in other running states and
	// ErrSessionNotRunning when not running.
	EndSession(s Session) Result

	// RequestExitSession asks the runtime to wind the session down. Returns
	// ErrSessionNotRunning when the session is not running.
	RequestExitSession(s Session) Result

	// PollEvent pops the next queued event, or returns EventUnavailable
	// immediately when the queue is empty. Never blocks.
	PollEvent() (Event, Result)

	// WaitFrame throttles the frame loop and predicts the next display time.
	// Returns ErrSessionNotRunning immediately, without blocking, when the
	// session is not running.
	WaitFrame(s Session) (FrameState, Result)

	// BeginFrame marks the start of rendering for the frame most recently
	// returned by WaitFrame.
	BeginFrame(s Session) Result

	// EndFrame submits the frame for the given display time.
	EndFrame(s Session, displayTime Time) Result

	// LocateViews returns one pose and field of view per view for the given
	// configuration at the given display time. Zero or negative times must be
	// rejected with ErrTimeInvalid; unsupported view configuration types with
	// ErrViewConfigTypeUnsupported or, leniently, ErrValidationFailure.
	LocateViews(s Session, viewConfig ViewConfigType, displayTime Time) ([]View, Result)

	// EnumerateViewConfigs lists the view configuration types the runtime
	// supports.
	EnumerateViewConfigs() ([]ViewConfigType, Result)

	// EnumerateSwapchainFormats lists supported swapchain image formats,
	// in the runtime's preference order.
	EnumerateSwapchainFormats(s Session) ([]int64, Result)
}
