package xr

import "fmt"

// Result is a status code returned by every runtime entry point. Success
// codes are zero or positive, error codes are negative. Results are the
// protocol surface under test; Go errors are reserved for harness plumbing.
type Result int32

const (
	// Success indicates the call completed as requested.
	Success Result = 0

	// TimeoutExpired indicates a bounded wait elapsed without completion.
	TimeoutExpired Result = 1

	// EventUnavailable indicates the event queue was empty. This is a
	// first-class outcome of polling, not an error.
	EventUnavailable Result = 2

	// FrameDiscarded indicates a frame was begun but not rendered.
	FrameDiscarded Result = 3

	// ErrValidationFailure indicates the call violated a generic usage rule.
	ErrValidationFailure Result = -1

	// ErrRuntimeFailure indicates an internal runtime fault.
	ErrRuntimeFailure Result = -2

	// ErrHandleInvalid indicates a destroyed or never-created handle.
	ErrHandleInvalid Result = -3

	// ErrSessionRunning is returned by begin-session when the session is
	// already running.
	ErrSessionRunning Result = -4

	// ErrSessionNotRunning is returned by lifecycle-sensitive calls made
	// outside the running span (before begin, or after end).
	ErrSessionNotRunning Result = -5

	// ErrSessionNotStopping is returned by end-session while the session is
	// running but has not reached the stopping state.
	ErrSessionNotStopping Result = -6

	// ErrSessionNotReady is returned by begin-session before the runtime has
	// reported the ready state.
	ErrSessionNotReady Result = -7

	// ErrTimeInvalid is returned when a zero or negative display time is
	// passed to a time-sensitive call.
	ErrTimeInvalid Result = -8

	// ErrViewConfigTypeUnsupported is returned when a view configuration
	// type is not supported by the runtime.
	ErrViewConfigTypeUnsupported Result = -9

	// ErrLimitReached indicates a runtime capacity limit.
	ErrLimitReached Result = -10
)

var resultNames = map[Result]string{
	Success:                      "SUCCESS",
	TimeoutExpired:               "TIMEOUT_EXPIRED",
	EventUnavailable:             "EVENT_UNAVAILABLE",
	FrameDiscarded:               "FRAME_DISCARDED",
	ErrValidationFailure:         "ERROR_VALIDATION_FAILURE",
	ErrRuntimeFailure:            "ERROR_RUNTIME_FAILURE",
	ErrHandleInvalid:             "ERROR_HANDLE_INVALID",
	ErrSessionRunning:            "ERROR_SESSION_RUNNING",
	ErrSessionNotRunning:         "ERROR_SESSION_NOT_RUNNING",
	ErrSessionNotStopping:        "ERROR_SESSION_NOT_STOPPING",
	ErrSessionNotReady:           "ERROR_SESSION_NOT_READY",
	ErrTimeInvalid:               "ERROR_TIME_INVALID",
	ErrViewConfigTypeUnsupported: "ERROR_VIEW_CONFIGURATION_TYPE_UNSUPPORTED",
	ErrLimitReached:              "ERROR_LIMIT_REACHED",
}

// String returns the symbolic name of the result code.
func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("RESULT(%d)", int32(r))
}

// Succeeded reports whether r is a success code (zero or positive).
func (r Result) Succeeded() bool {
	return r >= 0
}

// Unqualified reports whether r is exactly Success, with no qualifier such
// as TimeoutExpired or EventUnavailable.
func (r Result) Unqualified() bool {
	return r == Success
}
