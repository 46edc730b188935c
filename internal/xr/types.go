package xr

import "fmt"

// Session is an opaque handle to a runtime-managed unit of rendering and
// interaction. The zero value is never a valid handle.
type Session uint64

// NullSession is the invalid session handle.
const NullSession Session = 0

// Time is a runtime timestamp in nanoseconds. Valid timestamps are strictly
// positive; zero and negative values must be rejected by time-sensitive calls.
type Time int64

// SessionState is one of the mandated session lifecycle states.
type SessionState int32

const (
	// StateUnknown is the pseudo-state before the first state-change event
	// has been observed. Runtimes never report it.
	StateUnknown SessionState = iota
	StateIdle
	StateReady
	StateSynchronized
	StateVisible
	StateFocused
	StateStopping
	StateExiting
)

var stateNames = map[SessionState]string{
	StateUnknown:      "UNKNOWN",
	StateIdle:         "IDLE",
	StateReady:        "READY",
	StateSynchronized: "SYNCHRONIZED",
	StateVisible:      "VISIBLE",
	StateFocused:      "FOCUSED",
	StateStopping:     "STOPPING",
	StateExiting:      "EXITING",
}

func (s SessionState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATE(%d)", int32(s))
}

// ViewConfigType identifies a view configuration.
type ViewConfigType int32

const (
	ViewConfigMono ViewConfigType = iota + 1
	ViewConfigStereo
	ViewConfigQuadVarjo
	ViewConfigStereoFovealInset
)

var viewConfigNames = map[ViewConfigType]string{
	ViewConfigMono:              "mono",
	ViewConfigStereo:            "stereo",
	ViewConfigQuadVarjo:         "quad-varjo",
	ViewConfigStereoFovealInset: "stereo-foveal-inset",
}

func (v ViewConfigType) String() string {
	if name, ok := viewConfigNames[v]; ok {
		return name
	}
	return fmt.Sprintf("view-config(%d)", int32(v))
}

// ParseViewConfigType maps a configuration-file or flag value to a
// ViewConfigType.
func ParseViewConfigType(name string) (ViewConfigType, error) {
	for v, n := range viewConfigNames {
		if n == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown view configuration type: %q", name)
}

// KnownViewConfigTypes lists every view configuration type the harness knows
// about, supported by the runtime or not. Probing unsupported types is part
// of the view-locating contract checks.
var KnownViewConfigTypes = []ViewConfigType{
	ViewConfigMono,
	ViewConfigStereo,
	ViewConfigQuadVarjo,
	ViewConfigStereoFovealInset,
}

// FrameState is the ephemeral record produced by wait-frame. It is consumed
// within a single pump iteration and not retained.
type FrameState struct {
	PredictedDisplayTime   Time
	PredictedDisplayPeriod Time
	ShouldRender           bool
}

// Vector3f is a three-component position.
type Vector3f struct {
	X, Y, Z float32
}

// Quaternionf is an orientation.
type Quaternionf struct {
	X, Y, Z, W float32
}

// Posef is a position and orientation pair.
type Posef struct {
	Orientation Quaternionf
	Position    Vector3f
}

// FOVf holds the four half-angles of a view frustum, in radians.
type FOVf struct {
	AngleLeft, AngleRight, AngleUp, AngleDown float32
}

// View is a single located view: a pose and field of view for one eye or
// display region at a given display time.
type View struct {
	Pose Posef
	FOV  FOVf
}
