package scenario

import (
	"github.com/xrcheck/xrcheck/internal/harness"
	"github.com/xrcheck/xrcheck/internal/xr"
)

func init() {
	harness.Register("LocateViews", locateViews)
}

// mandatedViewCount returns the number of views a configuration type is
// specified to produce.
func mandatedViewCount(v xr.ViewConfigType) int {
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

// locateViews checks the view-locating contract: a valid call returns one
// view per display region, zero and negative display times are rejected as
// invalid, and unsupported view configuration types are rejected with the
// specific unsupported-configuration error or, leniently, the generic
// validation error.
func locateViews(s *harness.S) {
	d := createSession(s)
	defer d.destroy()

	// Pump to focused so the last frame carries a usable predicted display
	// time for the locate calls.
	d.runToFocused()

	displayTime := d.frame.PredictedDisplayTime
	s.Require(displayTime != 0, "predicted display time is zero after frame submission")
	s.Capturef("display time: %d", int64(displayTime))

	selected := s.ViewConfig()

	views, res := d.rt.LocateViews(d.sess, selected, displayTime)
	s.RequireSuccess("locate-views with valid inputs", res)
	s.Require(len(views) == mandatedViewCount(selected),
		"locate-views returned %d views for %v, want %d", len(views), selected, mandatedViewCount(selected))

	_, res = d.rt.LocateViews(d.sess, selected, 0)
	s.RequireResult("locate-views with display time 0", res, xr.ErrTimeInvalid)

	_, res = d.rt.LocateViews(d.sess, selected, xr.Time(-42))
	s.RequireResult("locate-views with negative display time", res, xr.ErrTimeInvalid)

	supported, res := d.rt.EnumerateViewConfigs()
	s.RequireSuccess("enumerate-view-configurations", res)
	s.Capturef("supported view configurations: %v", supported)

	for _, viewType := range xr.KnownViewConfigTypes {
		if contains(supported, viewType) {
			views, res := d.rt.LocateViews(d.sess, viewType, displayTime)
			s.RequireSuccess("locate-views with supported type "+viewType.String(), res)
			s.Require(len(views) == mandatedViewCount(viewType),
				"locate-views returned %d views for %v, want %d", len(views), viewType, mandatedViewCount(viewType))
			continue
		}

		_, res := d.rt.LocateViews(d.sess, viewType, displayTime)
		switch res {
		case xr.ErrViewConfigTypeUnsupported:
			// The specific rejection.
		case xr.ErrValidationFailure:
			// Accepted as conformant, but the less-specific code makes it
			// harder for applications to reason about the error.
			s.Warnf("runtime rejected unsupported view configuration %v with %v instead of %v",
				viewType, res, xr.ErrViewConfigTypeUnsupported)
		default:
			s.Failf("locate-views with unsupported type %v returned %v, want %v or %v",
				viewType, res, xr.ErrViewConfigTypeUnsupported, xr.ErrValidationFailure)
		}
	}
}

func contains(list []xr.ViewConfigType, v xr.ViewConfigType) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
