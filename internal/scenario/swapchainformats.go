package scenario

import (
	"github.com/xrcheck/xrcheck/internal/harness"
)

func init() {
	harness.Register("SwapchainFormats", swapchainFormats)
}

// swapchainFormats checks swapchain image format enumeration: the list must
// be non-empty, free of duplicates, and stable across calls. Per-format
// capability checks belong to the graphics backends and are not covered
// here.
func swapchainFormats(s *harness.S) {
	d := createSession(s)
	defer d.destroy()

	formats, res := d.rt.EnumerateSwapchainFormats(d.sess)
	s.RequireSuccess("enumerate-swapchain-formats", res)
	s.Capturef("formats: %v", formats)

	s.Require(len(formats) > 0, "runtime reported no swapchain image formats")

	seen := make(map[int64]bool, len(formats))
	for _, f := range formats {
		s.Require(!seen[f], "swapchain format %d listed more than once", f)
		seen[f] = true
	}

	again, res := d.rt.EnumerateSwapchainFormats(d.sess)
	s.RequireSuccess("enumerate-swapchain-formats (second call)", res)
	s.Require(len(again) == len(formats),
		"format list length changed between calls: %d then %d", len(formats), len(again))
	for i := range formats {
		s.Require(again[i] == formats[i],
			"format list changed between calls at index %d: %d then %d", i, formats[i], again[i])
	}
}
