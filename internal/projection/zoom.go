package projection

import (
	"time"

	"stashline/internal/core"
)

// Windows spanning at most this many months render one point per month;
// anything longer falls back to one point per year.
const monthlyResolutionMaxMonths = 24

// ResolveZoom derives the display resolution from the inclusive month span
// of the window. Daily is never derived here; it is reserved for callers
// that build a ZoomState explicitly.
func ResolveZoom(start, end time.Time) (Resolution, error) {
	if start.IsZero() || end.IsZero() {
		return "", &InvalidRangeError{Start: start, End: end, Reason: "zero date"}
	}
	if end.Before(start) {
		return "", &InvalidRangeError{Start: start, End: end, Reason: "start after end"}
	}
	if core.MonthSpan(start, end) <= monthlyResolutionMaxMonths {
		return ResolutionMonthly, nil
	}
	return ResolutionYearly, nil
}

// NewZoomState resolves the window into a ZoomState ready for Generate.
func NewZoomState(start, end time.Time) (ZoomState, error) {
	res, err := ResolveZoom(start, end)
	if err != nil {
		return ZoomState{}, err
	}
	return ZoomState{Resolution: res, Start: start, End: end}, nil
}
