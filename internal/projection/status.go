package projection

import (
	"github.com/shopspring/decimal"
)

const (
	StatusInactive Status = "inactive"
	StatusFunded   Status = "funded"
	StatusCritical Status = "critical"
	StatusOnTrack  Status = "on_track"
	StatusAhead    Status = "ahead"
	StatusBehind   Status = "behind"
)

// Status mirrors the vocabulary used for live, non-projected items so one
// status-rendering path serves both.
type Status string

// Pace policy: the ratio of observed monthly growth to the pace required to
// fund the goal by its target date. The tolerance band keeps goals hovering
// around the exact pace from flapping between statuses.
var (
	aheadPaceRatio   = decimal.NewFromFloat(1.05)
	onTrackPaceRatio = decimal.NewFromFloat(0.95)
)

// statusInput bundles everything the policy table needs. avgPace is the
// average monthly balance growth excluding interest, derived from the
// series; requiredPace is the monthly amount still needed to fund by the
// target date.
type statusInput struct {
	progressPercent float64
	hasTarget       bool
	hasTargetDate   bool
	pastTargetDate  bool
	balanceMoved    bool
	avgPace         decimal.Decimal
	requiredPace    decimal.Decimal
}

func deriveStatus(in statusInput) Status {
	if in.hasTarget && in.progressPercent >= 100 {
		return StatusFunded
	}
	if in.hasTargetDate && in.pastTargetDate {
		return StatusCritical
	}
	if !in.balanceMoved && in.progressPercent == 0 && !in.avgPace.IsPositive() {
		return StatusInactive
	}
	if !in.hasTarget || !in.hasTargetDate {
		if in.avgPace.IsPositive() {
			return StatusOnTrack
		}
		return StatusBehind
	}
	if !in.requiredPace.IsPositive() {
		// Target already reachable without further contributions.
		return StatusAhead
	}
	ratio := in.avgPace.Div(in.requiredPace)
	switch {
	case ratio.GreaterThanOrEqual(aheadPaceRatio):
		return StatusAhead
	case ratio.GreaterThanOrEqual(onTrackPaceRatio):
		return StatusOnTrack
	default:
		return StatusBehind
	}
}
