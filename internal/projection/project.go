package projection

import (
	"time"

	"stashline/internal/core"
)

// Request bundles every input the engine consumes. Items come from the
// goal store; overrides and events are session-scoped and supplied fresh
// on each call. Now is injectable so output is deterministic under test; a
// zero value falls back to the wall clock.
type Request struct {
	Items     []core.StashItem
	Overrides Overrides
	Events    []core.NamedEvent
	Start     time.Time
	End       time.Time
	Cursor    *time.Time
	Now       time.Time
}

// Project runs the full pipeline: resolve the zoom window, merge item
// configs with overrides, index events, generate the series, and evaluate
// the cursor when one is set. The only error is an InvalidRangeError;
// per-event problems surface as warnings on the result.
func Project(req Request) (Result, error) {
	now := req.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	zoom, err := NewZoomState(req.Start, req.End)
	if err != nil {
		return Result{}, err
	}

	cfgs := BuildItemConfigs(req.Items, req.Overrides)
	idx, warnings := IndexEvents(req.Events, KnownItemIDs(cfgs))

	result := Generate(cfgs, idx, zoom, req.Cursor, now)
	result.Warnings = warnings
	return result, nil
}
