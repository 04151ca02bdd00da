package projection

import (
	"fmt"
	"time"
)

// ValidationError reports a named event that was dropped from the
// simulation. A bad event never aborts the projection; the caller surfaces
// the list to the user.
type ValidationError struct {
	EventID string `json:"eventId"`
	Field   string `json:"field"`
	Reason  string `json:"reason"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("event %s: invalid %s: %s", e.EventID, e.Field, e.Reason)
}

// InvalidRangeError rejects a malformed zoom window before simulation
// begins.
type InvalidRangeError struct {
	Start  time.Time
	End    time.Time
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range [%s, %s]: %s",
		e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"), e.Reason)
}
