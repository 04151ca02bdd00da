package export

import (
	"context"
	"time"
)

// Alert is one row of the milestone alert log.
type Alert struct {
	ItemID     string
	ItemName   string
	Status     string
	Balance    string
	CursorDate string
	Timestamp  time.Time
}

// Ports for outbound adapters.
type AlertRecorder interface {
	AppendAlert(ctx context.Context, a Alert) (rowRef string, err error)
}
