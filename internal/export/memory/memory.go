package memory

import (
	"context"
	"fmt"
	"sync"

	"stashline/internal/export"
)

// Recorder keeps appended alerts in memory. Used in tests and when no
// spreadsheet is configured.
type Recorder struct {
	mu     sync.Mutex
	alerts []export.Alert
}

var _ export.AlertRecorder = (*Recorder)(nil)

func New() *Recorder {
	return &Recorder{}
}

// AppendAlert stores the alert and returns a synthetic row reference.
func (r *Recorder) AppendAlert(_ context.Context, a export.Alert) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, a)
	return fmt.Sprintf("mem:%d", len(r.alerts)), nil
}

// Alerts returns a copy of everything recorded so far.
func (r *Recorder) Alerts() []export.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]export.Alert(nil), r.alerts...)
}
