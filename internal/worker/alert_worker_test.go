package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"stashline/internal/amqp"
	"stashline/internal/export"
	"stashline/internal/export/memory"
)

func TestHandleAlertRecords(t *testing.T) {
	recorder := memory.New()
	w := NewAlertWorker(recorder)

	msg := &amqp.MilestoneAlertMessage{
		ItemID:     "a",
		ItemName:   "Rainy day",
		Status:     "funded",
		Balance:    "1300",
		CursorDate: "2026-03",
		Timestamp:  time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := w.HandleAlert(context.Background(), msg); err != nil {
		t.Fatalf("HandleAlert() error = %v", err)
	}

	alerts := recorder.Alerts()
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1", len(alerts))
	}
	got := alerts[0]
	if got.ItemID != msg.ItemID || got.Status != msg.Status || got.Balance != msg.Balance {
		t.Errorf("recorded alert = %+v, want fields from message", got)
	}
	if !got.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("timestamp = %v, want %v", got.Timestamp, msg.Timestamp)
	}
}

type failingRecorder struct{}

func (failingRecorder) AppendAlert(context.Context, export.Alert) (string, error) {
	return "", errors.New("sheet unavailable")
}

func TestHandleAlertPropagatesRecorderError(t *testing.T) {
	w := NewAlertWorker(failingRecorder{})

	err := w.HandleAlert(context.Background(), &amqp.MilestoneAlertMessage{ItemID: "a"})
	if err == nil {
		t.Fatal("expected error from recorder")
	}
}
