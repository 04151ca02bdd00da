package worker

import (
	"context"
	"fmt"
	"log/slog"

	"stashline/internal/amqp"
	"stashline/internal/export"
)

// AlertWorker drains milestone alerts off the queue and appends them to the
// alert log.
type AlertWorker struct {
	recorder export.AlertRecorder
}

func NewAlertWorker(recorder export.AlertRecorder) *AlertWorker {
	return &AlertWorker{recorder: recorder}
}

// HandleAlert processes a single milestone alert message from AMQP
func (w *AlertWorker) HandleAlert(ctx context.Context, msg *amqp.MilestoneAlertMessage) error {
	slog.InfoContext(ctx, "Processing milestone alert",
		"item_id", msg.ItemID,
		"status", msg.Status)

	ref, err := w.recorder.AppendAlert(ctx, export.Alert{
		ItemID:     msg.ItemID,
		ItemName:   msg.ItemName,
		Status:     msg.Status,
		Balance:    msg.Balance,
		CursorDate: msg.CursorDate,
		Timestamp:  msg.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("append alert: %w", err)
	}

	slog.InfoContext(ctx, "Milestone alert recorded",
		"item_id", msg.ItemID,
		"status", msg.Status,
		"ref", ref)

	return nil
}
