package amqp

import (
	"testing"
	"time"
)

func TestNewMilestoneAlertMessage(t *testing.T) {
	msg := NewMilestoneAlertMessage("item-1", "Emergency fund", "funded", "12000", "2026-06")

	if msg.ItemID != "item-1" || msg.Status != "funded" {
		t.Errorf("got %s/%s, want item-1/funded", msg.ItemID, msg.Status)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}
}

func TestMilestoneAlertMessage_JSON(t *testing.T) {
	msg := &MilestoneAlertMessage{
		ItemID:     "item-1",
		ItemName:   "Emergency fund",
		Status:     "critical",
		Balance:    "350.50",
		CursorDate: "2026-09",
		Timestamp:  time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := MilestoneAlertMessageFromJSON(body)
	if err != nil {
		t.Fatalf("MilestoneAlertMessageFromJSON() error = %v", err)
	}
	if parsed.ItemID != msg.ItemID || parsed.Status != msg.Status || parsed.Balance != msg.Balance {
		t.Errorf("roundtrip mismatch: got %+v", parsed)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestMilestoneAlertMessage_InvalidJSON(t *testing.T) {
	if _, err := MilestoneAlertMessageFromJSON([]byte(`{"timestamp": 42}`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
