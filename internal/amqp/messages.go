package amqp

import (
	"encoding/json"
	"time"
)

// MilestoneAlertMessage announces that a projected goal crossed a milestone
// status (funded or critical). It carries enough to append an alert row
// without a database lookup on the consumer side.
type MilestoneAlertMessage struct {
	ItemID     string    `json:"itemId"`
	ItemName   string    `json:"itemName"`
	Status     string    `json:"status"`
	Balance    string    `json:"balance"`
	CursorDate string    `json:"cursorDate"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewMilestoneAlertMessage(itemID, itemName, status, balance, cursorDate string) *MilestoneAlertMessage {
	return &MilestoneAlertMessage{
		ItemID:     itemID,
		ItemName:   itemName,
		Status:     status,
		Balance:    balance,
		CursorDate: cursorDate,
		Timestamp:  time.Now(),
	}
}

func (m *MilestoneAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MilestoneAlertMessageFromJSON(data []byte) (*MilestoneAlertMessage, error) {
	var msg MilestoneAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
