package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// GoalFixedTarget stops counting progress past 100%.
	GoalFixedTarget GoalType = "fixed_target"
	// GoalOngoing has no ceiling.
	GoalOngoing GoalType = "ongoing"

	EventDeposit    EventType = "deposit"
	EventRateChange EventType = "rate_change"
)

type (
	GoalType  string
	EventType string

	// StashItem is a savings goal as persisted by the goal store: a balance,
	// a planned monthly contribution, and an optional target.
	StashItem struct {
		ID             string
		Name           string
		CurrentBalance Money
		PlannedBudget  Money // baseline monthly contribution
		TargetAmount   *Money
		TargetDate     *time.Time
		GoalType       GoalType
		APY            decimal.Decimal // annual yield as a fraction in [0,1)
	}

	// NamedEvent is a session-only hypothetical modifier anchored to a month:
	// a one-time deposit or a permanent contribution-rate change.
	NamedEvent struct {
		ID     string
		Name   string
		Type   EventType
		Month  string // YYYY-MM
		ItemID string
		Amount Money
	}
)

var (
	ErrEmptyID          = errors.New("empty id")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidGoalType  = errors.New("invalid goal type")
	ErrInvalidEventType = errors.New("invalid event type")
	ErrInvalidAPY       = errors.New("apy must be in [0,1)")
)

var maxAPY = decimal.NewFromInt(1)

func (g GoalType) Valid() bool {
	return g == GoalFixedTarget || g == GoalOngoing
}

func (s StashItem) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return ErrEmptyID
	}
	if !s.GoalType.Valid() {
		return ErrInvalidGoalType
	}
	if s.APY.IsNegative() || s.APY.GreaterThanOrEqual(maxAPY) {
		return ErrInvalidAPY
	}
	if len(s.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	return nil
}

func (e NamedEvent) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(e.ItemID) == "" {
		return errors.New("empty item id")
	}
	switch e.Type {
	case EventDeposit, EventRateChange:
	default:
		return ErrInvalidEventType
	}
	if _, err := ParseMonthKey(e.Month); err != nil {
		return ErrInvalidMonth
	}
	return nil
}
