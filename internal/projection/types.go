// Package projection implements the timeline projection engine: a pure,
// deterministic simulation of stash-goal balances over a date window, with
// point-in-time cursor snapshots that agree exactly with the series.
package projection

import (
	"time"

	"github.com/shopspring/decimal"

	"stashline/internal/core"
)

const (
	ResolutionDaily   Resolution = "daily"
	ResolutionMonthly Resolution = "monthly"
	ResolutionYearly  Resolution = "yearly"
)

type (
	// Resolution is the temporal granularity at which steps are emitted.
	Resolution string

	// ZoomState is the resolved date window. Resolution is derived from the
	// window via ResolveZoom, never set independently by callers. Daily is
	// reserved for explicit callers building fine-grained views.
	ZoomState struct {
		Resolution Resolution `json:"resolution"`
		Start      time.Time  `json:"start"`
		End        time.Time  `json:"end"`
	}

	// ItemConfig is the normalized per-goal input the generator simulates:
	// persisted item fields merged with session overrides.
	ItemConfig struct {
		ItemID          string          `json:"itemId"`
		Name            string          `json:"name"`
		StartingBalance core.Money      `json:"startingBalance"`
		MonthlyRate     core.Money      `json:"monthlyRate"`
		TargetAmount    *core.Money     `json:"targetAmount,omitempty"`
		TargetDate      *time.Time      `json:"targetDate,omitempty"`
		GoalType        core.GoalType   `json:"goalType"`
		APY             decimal.Decimal `json:"apy"`
	}

	// TimelineDataPoint is one simulated step. All items share the same step
	// boundaries; balances and cumulative interest are recorded per item.
	TimelineDataPoint struct {
		Date           string                `json:"date"`
		Timestamp      time.Time             `json:"timestamp"`
		Balances       map[string]core.Money `json:"balances"`
		InterestEarned map[string]core.Money `json:"interestEarned"`
		EventIDs       []string              `json:"eventIds,omitempty"`
	}

	// ProjectedCardState is the per-item snapshot derived for a cursor date.
	ProjectedCardState struct {
		ProjectedBalance         core.Money `json:"projectedBalance"`
		ProjectedStatus          Status     `json:"projectedStatus"`
		ProjectedProgressPercent float64    `json:"projectedProgressPercent"`
		MonthsFromNow            int        `json:"monthsFromNow"`
		InterestEarned           core.Money `json:"interestEarned"`
		ProjectedMonthlyTarget   core.Money `json:"projectedMonthlyTarget"`
	}

	// Result is the full projection output.
	Result struct {
		DataPoints        []TimelineDataPoint           `json:"dataPoints"`
		ItemConfigs       []ItemConfig                  `json:"itemConfigs"`
		CursorProjections map[string]ProjectedCardState `json:"cursorProjections,omitempty"`
		Warnings          []ValidationError             `json:"warnings,omitempty"`
	}
)
