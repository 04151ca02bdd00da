package projection

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"stashline/internal/core"
)

// EvaluateCursor derives the per-item snapshot for an arbitrary cursor
// date from an already-generated series. The series is authoritative: the
// balance is read from the data point at or immediately preceding the
// cursor, never recomputed, so the card and the chart line cannot
// disagree.
//
// Returns nil when the series is empty, the cursor precedes the first
// step, or the item does not appear in the series.
func EvaluateCursor(itemID string, series []TimelineDataPoint, cfg ItemConfig, cursor, now time.Time) *ProjectedCardState {
	if len(series) == 0 {
		return nil
	}

	// First index strictly after the cursor; the point before it rules.
	after := sort.Search(len(series), func(i int) bool {
		return series[i].Timestamp.After(cursor)
	})
	if after == 0 {
		return nil
	}
	point := series[after-1]

	balance, ok := point.Balances[itemID]
	if !ok {
		return nil
	}
	interest := point.InterestEarned[itemID]

	hasTarget := cfg.TargetAmount != nil && cfg.TargetAmount.Amount.IsPositive()
	progress := 0.0
	if hasTarget {
		ratio, _ := balance.Amount.Div(cfg.TargetAmount.Amount).Float64()
		progress = ratio * 100
		if cfg.GoalType == core.GoalFixedTarget && progress > 100 {
			progress = 100
		}
	}

	monthsFromNow := core.WholeMonthsBetween(now, cursor)
	if monthsFromNow < 0 {
		monthsFromNow = 0
	}

	// Average monthly growth excluding interest, over the simulated months
	// up to the cursor point. Deposits count: a goal funded by lump sums is
	// still on pace.
	monthsElapsed := core.MonthSpan(series[0].Timestamp, point.Timestamp)
	avgPace := balance.Sub(cfg.StartingBalance).Sub(interest).Amount.
		Div(decimal.NewFromInt(int64(monthsElapsed)))

	hasTargetDate := cfg.TargetDate != nil
	pastTargetDate := hasTargetDate && !cursor.Before(*cfg.TargetDate)

	requiredPace := decimal.Zero
	monthlyTarget := cfg.MonthlyRate
	if hasTarget && hasTargetDate && !pastTargetDate {
		remaining := cfg.TargetAmount.Sub(balance)
		if remaining.IsNegative() {
			remaining = core.MoneyZero()
		}
		monthsLeft := core.WholeMonthsBetween(cursor, *cfg.TargetDate)
		if monthsLeft < 1 {
			monthsLeft = 1
		}
		requiredPace = remaining.Amount.Div(decimal.NewFromInt(int64(monthsLeft)))
		monthlyTarget = core.NewMoney(requiredPace)
	}

	status := deriveStatus(statusInput{
		progressPercent: progress,
		hasTarget:       hasTarget,
		hasTargetDate:   hasTargetDate,
		pastTargetDate:  pastTargetDate,
		balanceMoved:    !balance.Equal(cfg.StartingBalance),
		avgPace:         avgPace,
		requiredPace:    requiredPace,
	})

	return &ProjectedCardState{
		ProjectedBalance:         balance,
		ProjectedStatus:          status,
		ProjectedProgressPercent: progress,
		MonthsFromNow:            monthsFromNow,
		InterestEarned:           interest,
		ProjectedMonthlyTarget:   monthlyTarget,
	}
}
