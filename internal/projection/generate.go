package projection

import (
	"time"

	"github.com/shopspring/decimal"

	"stashline/internal/core"
)

const (
	yearlyStepMonths = 12
	// Month-equivalent length of one daily step. Interest and contributions
	// accrue per month; a day counts as 1/30 of one.
	daysPerMonth = 30
)

var (
	twelve      = decimal.NewFromInt(12)
	monthPerDay = decimal.NewFromInt(1).Div(decimal.NewFromInt(daysPerMonth))
)

// step is one boundary of the simulation walk. months lists the calendar
// months whose event effects fire at this step: one for monthly steps, up
// to twelve for yearly, and for daily steps only the month being entered.
type step struct {
	date         string
	ts           time.Time
	months       []core.MonthKey
	monthsInStep decimal.Decimal
}

// Generate walks the window at the resolved resolution and simulates every
// item independently over shared step boundaries. Balances are recorded
// uncapped so overfunding stays visible in the chart; display capping is
// the cursor evaluator's concern.
//
// Empty configs or a collapsed window produce an empty series, not an
// error.
func Generate(cfgs []ItemConfig, idx EventIndex, zoom ZoomState, cursor *time.Time, now time.Time) Result {
	result := Result{
		ItemConfigs: cfgs,
		DataPoints:  []TimelineDataPoint{},
	}

	steps := buildSteps(zoom)
	if len(cfgs) == 0 || len(steps) == 0 {
		return result
	}

	type itemState struct {
		balance  core.Money
		rate     core.Money
		interest core.Money
	}
	states := make([]itemState, len(cfgs))
	monthlyYield := make([]decimal.Decimal, len(cfgs))
	for i, cfg := range cfgs {
		states[i] = itemState{
			balance:  cfg.StartingBalance,
			rate:     cfg.MonthlyRate,
			interest: core.MoneyZero(),
		}
		monthlyYield[i] = cfg.APY.Div(twelve)
	}

	points := make([]TimelineDataPoint, 0, len(steps))
	for _, st := range steps {
		point := TimelineDataPoint{
			Date:           st.date,
			Timestamp:      st.ts,
			Balances:       make(map[string]core.Money, len(cfgs)),
			InterestEarned: make(map[string]core.Money, len(cfgs)),
		}
		var fired []string

		for i, cfg := range cfgs {
			s := &states[i]
			effects := idx[cfg.ItemID]

			// Rate changes take effect for this step and all later ones.
			for _, m := range st.months {
				if eff := effects[m]; eff != nil && eff.newRate != nil {
					s.rate = *eff.newRate
					fired = append(fired, eff.newRateID)
				}
			}

			interest := s.balance.MulDecimal(monthlyYield[i]).MulDecimal(st.monthsInStep)
			s.balance = s.balance.Add(interest)
			s.interest = s.interest.Add(interest)

			s.balance = s.balance.Add(s.rate.MulDecimal(st.monthsInStep))

			for _, m := range st.months {
				if eff := effects[m]; eff != nil && len(eff.depositIDs) > 0 {
					s.balance = s.balance.Add(eff.deposit)
					fired = append(fired, eff.depositIDs...)
				}
			}

			point.Balances[cfg.ItemID] = s.balance
			point.InterestEarned[cfg.ItemID] = s.interest
		}

		point.EventIDs = dedupeIDs(fired)
		points = append(points, point)
	}
	result.DataPoints = points

	if cursor != nil {
		projections := make(map[string]ProjectedCardState, len(cfgs))
		for _, cfg := range cfgs {
			if card := EvaluateCursor(cfg.ItemID, points, cfg, *cursor, now); card != nil {
				projections[cfg.ItemID] = *card
			}
		}
		result.CursorProjections = projections
	}

	return result
}

func buildSteps(zoom ZoomState) []step {
	// A window collapsed to a single instant yields no steps.
	if zoom.Start.Equal(zoom.End) || zoom.End.Before(zoom.Start) {
		return nil
	}

	switch zoom.Resolution {
	case ResolutionDaily:
		return buildDailySteps(zoom.Start, zoom.End)
	case ResolutionYearly:
		return buildMonthSteps(zoom.Start, zoom.End, yearlyStepMonths)
	default:
		return buildMonthSteps(zoom.Start, zoom.End, 1)
	}
}

func buildMonthSteps(start, end time.Time, stepMonths int) []step {
	span := core.MonthSpan(start, end)
	if span <= 0 {
		return nil
	}
	base := core.MonthKeyOf(start)

	var steps []step
	for offset := 0; offset < span; offset += stepMonths {
		covered := stepMonths
		if remaining := span - offset; remaining < covered {
			covered = remaining
		}
		first := base.AddMonths(offset)
		months := make([]core.MonthKey, covered)
		for i := range months {
			months[i] = first.AddMonths(i)
		}

		date := string(first)
		if stepMonths == yearlyStepMonths {
			date = first.Time().Format("2006")
		}
		steps = append(steps, step{
			date:         date,
			ts:           first.Time(),
			months:       months,
			monthsInStep: decimal.NewFromInt(int64(covered)),
		})
	}
	return steps
}

func buildDailySteps(start, end time.Time) []step {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	var steps []step
	var prevMonth core.MonthKey
	for !day.After(last) {
		st := step{
			date:         day.Format("2006-01-02"),
			ts:           day,
			monthsInStep: monthPerDay,
		}
		// Month-anchored effects fire on the first simulated day of the month.
		if m := core.MonthKeyOf(day); m != prevMonth {
			st.months = []core.MonthKey{m}
			prevMonth = m
		}
		steps = append(steps, st)
		day = day.AddDate(0, 0, 1)
	}
	return steps
}

func dedupeIDs(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
