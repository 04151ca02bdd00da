package projection

import (
	"testing"
	"time"

	"stashline/internal/core"
)

func fixedTargetItem(targetCents int64, targetDate time.Time) core.StashItem {
	item := threeMonthItem()
	target := core.MoneyFromCents(targetCents)
	item.TargetAmount = &target
	item.TargetDate = &targetDate
	item.GoalType = core.GoalFixedTarget
	return item
}

func projectWithCursor(t *testing.T, item core.StashItem, cursor time.Time) Result {
	t.Helper()
	res, err := Project(Request{
		Items:  []core.StashItem{item},
		Start:  testStart,
		End:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Cursor: &cursor,
		Now:    testNow,
	})
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	return res
}

// The cursor snapshot must agree with the recorded series at every single
// generated step, bit for bit.
func TestCursorSeriesConsistency(t *testing.T) {
	target := core.MoneyFromCents(1000000)
	item := threeMonthItem()
	item.APY = core.MoneyFromCents(7).Amount // 0.07
	item.TargetAmount = &target

	res, err := Project(Request{
		Items: []core.StashItem{item},
		Events: []core.NamedEvent{
			{ID: "d", Type: core.EventDeposit, Month: "2026-06", ItemID: "a", Amount: core.MoneyFromCents(33300)},
			{ID: "r", Type: core.EventRateChange, Month: "2026-09", ItemID: "a", Amount: core.MoneyFromCents(12500)},
		},
		Start: testStart,
		End:   time.Date(2027, 12, 1, 0, 0, 0, 0, time.UTC),
		Now:   testNow,
	})
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	cfg := res.ItemConfigs[0]
	for i, p := range res.DataPoints {
		card := EvaluateCursor("a", res.DataPoints, cfg, p.Timestamp, testNow)
		if card == nil {
			t.Fatalf("point %d: no card state", i)
		}
		if !card.ProjectedBalance.Equal(p.Balances["a"]) {
			t.Errorf("point %d: card %s != series %s", i, card.ProjectedBalance, p.Balances["a"])
		}
		if !card.InterestEarned.Equal(p.InterestEarned["a"]) {
			t.Errorf("point %d: interest %s != series %s", i, card.InterestEarned, p.InterestEarned["a"])
		}
	}
}

func TestCursorFundedAndCapped(t *testing.T) {
	// Scenario: target 1200 reached exactly at the second point.
	item := fixedTargetItem(120000, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	res := projectWithCursor(t, item, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

	card, ok := res.CursorProjections["a"]
	if !ok {
		t.Fatal("missing cursor projection")
	}
	if card.ProjectedProgressPercent != 100 {
		t.Errorf("progress = %v, want 100", card.ProjectedProgressPercent)
	}
	if card.ProjectedStatus != StatusFunded {
		t.Errorf("status = %s, want funded", card.ProjectedStatus)
	}

	// Overfunded next month: the raw series keeps growing, display caps.
	res = projectWithCursor(t, item, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	card = res.CursorProjections["a"]
	if !card.ProjectedBalance.Equal(core.MoneyFromCents(130000)) {
		t.Errorf("balance = %s, want 1300 (uncapped in series)", card.ProjectedBalance)
	}
	if card.ProjectedProgressPercent != 100 {
		t.Errorf("progress = %v, want capped 100", card.ProjectedProgressPercent)
	}
}

func TestCursorOngoingGoalUncappedProgress(t *testing.T) {
	item := fixedTargetItem(120000, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	item.GoalType = core.GoalOngoing
	res := projectWithCursor(t, item, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	card := res.CursorProjections["a"]
	if card.ProjectedProgressPercent <= 100 {
		t.Errorf("progress = %v, want > 100 for ongoing goal", card.ProjectedProgressPercent)
	}
	if card.ProjectedStatus != StatusFunded {
		t.Errorf("status = %s, want funded", card.ProjectedStatus)
	}
}

func TestCursorBetweenStepsUsesPrecedingPoint(t *testing.T) {
	res := projectWithCursor(t, threeMonthItem(), time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC))
	card := res.CursorProjections["a"]
	if !card.ProjectedBalance.Equal(core.MoneyFromCents(120000)) {
		t.Errorf("balance = %s, want the February point", card.ProjectedBalance)
	}
}

func TestCursorBeforeSeriesReturnsNil(t *testing.T) {
	res := projectWithCursor(t, threeMonthItem(), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	card := EvaluateCursor("a", res.DataPoints, res.ItemConfigs[0],
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), testNow)
	if card != nil {
		t.Error("expected nil for cursor before the first step")
	}
}

func TestCursorUnknownItemReturnsNil(t *testing.T) {
	res := projectWithCursor(t, threeMonthItem(), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	card := EvaluateCursor("nope", res.DataPoints, res.ItemConfigs[0],
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), testNow)
	if card != nil {
		t.Error("expected nil for item absent from the series")
	}
}

func TestCursorMonthsFromNow(t *testing.T) {
	cases := []struct {
		name   string
		cursor time.Time
		want   int
	}{
		{"two months out", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 2},
		{"same month", time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), 0},
		{"past floors at zero", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := projectWithCursor(t, threeMonthItem(), tc.cursor)
			card, ok := res.CursorProjections["a"]
			if !ok {
				t.Fatal("missing cursor projection")
			}
			if card.MonthsFromNow != tc.want {
				t.Errorf("MonthsFromNow = %d, want %d", card.MonthsFromNow, tc.want)
			}
		})
	}
}

func TestCursorStatusCritical(t *testing.T) {
	// Target date passed with the goal still short.
	item := fixedTargetItem(1000000, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	res := projectWithCursor(t, item, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	if got := res.CursorProjections["a"].ProjectedStatus; got != StatusCritical {
		t.Errorf("status = %s, want critical", got)
	}
}

func TestCursorStatusPace(t *testing.T) {
	targetDate := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	cursor := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name        string
		rateCents   int64
		targetCents int64
		want        Status
	}{
		// 10/month toward 117/month still needed.
		{"behind", 1000, 120000, StatusBehind},
		// 200/month toward 60/month needed.
		{"ahead", 20000, 120000, StatusAhead},
		// 100/month toward exactly 100/month needed (target 1300).
		{"on pace", 10000, 130000, StatusOnTrack},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			target := core.MoneyFromCents(tc.targetCents)
			item := core.StashItem{
				ID:            "a",
				PlannedBudget: core.MoneyFromCents(tc.rateCents),
				TargetAmount:  &target,
				TargetDate:    &targetDate,
				GoalType:      core.GoalFixedTarget,
			}
			res := projectWithCursor(t, item, cursor)
			card, ok := res.CursorProjections["a"]
			if !ok {
				t.Fatal("missing cursor projection")
			}
			if card.ProjectedStatus != tc.want {
				t.Errorf("status = %s, want %s", card.ProjectedStatus, tc.want)
			}
		})
	}
}

func TestCursorStatusInactive(t *testing.T) {
	item := core.StashItem{ID: "a", CurrentBalance: core.MoneyFromCents(50000), GoalType: core.GoalOngoing}
	res := projectWithCursor(t, item, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	if got := res.CursorProjections["a"].ProjectedStatus; got != StatusInactive {
		t.Errorf("status = %s, want inactive", got)
	}
}

func TestCursorStatusOngoingOnTrack(t *testing.T) {
	res := projectWithCursor(t, threeMonthItem(), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if got := res.CursorProjections["a"].ProjectedStatus; got != StatusOnTrack {
		t.Errorf("status = %s, want on_track", got)
	}
}

func TestCursorMonthlyTarget(t *testing.T) {
	// 1200 target, 1100 at the cursor point, 10 whole months to the date:
	// 10 per month still needed.
	item := fixedTargetItem(120000, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC))
	res := projectWithCursor(t, item, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	card := res.CursorProjections["a"]
	if !card.ProjectedMonthlyTarget.Equal(core.MoneyFromCents(1000)) {
		t.Errorf("monthly target = %s, want 10", card.ProjectedMonthlyTarget)
	}
}

func TestCursorNilWithoutCursor(t *testing.T) {
	res, err := Project(Request{
		Items: []core.StashItem{threeMonthItem()},
		Start: testStart,
		End:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Now:   testNow,
	})
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if res.CursorProjections != nil {
		t.Error("cursor projections without a cursor")
	}
}
