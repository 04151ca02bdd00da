package projection

import (
	"github.com/shopspring/decimal"

	"stashline/internal/core"
)

// Overrides carries session-local hypothetical values keyed by item id:
// "what if I moved money / changed the rate" without mutating the goal.
// A present key wins over the item's persisted value.
type Overrides struct {
	StartingBalances map[string]core.Money      `json:"stashedBalances,omitempty"`
	MonthlyRates     map[string]core.Money      `json:"monthlyRates,omitempty"`
	APYs             map[string]decimal.Decimal `json:"apys,omitempty"`
}

// BuildItemConfigs merges persisted items with session overrides into the
// normalized configs the generator simulates. Pure; never fails.
func BuildItemConfigs(items []core.StashItem, ov Overrides) []ItemConfig {
	cfgs := make([]ItemConfig, 0, len(items))
	for _, item := range items {
		cfg := ItemConfig{
			ItemID:          item.ID,
			Name:            item.Name,
			StartingBalance: item.CurrentBalance,
			MonthlyRate:     item.PlannedBudget,
			TargetAmount:    item.TargetAmount,
			TargetDate:      item.TargetDate,
			GoalType:        item.GoalType,
			APY:             item.APY,
		}
		if v, ok := ov.StartingBalances[item.ID]; ok {
			cfg.StartingBalance = v
		}
		if v, ok := ov.MonthlyRates[item.ID]; ok {
			cfg.MonthlyRate = v
		}
		if v, ok := ov.APYs[item.ID]; ok {
			cfg.APY = v
		}
		cfgs = append(cfgs, cfg)
	}
	return cfgs
}
