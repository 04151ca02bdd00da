package projection

import (
	"stashline/internal/core"
)

// monthEffect is the resolved outcome of all events targeting one item in
// one month: deposits summed, at most one winning rate change.
type monthEffect struct {
	deposit    core.Money
	depositIDs []string
	newRate    *core.Money
	newRateID  string
}

// EventIndex groups resolved effects by item id and month.
type EventIndex map[string]map[core.MonthKey]*monthEffect

// IndexEvents validates and groups the flat event list. Invalid events are
// dropped and reported; they never corrupt the simulation. Deposits for the
// same item and month accumulate. When several rate changes collide on the
// same item and month, the last one in insertion order wins.
func IndexEvents(events []core.NamedEvent, knownItems map[string]struct{}) (EventIndex, []ValidationError) {
	idx := make(EventIndex)
	var invalid []ValidationError

	for _, ev := range events {
		if err := ev.Validate(); err != nil {
			invalid = append(invalid, ValidationError{
				EventID: ev.ID,
				Field:   validationField(err),
				Reason:  err.Error(),
			})
			continue
		}
		if _, ok := knownItems[ev.ItemID]; !ok {
			invalid = append(invalid, ValidationError{
				EventID: ev.ID,
				Field:   "itemId",
				Reason:  "unknown item " + ev.ItemID,
			})
			continue
		}

		month := core.MonthKey(ev.Month)
		perItem := idx[ev.ItemID]
		if perItem == nil {
			perItem = make(map[core.MonthKey]*monthEffect)
			idx[ev.ItemID] = perItem
		}
		eff := perItem[month]
		if eff == nil {
			eff = &monthEffect{deposit: core.MoneyZero()}
			perItem[month] = eff
		}

		switch ev.Type {
		case core.EventDeposit:
			eff.deposit = eff.deposit.Add(ev.Amount)
			eff.depositIDs = append(eff.depositIDs, ev.ID)
		case core.EventRateChange:
			rate := ev.Amount
			eff.newRate = &rate
			eff.newRateID = ev.ID
		}
	}

	return idx, invalid
}

// KnownItemIDs extracts the id set the event index validates against.
func KnownItemIDs(cfgs []ItemConfig) map[string]struct{} {
	known := make(map[string]struct{}, len(cfgs))
	for _, cfg := range cfgs {
		known[cfg.ItemID] = struct{}{}
	}
	return known
}

func validationField(err error) string {
	switch err {
	case core.ErrInvalidMonth:
		return "date"
	case core.ErrInvalidAmount:
		return "amount"
	case core.ErrInvalidEventType:
		return "type"
	case core.ErrEmptyID:
		return "id"
	}
	return "event"
}
