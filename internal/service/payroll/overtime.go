package payroll

import (
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/shiftrule"
	"github.com/shopspring/decimal"
)

// OvertimeBands splits worked hours into regular and two overtime tiers.
type OvertimeBands struct {
	Regular decimal.Decimal
	Tier1   decimal.Decimal
	Tier2   decimal.Decimal
}

func (b OvertimeBands) Total() decimal.Decimal {
	return b.Regular.Add(b.Tier1).Add(b.Tier2)
}

// BandHours is a pure split: regular up to threshold, then tier 1 up to
// its capacity, then tier 2 for the rest.
func BandHours(total, threshold, tier1Capacity decimal.Decimal) OvertimeBands {
	regular := decimal.Min(total, threshold)
	remaining := total.Sub(regular)
	tier1 := decimal.Min(remaining, tier1Capacity)
	tier2 := remaining.Sub(tier1)
	return OvertimeBands{Regular: regular, Tier1: tier1, Tier2: tier2}
}

// BandDay applies the rule group's daily threshold to one day's hours.
// Under a weekly policy the whole day counts as regular here and the
// weekly premium is settled separately.
func BandDay(dayHours decimal.Decimal, rules shiftrule.RuleGroup) OvertimeBands {
	if rules.OvertimePolicy == shiftrule.OvertimePolicyWeekly {
		return OvertimeBands{Regular: dayHours}
	}
	return BandHours(dayHours, rules.DailyThreshold, rules.Tier1Capacity)
}

// BandWeek applies the weekly threshold to a week's total hours.
func BandWeek(weekHours decimal.Decimal, rules shiftrule.RuleGroup) OvertimeBands {
	return BandHours(weekHours, rules.WeeklyThreshold, rules.Tier1Capacity)
}
