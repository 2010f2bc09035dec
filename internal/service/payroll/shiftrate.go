package payroll

import (
	"time"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/shiftrule"
	"github.com/shopspring/decimal"
)

// Multiplier sources, highest precedence first. Multipliers never stack:
// the highest applicable one wins and overtime tiers only raise it
// further via max().
const (
	MultiplierPublicHoliday = "public_holiday"
	MultiplierSaturday      = "saturday"
	MultiplierSunday        = "sunday"
	MultiplierNight         = "night"
	MultiplierBase          = "base"
)

type RateInput struct {
	Date            time.Time
	StartClock      string
	EndClock        string
	Bands           OvertimeBands
	HourlyRate      decimal.Decimal
	Rules           shiftrule.RuleGroup
	IsPublicHoliday bool
}

type IntervalPay struct {
	Multiplier       decimal.Decimal
	MultiplierSource string
	BasePay          decimal.Decimal // hours x rate, unmultiplied
	RatedPay         decimal.Decimal
	Allowances       map[string]decimal.Decimal
	AllowanceTotal   decimal.Decimal
	Total            decimal.Decimal
}

func dmax(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThanOrEqual(b) {
		return a
	}
	return b
}

// isNightShift reports whether the interval falls in the configured night
// window: start at/after night-start or end at/before night-end. The OR
// handles windows crossing midnight.
func isNightShift(startClock, endClock string, rules shiftrule.RuleGroup) bool {
	start, ok := parseClock(startClock)
	if !ok {
		return false
	}
	end, ok := parseClock(endClock)
	if !ok {
		return false
	}
	nightStart, ok := parseClock(rules.NightStart)
	if !ok {
		return false
	}
	nightEnd, ok := parseClock(rules.NightEnd)
	if !ok {
		return false
	}
	return start >= nightStart || end <= nightEnd
}

// multiplierFor picks the single highest applicable rate multiplier.
func multiplierFor(in RateInput) (decimal.Decimal, string) {
	one := decimal.NewFromInt(1)
	if in.IsPublicHoliday && in.Rules.HolidayMultiplier.GreaterThan(one) {
		return in.Rules.HolidayMultiplier, MultiplierPublicHoliday
	}
	switch in.Date.Weekday() {
	case time.Saturday:
		if in.Rules.SaturdayMultiplier.GreaterThan(one) {
			return in.Rules.SaturdayMultiplier, MultiplierSaturday
		}
	case time.Sunday:
		if in.Rules.SundayMultiplier.GreaterThan(one) {
			return in.Rules.SundayMultiplier, MultiplierSunday
		}
	}
	if in.Rules.NightMultiplier.GreaterThan(one) && isNightShift(in.StartClock, in.EndClock, in.Rules) {
		return in.Rules.NightMultiplier, MultiplierNight
	}
	return one, MultiplierBase
}

// RateInterval prices one worked interval: the banded hours at the
// highest applicable multiplier, plus flat allowances behind their own
// eligibility gates.
func RateInterval(in RateInput) IntervalPay {
	multiplier, source := multiplierFor(in)

	hours := in.Bands.Total()
	rated := in.Bands.Regular.Mul(multiplier).
		Add(in.Bands.Tier1.Mul(dmax(multiplier, in.Rules.Tier1Multiplier))).
		Add(in.Bands.Tier2.Mul(dmax(multiplier, in.Rules.Tier2Multiplier))).
		Mul(in.HourlyRate)

	pay := IntervalPay{
		Multiplier:       multiplier,
		MultiplierSource: source,
		BasePay:          hours.Mul(in.HourlyRate),
		RatedPay:         rated,
		Allowances:       make(map[string]decimal.Decimal),
		AllowanceTotal:   decimal.Zero,
	}

	for _, a := range in.Rules.Allowances {
		if a.NightOnly && source != MultiplierNight {
			continue
		}
		if a.MinimumHours.IsPositive() && hours.LessThan(a.MinimumHours) {
			continue
		}
		pay.Allowances[a.Name] = a.Amount
		pay.AllowanceTotal = pay.AllowanceTotal.Add(a.Amount)
	}

	pay.Total = pay.RatedPay.Add(pay.AllowanceTotal)
	return pay
}
