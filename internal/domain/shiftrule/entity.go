package shiftrule

import (
	"time"

	"github.com/shopspring/decimal"
)

type OvertimePolicy string

const (
	OvertimePolicyDaily  OvertimePolicy = "daily"
	OvertimePolicyWeekly OvertimePolicy = "weekly"
)

// Allowance is a flat amount added on top of rate-multiplied pay, each
// behind its own eligibility gate.
type Allowance struct {
	Name         string
	Amount       decimal.Decimal
	MinimumHours decimal.Decimal // zero = no minimum
	NightOnly    bool            // only paid when the night rate applied
}

// RuleGroup is the tenant-scoped rate configuration. The engine always
// uses the value in effect at calculation time; updates never trigger a
// retroactive recompute.
type RuleGroup struct {
	ID                  string
	TenantID            string
	Name                string
	StandardHoursPerDay decimal.Decimal
	StandardDaysPerWeek int
	OvertimePolicy      OvertimePolicy
	DailyThreshold      decimal.Decimal
	WeeklyThreshold     decimal.Decimal
	Tier1Capacity       decimal.Decimal
	Tier1Multiplier     decimal.Decimal
	Tier2Multiplier     decimal.Decimal
	SaturdayMultiplier  decimal.Decimal
	SundayMultiplier    decimal.Decimal
	HolidayMultiplier   decimal.Decimal
	NightMultiplier     decimal.Decimal
	NightStart          string // "HH:MM"
	NightEnd            string
	Allowances          []Allowance
	UpdatedAt           time.Time
}

// Default returns the fallback rule group used when a tenant has not
// configured one: 8h/40h standards, 4h tier-1 capacity, 1.5x/2x overtime.
func Default() RuleGroup {
	return RuleGroup{
		Name:                "default",
		StandardHoursPerDay: decimal.NewFromInt(8),
		StandardDaysPerWeek: 5,
		OvertimePolicy:      OvertimePolicyDaily,
		DailyThreshold:      decimal.NewFromInt(8),
		WeeklyThreshold:     decimal.NewFromInt(40),
		Tier1Capacity:       decimal.NewFromInt(4),
		Tier1Multiplier:     decimal.NewFromFloat(1.5),
		Tier2Multiplier:     decimal.NewFromInt(2),
		SaturdayMultiplier:  decimal.NewFromInt(1),
		SundayMultiplier:    decimal.NewFromInt(1),
		HolidayMultiplier:   decimal.NewFromFloat(1.5),
		NightMultiplier:     decimal.NewFromInt(1),
		NightStart:          "22:00",
		NightEnd:            "06:00",
	}
}
