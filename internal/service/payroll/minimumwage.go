package payroll

import (
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// CheckMinimumWage flags pay under the statutory floor. Advisory only:
// the flag annotates the payslip and never blocks generation. When no
// hours were worked the profile rate stands in for the effective rate.
func CheckMinimumWage(gross, hoursWorked, profileRate, minimumRate decimal.Decimal) payroll.MinimumWageCheck {
	effective := profileRate
	if hoursWorked.IsPositive() {
		effective = gross.Div(hoursWorked).Round(4)
	}
	return payroll.MinimumWageCheck{
		Compliant:     effective.GreaterThanOrEqual(minimumRate),
		EffectiveRate: effective,
		RequiredRate:  minimumRate,
	}
}
