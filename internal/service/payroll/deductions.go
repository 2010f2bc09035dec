package payroll

import (
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/fixtures"
	"github.com/shopspring/decimal"
)

type KiwiSaverResult struct {
	Enrolled             bool
	EmployeeRate         decimal.Decimal // percent
	EmployeeContribution decimal.Decimal
	EmployerContribution decimal.Decimal
}

// CalculateKiwiSaver computes the employee deduction at the elected
// percentage and the employer contribution at the fixed statutory rate,
// independent of the employee's election.
func CalculateKiwiSaver(gross decimal.Decimal, enrolled bool, employeeRatePercent decimal.Decimal, st fixtures.Statutory) KiwiSaverResult {
	result := KiwiSaverResult{Enrolled: enrolled, EmployeeRate: employeeRatePercent}
	if !enrolled {
		result.EmployeeContribution = decimal.Zero
		result.EmployerContribution = decimal.Zero
		return result
	}
	hundred := decimal.NewFromInt(100)
	result.EmployeeContribution = gross.Mul(employeeRatePercent).Div(hundred).Round(2)
	result.EmployerContribution = gross.Mul(st.KiwiSaverEmployerRate).Round(2)
	return result
}

type ACCResult struct {
	LevyRate         decimal.Decimal
	YTDEarnings      decimal.Decimal
	LeviableEarnings decimal.Decimal
	Levy             decimal.Decimal
	RemainingCap     decimal.Decimal
}

// CalculateACCLevy computes the injury levy on this period's gross,
// capped so cumulative year-to-date earnings subject to the levy never
// exceed the annual cap. Earnings past the cap attract zero levy, and
// RemainingCap records the headroom left after this period.
func CalculateACCLevy(gross, ytdEarnings decimal.Decimal, st fixtures.Statutory) ACCResult {
	headroom := st.ACCEarningsCap.Sub(ytdEarnings)
	if headroom.IsNegative() {
		headroom = decimal.Zero
	}

	leviable := decimal.Min(gross, headroom)
	return ACCResult{
		LevyRate:         st.ACCLevyRate,
		YTDEarnings:      ytdEarnings,
		LeviableEarnings: leviable,
		Levy:             leviable.Mul(st.ACCLevyRate).Round(2),
		RemainingCap:     headroom.Sub(leviable),
	}
}
