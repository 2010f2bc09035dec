package payroll

import (
	"fmt"
	"sort"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/attendance"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/employee"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/holiday"
	leavedomain "github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/leave"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/payroll"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/shiftrule"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/fixtures"
	leavecalc "github.com/SahejChandok/Ask-My-HR-sub000/internal/service/leave"
	"github.com/shopspring/decimal"
)

// EmployeeInput carries everything one employee's calculation needs.
// Loading happens before, persistence after; the calculation itself is a
// pure function of this struct, so employees can run in parallel.
type EmployeeInput struct {
	Employee      employee.Employee
	Entries       []attendance.Entry      // approved, within the period
	LeaveRequests []leavedomain.Request   // approved, overlapping the period
	History       []attendance.Entry      // trailing 4 weeks, for the otherwise-working-day test
	TrailingHours decimal.Decimal         // worked hours over the trailing 52 weeks
	Rules         shiftrule.RuleGroup
	Calendar      holiday.Calendar
	YTDEarnings   decimal.Decimal // leviable earnings since tax-year start
	Frequency     PayFrequency
	Statutory     fixtures.Statutory
}

// EmployeeResult is one employee's computed payslip plus everything the
// orchestrator must persist or compensate later: one log per pipeline
// stage, balance adjustments for rollback, and the source records the
// run consumes.
type EmployeeResult struct {
	Payslip         payroll.Payslip
	Logs            []payroll.CalculationLog
	Adjustments     []payroll.BalanceAdjustment
	AttendanceIDs   []string
	LeaveRequestIDs []string
}

// dayClocks picks the interval boundaries for a day with possibly
// multiple entries: first clock-in, last clock-out.
func dayClocks(day DayHours) (string, string) {
	start := day.Entries[0].StartTime
	end := day.Entries[len(day.Entries)-1].EndTime
	return start, end
}

// CalculateEmployee runs the full pipeline for one employee:
// time accumulation, overtime banding, shift rating, leave pay, tax,
// KiwiSaver, ACC levy and the minimum-wage check. Errors abort only this
// employee; the caller reports them per employee and carries on.
func CalculateEmployee(in EmployeeInput) (EmployeeResult, error) {
	emp := in.Employee
	st := in.Statutory

	summary, err := AccumulateTime(emp.ID, in.Entries)
	if err != nil {
		return EmployeeResult{}, err
	}

	var result EmployeeResult
	addLog := func(logType payroll.LogType, details map[string]any) {
		result.Logs = append(result.Logs, payroll.CalculationLog{
			EmployeeID: emp.ID,
			LogType:    logType,
			Details:    details,
		})
	}

	addLog(payroll.LogTypeTimesheetSummary, map[string]any{
		"total_hours": summary.TotalHours,
		"entry_count": summary.EntryCount,
	})

	workedPay := decimal.Zero
	allowanceTotal := decimal.Zero
	holidayPay := decimal.Zero
	weekTotals := make(map[string]decimal.Decimal)
	var leaveDetails []payroll.LeaveDetail

	history := make([]attendance.Entry, 0, len(in.History)+len(in.Entries))
	history = append(history, in.History...)
	history = append(history, in.Entries...)

	for _, day := range summary.Days {
		if _, isHoliday := in.Calendar.Lookup(day.Date); isHoliday {
			otherwiseWorking := leavecalc.IsOtherwiseWorkingDay(day.Date, history)
			paidHours, amount := leavecalc.PublicHolidayWorkedPay(day.Hours, emp.HourlyRate, otherwiseWorking)
			amount = amount.Round(2)
			holidayPay = holidayPay.Add(amount)
			dateStr := day.Date.Format("2006-01-02")
			leaveDetails = append(leaveDetails, payroll.LeaveDetail{
				Type:   "public_holiday_worked",
				Hours:  paidHours,
				Amount: amount,
				Dates:  dateStr,
			})
			addLog(payroll.LogTypeLeave, map[string]any{
				"hours":  paidHours,
				"type":   "public_holiday_worked",
				"amount": amount,
				"dates":  dateStr,
			})

			if leavecalc.AlternativeHolidayEarned(day.Hours, true, otherwiseWorking) {
				result.Adjustments = append(result.Adjustments, payroll.BalanceAdjustment{
					EmployeeID: emp.ID,
					LeaveType:  leavedomain.TypeAlternative,
					Kind:       payroll.AdjustmentAccrual,
					Hours:      in.Rules.StandardHoursPerDay,
				})
				leaveDetails = append(leaveDetails, payroll.LeaveDetail{
					Type:  "alternative_holiday",
					Hours: in.Rules.StandardHoursPerDay,
					Dates: dateStr,
				})
			}
			continue
		}

		startClock, endClock := dayClocks(day)
		pay := RateInterval(RateInput{
			Date:       day.Date,
			StartClock: startClock,
			EndClock:   endClock,
			Bands:      BandDay(day.Hours, in.Rules),
			HourlyRate: emp.HourlyRate,
			Rules:      in.Rules,
		})
		workedPay = workedPay.Add(pay.RatedPay)
		allowanceTotal = allowanceTotal.Add(pay.AllowanceTotal)

		if in.Rules.OvertimePolicy == shiftrule.OvertimePolicyWeekly {
			year, week := day.Date.ISOWeek()
			key := fmt.Sprintf("%04d-%02d", year, week)
			weekTotals[key] = weekTotals[key].Add(day.Hours)
		}
	}

	// Weekly overtime settles as a premium on top of the already-rated
	// regular hours, so day multipliers and weekly banding compose
	// without stacking.
	if in.Rules.OvertimePolicy == shiftrule.OvertimePolicyWeekly {
		one := decimal.NewFromInt(1)
		keys := make([]string, 0, len(weekTotals))
		for key := range weekTotals {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			bands := BandWeek(weekTotals[key], in.Rules)
			premium := bands.Tier1.Mul(in.Rules.Tier1Multiplier.Sub(one)).
				Add(bands.Tier2.Mul(in.Rules.Tier2Multiplier.Sub(one))).
				Mul(emp.HourlyRate)
			workedPay = workedPay.Add(premium)
		}
	}

	var basePay decimal.Decimal
	if emp.EmploymentType == employee.EmploymentTypeSalary {
		annual := emp.AnnualSalary(st.AnnualWorkHours)
		basePay = annual.Div(in.Frequency.PeriodsPerYear()).Round(2)
		addLog(payroll.LogTypeSalary, map[string]any{
			"annual_salary":     annual,
			"pay_period_amount": basePay,
		})
	} else {
		basePay = workedPay.Round(2)
		addLog(payroll.LogTypeHourly, map[string]any{
			"hours_worked": summary.TotalHours,
			"hourly_rate":  emp.HourlyRate,
			"gross_pay":    basePay,
		})
	}

	leavePay := decimal.Zero
	for _, req := range in.LeaveRequests {
		owp := leavecalc.OrdinaryWeeklyPay(emp, in.TrailingHours, in.Rules, st)
		days := req.RequestedHours.Div(in.Rules.StandardHoursPerDay)
		amount := leavecalc.AnnualLeavePay(owp, in.Rules.StandardDaysPerWeek, days).Round(2)
		leavePay = leavePay.Add(amount)
		dates := req.StartDate.Format("2006-01-02") + " to " + req.EndDate.Format("2006-01-02")
		leaveDetails = append(leaveDetails, payroll.LeaveDetail{
			Type:   req.Type,
			Hours:  req.RequestedHours,
			Amount: amount,
			Dates:  dates,
		})
		addLog(payroll.LogTypeLeave, map[string]any{
			"hours":  req.RequestedHours,
			"type":   req.Type,
			"amount": amount,
			"dates":  dates,
		})
		result.LeaveRequestIDs = append(result.LeaveRequestIDs, req.ID)
	}

	gross := basePay.Add(allowanceTotal).Add(holidayPay).Add(leavePay).Round(2)

	kiwiSaver := CalculateKiwiSaver(gross, emp.KiwiSaverEnrolled, emp.KiwiSaverRate, st)
	addLog(payroll.LogTypeKiwiSaver, map[string]any{
		"employee_rate":         kiwiSaver.EmployeeRate,
		"employee_contribution": kiwiSaver.EmployeeContribution,
		"employer_contribution": kiwiSaver.EmployerContribution,
	})

	acc := CalculateACCLevy(gross, in.YTDEarnings, st)
	addLog(payroll.LogTypeACC, map[string]any{
		"levy_rate":     acc.LevyRate,
		"ytd_earnings":  acc.YTDEarnings,
		"remaining_cap": acc.RemainingCap,
	})

	tax, err := CalculateTax(gross, emp.TaxCode, in.Frequency, st)
	if err != nil {
		return EmployeeResult{}, err
	}
	addLog(payroll.LogTypeTax, map[string]any{
		"gross_pay":      gross,
		"annualized_pay": tax.AnnualizedPay,
		"tax_code":       tax.TaxCode,
		"tax_rate":       tax.EffectiveRate,
		"tax_amount":     tax.TaxAmount,
	})

	minimumWage := CheckMinimumWage(gross, summary.TotalHours, emp.HourlyRate, st.AdultMinimumWage)
	totalDeductions := tax.TaxAmount.Add(kiwiSaver.EmployeeContribution).Add(acc.Levy)
	net := gross.Sub(totalDeductions).Round(2)
	addLog(payroll.LogTypeFinal, map[string]any{
		"gross_pay":              gross,
		"total_deductions":       totalDeductions,
		"net_pay":                net,
		"minimum_wage_compliant": minimumWage.Compliant,
	})

	for _, e := range in.Entries {
		result.AttendanceIDs = append(result.AttendanceIDs, e.ID)
	}

	result.Payslip = payroll.Payslip{
		EmployeeID:        emp.ID,
		GrossPay:          gross,
		PAYETax:           tax.TaxAmount,
		KiwiSaverEmployee: kiwiSaver.EmployeeContribution,
		KiwiSaverEmployer: kiwiSaver.EmployerContribution,
		ACCLevy:           acc.Levy,
		ACCDetails: payroll.ACCDetails{
			LevyRate:     acc.LevyRate,
			YTDEarnings:  acc.YTDEarnings,
			RemainingCap: acc.RemainingCap,
		},
		LeaveDetails: leaveDetails,
		NetPay:       net,
		MinimumWage:  minimumWage,
	}
	return result, nil
}
