package leave

import (
	"time"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/attendance"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/employee"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/holiday"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/leave"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/shiftrule"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/fixtures"
	"github.com/shopspring/decimal"
)

const trailingWeeks = 52

// publicHolidayMinimumHours is the floor of paid hours when an employee
// works a public holiday that is an otherwise-working day.
var publicHolidayMinimumHours = decimal.NewFromInt(3)

var publicHolidayMultiplier = decimal.NewFromFloat(1.5)

// OrdinaryWeeklyPay is the statutory weekly valuation of leave: the
// greater of average weekly earnings over the trailing 52 weeks and the
// current regular weekly pay.
func OrdinaryWeeklyPay(emp employee.Employee, trailingHours decimal.Decimal, rules shiftrule.RuleGroup, st fixtures.Statutory) decimal.Decimal {
	weeks := decimal.NewFromInt(trailingWeeks)
	average := trailingHours.Mul(emp.HourlyRate).Div(weeks)

	var current decimal.Decimal
	if emp.EmploymentType == employee.EmploymentTypeSalary {
		current = emp.AnnualSalary(st.AnnualWorkHours).Div(weeks)
	} else {
		days := decimal.NewFromInt(int64(rules.StandardDaysPerWeek))
		current = emp.HourlyRate.Mul(rules.StandardHoursPerDay).Mul(days)
	}

	return decimal.Max(average, current)
}

// AverageDailyPay divides the weekly valuation across standard days.
func AverageDailyPay(ordinaryWeeklyPay decimal.Decimal, daysPerWeek int) decimal.Decimal {
	return ordinaryWeeklyPay.Div(decimal.NewFromInt(int64(daysPerWeek)))
}

// AnnualLeavePay values N days of annual leave at the average daily pay.
func AnnualLeavePay(ordinaryWeeklyPay decimal.Decimal, daysPerWeek int, days decimal.Decimal) decimal.Decimal {
	return AverageDailyPay(ordinaryWeeklyPay, daysPerWeek).Mul(days)
}

// PublicHolidayWorkedPay pays time-and-a-half on a worked public holiday.
// On an otherwise-working day at least 3 hours are paid regardless of
// actual time worked.
func PublicHolidayWorkedPay(actualHours, hourlyRate decimal.Decimal, otherwiseWorkingDay bool) (paidHours, amount decimal.Decimal) {
	paidHours = actualHours
	if otherwiseWorkingDay {
		paidHours = decimal.Max(actualHours, publicHolidayMinimumHours)
	}
	amount = paidHours.Mul(publicHolidayMultiplier).Mul(hourlyRate)
	return paidHours, amount
}

// AlternativeHolidayEarned reports whether working date earns a day in
// lieu: the date is a public holiday, at least one hour was worked, and
// the date is an otherwise-working day.
func AlternativeHolidayEarned(workedHours decimal.Decimal, isPublicHoliday, otherwiseWorkingDay bool) bool {
	return isPublicHoliday && otherwiseWorkingDay && workedHours.GreaterThanOrEqual(decimal.NewFromInt(1))
}

// IsOtherwiseWorkingDay applies the lookback heuristic: the employee
// worked the same weekday in at least 3 of the trailing 4 occurrences.
func IsOtherwiseWorkingDay(date time.Time, history []attendance.Entry) bool {
	workedDates := make(map[string]bool, len(history))
	for _, e := range history {
		workedDates[e.Date.Format("2006-01-02")] = true
	}

	worked := 0
	for week := 1; week <= 4; week++ {
		prior := date.AddDate(0, 0, -7*week)
		if workedDates[prior.Format("2006-01-02")] {
			worked++
		}
	}
	return worked >= 3
}

// WorkingDays counts the days in [start, end] that are neither weekend
// days nor public holidays.
func WorkingDays(start, end time.Time, cal holiday.Calendar) int {
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if _, isHoliday := cal.Lookup(d); isHoliday {
			continue
		}
		days++
	}
	return days
}

// RequestedHours values a leave span in hours: working days times the
// standard day length. A span with zero working days is invalid.
func RequestedHours(start, end time.Time, cal holiday.Calendar, standardHoursPerDay decimal.Decimal) (decimal.Decimal, error) {
	days := WorkingDays(start, end, cal)
	if days == 0 {
		return decimal.Zero, leave.ErrNoWorkingDays
	}
	return decimal.NewFromInt(int64(days)).Mul(standardHoursPerDay), nil
}
