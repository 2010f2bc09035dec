package payroll

import (
	"testing"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/attendance"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/employee"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/holiday"
	leavedomain "github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/leave"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/payroll"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/shiftrule"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/fixtures"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hourlyEmployee(rate int64) employee.Employee {
	return employee.Employee{
		ID:                "emp-1",
		TenantID:          "tenant-1",
		FirstName:         "Aroha",
		LastName:          "Ngata",
		HourlyRate:        decimal.NewFromInt(rate),
		EmploymentType:    employee.EmploymentTypeHourly,
		TaxCode:           "M",
		KiwiSaverEnrolled: true,
		KiwiSaverRate:     decimal.NewFromInt(3),
		IsActive:          true,
	}
}

func baseInput(emp employee.Employee, entries []attendance.Entry) EmployeeInput {
	return EmployeeInput{
		Employee:  emp,
		Entries:   entries,
		Rules:     shiftrule.Default(),
		Calendar:  holiday.Calendar{},
		Frequency: FrequencyFortnightly,
		Statutory: fixtures.NZStatutory(),
	}
}

func logTypes(logs []payroll.CalculationLog) []payroll.LogType {
	types := make([]payroll.LogType, 0, len(logs))
	for _, l := range logs {
		types = append(types, l.LogType)
	}
	return types
}

func TestCalculateEmployee(t *testing.T) {
	t.Run("hourly day with overtime", func(t *testing.T) {
		in := baseInput(hourlyEmployee(25), []attendance.Entry{
			entry("2025-03-03", "08:00", "18:00", 0),
		})

		result, err := CalculateEmployee(in)
		require.NoError(t, err)

		// 8h at 1x + 2h at 1.5x, all at $25.
		assert.Equal(t, "275", result.Payslip.GrossPay.String())
		assert.Equal(t, "28.88", result.Payslip.PAYETax.String())
		assert.Equal(t, "8.25", result.Payslip.KiwiSaverEmployee.String())
		assert.Equal(t, "4.4", result.Payslip.ACCLevy.String())
		assert.Equal(t, "233.47", result.Payslip.NetPay.String())
		assert.True(t, result.Payslip.MinimumWage.Compliant)

		assert.Equal(t, []payroll.LogType{
			payroll.LogTypeTimesheetSummary,
			payroll.LogTypeHourly,
			payroll.LogTypeKiwiSaver,
			payroll.LogTypeACC,
			payroll.LogTypeTax,
			payroll.LogTypeFinal,
		}, logTypes(result.Logs))

		assert.Equal(t, []string{"entry-2025-03-03-08:00"}, result.AttendanceIDs)
		assert.Empty(t, result.Adjustments)
	})

	t.Run("net pay reconciles against deductions", func(t *testing.T) {
		in := baseInput(hourlyEmployee(30), []attendance.Entry{
			entry("2025-03-03", "09:00", "17:00", 0),
			entry("2025-03-04", "09:00", "17:00", 0),
		})

		result, err := CalculateEmployee(in)
		require.NoError(t, err)

		p := result.Payslip
		deductions := p.PAYETax.Add(p.KiwiSaverEmployee).Add(p.ACCLevy)
		assert.True(t, p.GrossPay.Sub(deductions).Equal(p.NetPay))
	})

	t.Run("recomputation is deterministic", func(t *testing.T) {
		in := baseInput(hourlyEmployee(20), []attendance.Entry{
			entry("2025-03-03", "08:00", "18:00", 0),
			entry("2025-03-04", "22:00", "06:00", 0),
		})

		first, err := CalculateEmployee(in)
		require.NoError(t, err)
		second, err := CalculateEmployee(in)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("salaried employee is paid by period", func(t *testing.T) {
		emp := hourlyEmployee(40)
		emp.EmploymentType = employee.EmploymentTypeSalary
		in := baseInput(emp, nil)

		result, err := CalculateEmployee(in)
		require.NoError(t, err)

		// 40/h x 2080h = 83200 annual, over 26 periods.
		assert.Equal(t, "3200", result.Payslip.GrossPay.String())
		assert.Contains(t, logTypes(result.Logs), payroll.LogTypeSalary)
		assert.NotContains(t, logTypes(result.Logs), payroll.LogTypeHourly)
	})

	t.Run("worked public holiday pays time and a half with three hour floor", func(t *testing.T) {
		anzac := day("2025-04-25") // Friday
		cal := holiday.NewCalendar([]holiday.PublicHoliday{{Date: anzac, Name: "Anzac Day"}})

		history := []attendance.Entry{
			entry("2025-03-28", "09:00", "17:00", 0),
			entry("2025-04-04", "09:00", "17:00", 0),
			entry("2025-04-11", "09:00", "17:00", 0),
			entry("2025-04-18", "09:00", "17:00", 0),
		}

		in := baseInput(hourlyEmployee(25), []attendance.Entry{
			entry("2025-04-25", "09:00", "14:00", 0), // 5h worked
		})
		in.Calendar = cal
		in.History = history

		result, err := CalculateEmployee(in)
		require.NoError(t, err)

		// 5h x 1.5 x $25
		assert.Equal(t, "187.5", result.Payslip.GrossPay.String())

		require.Len(t, result.Adjustments, 1)
		assert.Equal(t, payroll.AdjustmentAccrual, result.Adjustments[0].Kind)
		assert.Equal(t, leavedomain.TypeAlternative, result.Adjustments[0].LeaveType)
		assert.Equal(t, "8", result.Adjustments[0].Hours.String())

		require.Len(t, result.Payslip.LeaveDetails, 2)
		assert.Equal(t, "public_holiday_worked", result.Payslip.LeaveDetails[0].Type)
		assert.Equal(t, "alternative_holiday", result.Payslip.LeaveDetails[1].Type)
	})

	t.Run("short holiday shift on an otherwise-working day pays three hours", func(t *testing.T) {
		anzac := day("2025-04-25")
		cal := holiday.NewCalendar([]holiday.PublicHoliday{{Date: anzac, Name: "Anzac Day"}})

		in := baseInput(hourlyEmployee(25), []attendance.Entry{
			entry("2025-04-25", "09:00", "11:00", 0), // 2h worked
		})
		in.Calendar = cal
		in.History = []attendance.Entry{
			entry("2025-03-28", "09:00", "17:00", 0),
			entry("2025-04-04", "09:00", "17:00", 0),
			entry("2025-04-11", "09:00", "17:00", 0),
		}

		result, err := CalculateEmployee(in)
		require.NoError(t, err)

		// max(2, 3) x 1.5 x $25
		assert.Equal(t, "112.5", result.Payslip.GrossPay.String())
		assert.Len(t, result.Adjustments, 1)
	})

	t.Run("holiday not otherwise worked pays actual hours and earns no day in lieu", func(t *testing.T) {
		anzac := day("2025-04-25")
		cal := holiday.NewCalendar([]holiday.PublicHoliday{{Date: anzac, Name: "Anzac Day"}})

		in := baseInput(hourlyEmployee(25), []attendance.Entry{
			entry("2025-04-25", "09:00", "11:00", 0),
		})
		in.Calendar = cal

		result, err := CalculateEmployee(in)
		require.NoError(t, err)

		// 2h x 1.5 x $25, no floor, no alternative holiday.
		assert.Equal(t, "75", result.Payslip.GrossPay.String())
		assert.Empty(t, result.Adjustments)
	})

	t.Run("approved leave is valued and marked for payment", func(t *testing.T) {
		req := leavedomain.Request{
			ID:             "req-1",
			EmployeeID:     "emp-1",
			Type:           leavedomain.TypeAnnual,
			StartDate:      day("2025-03-05"),
			EndDate:        day("2025-03-05"),
			RequestedHours: decimal.NewFromInt(8),
			Status:         leavedomain.RequestStatusApproved,
		}

		in := baseInput(hourlyEmployee(25), nil)
		in.LeaveRequests = []leavedomain.Request{req}

		result, err := CalculateEmployee(in)
		require.NoError(t, err)

		// Ordinary weekly pay 25 x 8 x 5 = 1000; one day = 200.
		assert.Equal(t, "200", result.Payslip.GrossPay.String())
		assert.Equal(t, []string{"req-1"}, result.LeaveRequestIDs)
		assert.Contains(t, logTypes(result.Logs), payroll.LogTypeLeave)
	})

	t.Run("weekly overtime policy settles a premium per week", func(t *testing.T) {
		rules := shiftrule.Default()
		rules.OvertimePolicy = shiftrule.OvertimePolicyWeekly

		// Five 9h days in one ISO week: 45h, 5h over the 40h threshold.
		entries := []attendance.Entry{
			entry("2025-03-03", "08:00", "17:00", 0),
			entry("2025-03-04", "08:00", "17:00", 0),
			entry("2025-03-05", "08:00", "17:00", 0),
			entry("2025-03-06", "08:00", "17:00", 0),
			entry("2025-03-07", "08:00", "17:00", 0),
		}
		in := baseInput(hourlyEmployee(20), entries)
		in.Rules = rules

		result, err := CalculateEmployee(in)
		require.NoError(t, err)

		// 45h x $20 + premium 4h x 0.5 x $20 + 1h x 1 x $20
		assert.Equal(t, "960", result.Payslip.GrossPay.String())
	})

	t.Run("malformed entry aborts only this employee", func(t *testing.T) {
		in := baseInput(hourlyEmployee(20), []attendance.Entry{
			entry("2025-03-03", "bad", "17:00", 0),
		})

		_, err := CalculateEmployee(in)
		var compErr *payroll.ComputationError
		require.ErrorAs(t, err, &compErr)
	})

	t.Run("unknown tax code fails the employee", func(t *testing.T) {
		emp := hourlyEmployee(20)
		emp.TaxCode = "XX"
		in := baseInput(emp, []attendance.Entry{
			entry("2025-03-03", "09:00", "17:00", 0),
		})

		_, err := CalculateEmployee(in)
		require.ErrorIs(t, err, payroll.ErrUnknownTaxCode)
	})

	t.Run("sub-minimum effective rate is flagged but not blocked", func(t *testing.T) {
		in := baseInput(hourlyEmployee(18), []attendance.Entry{
			entry("2025-03-03", "09:00", "17:00", 0),
		})

		result, err := CalculateEmployee(in)
		require.NoError(t, err)
		assert.False(t, result.Payslip.MinimumWage.Compliant)
		assert.True(t, result.Payslip.GrossPay.IsPositive())
	})
}
