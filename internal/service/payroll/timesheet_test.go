package payroll

import (
	"testing"
	"time"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/attendance"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func entry(date, start, end string, breakMinutes int) attendance.Entry {
	return attendance.Entry{
		ID:           "entry-" + date + "-" + start,
		EmployeeID:   "emp-1",
		Date:         day(date),
		StartTime:    start,
		EndTime:      end,
		BreakMinutes: breakMinutes,
		Status:       attendance.StatusApproved,
	}
}

func TestAccumulateTime(t *testing.T) {
	t.Run("standard day with break", func(t *testing.T) {
		summary, err := AccumulateTime("emp-1", []attendance.Entry{
			entry("2025-03-03", "09:00", "17:30", 30),
		})
		require.NoError(t, err)
		assert.Equal(t, "8", summary.TotalHours.String())
		assert.Equal(t, 1, summary.EntryCount)
		require.Len(t, summary.Days, 1)
	})

	t.Run("overnight shift crosses midnight", func(t *testing.T) {
		summary, err := AccumulateTime("emp-1", []attendance.Entry{
			entry("2025-03-03", "22:00", "06:00", 0),
		})
		require.NoError(t, err)
		assert.Equal(t, "8", summary.TotalHours.String())
	})

	t.Run("multiple entries on one day are summed", func(t *testing.T) {
		summary, err := AccumulateTime("emp-1", []attendance.Entry{
			entry("2025-03-03", "09:00", "13:00", 0),
			entry("2025-03-03", "14:00", "18:00", 0),
		})
		require.NoError(t, err)
		require.Len(t, summary.Days, 1)
		assert.Equal(t, "8", summary.Days[0].Hours.String())
		assert.Equal(t, 2, summary.EntryCount)
		assert.Len(t, summary.Days[0].Entries, 2)
	})

	t.Run("day order follows entry order", func(t *testing.T) {
		summary, err := AccumulateTime("emp-1", []attendance.Entry{
			entry("2025-03-03", "09:00", "17:00", 0),
			entry("2025-03-04", "09:00", "17:00", 0),
		})
		require.NoError(t, err)
		require.Len(t, summary.Days, 2)
		assert.Equal(t, day("2025-03-03"), summary.Days[0].Date)
		assert.Equal(t, day("2025-03-04"), summary.Days[1].Date)
	})

	t.Run("invalid clock aborts the employee", func(t *testing.T) {
		_, err := AccumulateTime("emp-1", []attendance.Entry{
			entry("2025-03-03", "25:00", "17:00", 0),
		})
		var compErr *payroll.ComputationError
		require.ErrorAs(t, err, &compErr)
		assert.Equal(t, "emp-1", compErr.EmployeeID)
		assert.Equal(t, "2025-03-03", compErr.EntryDate)
	})

	t.Run("negative break is rejected", func(t *testing.T) {
		_, err := AccumulateTime("emp-1", []attendance.Entry{
			entry("2025-03-03", "09:00", "17:00", -15),
		})
		var compErr *payroll.ComputationError
		require.ErrorAs(t, err, &compErr)
	})

	t.Run("break consuming the whole shift is rejected", func(t *testing.T) {
		_, err := AccumulateTime("emp-1", []attendance.Entry{
			entry("2025-03-03", "09:00", "10:00", 60),
		})
		var compErr *payroll.ComputationError
		require.ErrorAs(t, err, &compErr)
	})

	t.Run("no entries yields empty summary", func(t *testing.T) {
		summary, err := AccumulateTime("emp-1", nil)
		require.NoError(t, err)
		assert.True(t, summary.TotalHours.IsZero())
		assert.Empty(t, summary.Days)
	})
}
