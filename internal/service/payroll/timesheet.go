package payroll

import (
	"time"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/attendance"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

const minutesPerDay = 24 * 60

// DayHours is the net worked time for one calendar day, with the entries
// that produced it.
type DayHours struct {
	Date    time.Time
	Hours   decimal.Decimal
	Entries []attendance.Entry
}

type TimesheetSummary struct {
	Days       []DayHours
	TotalHours decimal.Decimal
	EntryCount int
}

// parseClock converts a "HH:MM" wall-clock string to minutes from midnight.
func parseClock(clock string) (int, bool) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// entryNetMinutes computes (end - start) - break for one entry. An end
// before the start means the shift crossed midnight, so 24h is added
// before the break is subtracted.
func entryNetMinutes(e attendance.Entry) (int, string) {
	start, ok := parseClock(e.StartTime)
	if !ok {
		return 0, "invalid start time " + e.StartTime
	}
	end, ok := parseClock(e.EndTime)
	if !ok {
		return 0, "invalid end time " + e.EndTime
	}
	if e.BreakMinutes < 0 {
		return 0, "negative break minutes"
	}

	worked := end - start
	if end < start {
		worked += minutesPerDay
	}
	worked -= e.BreakMinutes

	if worked <= 0 {
		return 0, "net worked hours must be positive"
	}
	if worked > minutesPerDay {
		return 0, "net worked hours exceed 24 hours"
	}
	return worked, ""
}

// AccumulateTime converts raw attendance entries into net worked hours
// per day and in total. A malformed entry aborts the whole employee with
// a ComputationError naming the entry.
func AccumulateTime(employeeID string, entries []attendance.Entry) (TimesheetSummary, error) {
	summary := TimesheetSummary{TotalHours: decimal.Zero}
	byDate := make(map[string]int)

	for _, e := range entries {
		minutes, problem := entryNetMinutes(e)
		if problem != "" {
			return TimesheetSummary{}, &payroll.ComputationError{
				EmployeeID: employeeID,
				EntryDate:  e.Date.Format("2006-01-02"),
				Reason:     problem,
			}
		}

		hours := decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60))
		key := e.Date.Format("2006-01-02")
		if idx, seen := byDate[key]; seen {
			summary.Days[idx].Hours = summary.Days[idx].Hours.Add(hours)
			summary.Days[idx].Entries = append(summary.Days[idx].Entries, e)
		} else {
			byDate[key] = len(summary.Days)
			summary.Days = append(summary.Days, DayHours{
				Date:    e.Date,
				Hours:   hours,
				Entries: []attendance.Entry{e},
			})
		}
		summary.TotalHours = summary.TotalHours.Add(hours)
		summary.EntryCount++
	}

	return summary, nil
}
