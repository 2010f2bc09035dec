package attendance

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	// StatusConsumed marks entries a completed payroll run has paid out.
	// Rollback returns them to approved.
	StatusConsumed Status = "consumed"
)

// Entry is one raw attendance record. Clock times are wall-clock "HH:MM"
// strings; an end before the start means the shift crossed midnight.
type Entry struct {
	ID           string
	TenantID     string
	EmployeeID   string
	Date         time.Time
	StartTime    string
	EndTime      string
	BreakMinutes int
	Description  *string
	Status       Status
	RunID        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
