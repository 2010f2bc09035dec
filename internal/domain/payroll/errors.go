package payroll

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDateRange     = errors.New("period end date is before start date")
	ErrPeriodOverlap        = errors.New("period overlaps an existing payroll run")
	ErrUnapprovedAttendance = errors.New("period contains unapproved attendance records")
	ErrNoPayableEmployees   = errors.New("no employees with positive gross pay in period")
	ErrUnknownTaxCode       = errors.New("unknown tax code")
	ErrRunNotFound          = errors.New("payroll run not found")
	ErrPayslipNotFound      = errors.New("payslip not found")
	ErrRunNotCompleted      = errors.New("payroll run is not completed")
	ErrEmptyReason          = errors.New("rollback reason is required")
	ErrNotAuthorized        = errors.New("actor is not authorized to roll back payroll runs")
)

// ComputationError aborts a single employee's calculation; the run
// carries on and reports the failure per employee.
type ComputationError struct {
	EmployeeID string
	EntryDate  string
	Reason     string
}

func (e *ComputationError) Error() string {
	if e.EntryDate != "" {
		return fmt.Sprintf("computation failed for employee %s (entry %s): %s", e.EmployeeID, e.EntryDate, e.Reason)
	}
	return fmt.Sprintf("computation failed for employee %s: %s", e.EmployeeID, e.Reason)
}

// PersistenceError marks a storage failure at commit time. The run is
// never left half-persisted: the orchestrator retries the whole commit or
// reports total failure.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "payroll persistence failed: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
