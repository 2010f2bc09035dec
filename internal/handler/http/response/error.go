package response

import (
	"errors"
	"net/http"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/employee"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/leave"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/payroll"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/shiftrule"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var persistence *payroll.PersistenceError
	if errors.As(err, &persistence) {
		InternalServerError(w, "Payroll run could not be persisted")
		return
	}

	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidDateRange):
		BadRequest(w, "Period end date is before start date", nil)
	case errors.Is(err, payroll.ErrPeriodOverlap):
		Conflict(w, "Period overlaps an existing payroll run")
	case errors.Is(err, payroll.ErrUnapprovedAttendance):
		Conflict(w, "Period contains unapproved attendance records")
	case errors.Is(err, payroll.ErrNoPayableEmployees):
		BadRequest(w, "No employees with positive gross pay in period", nil)
	case errors.Is(err, payroll.ErrUnknownTaxCode):
		BadRequest(w, "Unknown tax code", nil)
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrRunNotCompleted):
		Conflict(w, "Only completed runs can be rolled back")
	case errors.Is(err, payroll.ErrEmptyReason):
		BadRequest(w, "Rollback reason is required", nil)
	case errors.Is(err, payroll.ErrNotAuthorized):
		Forbidden(w, "Not authorized to roll back payroll runs")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrNoWorkingDays):
		BadRequest(w, "Leave span contains no working days", nil)

	// Shift rule domain errors
	case errors.Is(err, shiftrule.ErrRuleGroupNotFound):
		NotFound(w, "Shift rule group not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
