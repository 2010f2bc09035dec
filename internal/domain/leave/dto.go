package leave

import (
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateLeaveRequestRequest struct {
	EmployeeID string  `json:"employee_id"`
	Type       string  `json:"type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Reason     *string `json:"reason,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsInSlice(r.Type, []string{TypeAnnual, TypeSick, TypeBereavement, TypeAlternative}) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be a known leave type"})
	}
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a date in YYYY-MM-DD format"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a date in YYYY-MM-DD format"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RequestResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	Type           string          `json:"type"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	RequestedHours decimal.Decimal `json:"requested_hours"`
	Status         string          `json:"status"`
	Reason         *string         `json:"reason,omitempty"`
}

type BalanceResponse struct {
	LeaveType    string          `json:"leave_type"`
	AccruedHours decimal.Decimal `json:"accrued_hours"`
	TakenHours   decimal.Decimal `json:"taken_hours"`
	BalanceHours decimal.Decimal `json:"balance_hours"`
}

func ToRequestResponse(r Request) RequestResponse {
	return RequestResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		Type:           r.Type,
		StartDate:      r.StartDate.Format("2006-01-02"),
		EndDate:        r.EndDate.Format("2006-01-02"),
		RequestedHours: r.RequestedHours,
		Status:         string(r.Status),
		Reason:         r.Reason,
	}
}

func ToBalanceResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		LeaveType:    b.LeaveType,
		AccruedHours: b.AccruedHours,
		TakenHours:   b.TakenHours,
		BalanceHours: b.BalanceHours,
	}
}
