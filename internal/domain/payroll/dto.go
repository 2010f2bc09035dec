package payroll

import (
	"time"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PERIOD VALIDATION ==========

type ValidatePeriodRequest struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

func (r *ValidatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.PeriodStart); !ok {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a date in YYYY-MM-DD format"})
	}
	if _, ok := validator.IsValidDate(r.PeriodEnd); !ok {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a date in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RunConflict struct {
	RunID       string    `json:"run_id"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	Status      string    `json:"status"`
}

type ValidatePeriodResult struct {
	Valid           bool          `json:"valid"`
	ConflictingRuns []RunConflict `json:"conflicting_runs,omitempty"`
	UnapprovedCount int           `json:"unapproved_count,omitempty"`
}

// ========== PROCESSING ==========

type ProcessPayrollRequest struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

func (r *ProcessPayrollRequest) Validate() error {
	v := ValidatePeriodRequest{PeriodStart: r.PeriodStart, PeriodEnd: r.PeriodEnd}
	return v.Validate()
}

type PayslipResponse struct {
	ID                string           `json:"id"`
	RunID             string           `json:"run_id"`
	EmployeeID        string           `json:"employee_id"`
	GrossPay          decimal.Decimal  `json:"gross_pay"`
	PAYETax           decimal.Decimal  `json:"paye_tax"`
	KiwiSaverEmployee decimal.Decimal  `json:"kiwisaver_deduction"`
	KiwiSaverEmployer decimal.Decimal  `json:"employer_kiwisaver"`
	ACCLevy           decimal.Decimal  `json:"acc_levy"`
	ACCDetails        *ACCDetails      `json:"acc_levy_details,omitempty"`
	LeaveDetails      []LeaveDetail    `json:"leave_details,omitempty"`
	NetPay            decimal.Decimal  `json:"net_pay"`
	MinimumWage       MinimumWageCheck `json:"minimum_wage_check"`
	Voided            bool             `json:"voided"`
}

type RunResponse struct {
	ID            string          `json:"id"`
	TenantID      string          `json:"tenant_id"`
	PeriodStart   string          `json:"period_start"`
	PeriodEnd     string          `json:"period_end"`
	ProcessedBy   string          `json:"processed_by"`
	Status        string          `json:"status"`
	EmployeeCount int             `json:"employee_count"`
	TotalGross    decimal.Decimal `json:"total_gross"`
	TotalNet      decimal.Decimal `json:"total_net"`
	CreatedAt     time.Time       `json:"created_at"`
}

type ProcessPayrollResult struct {
	Run      Run
	Payslips []Payslip
	Failures []EmployeeFailure
}

type ProcessPayrollResponse struct {
	Run      RunResponse       `json:"run"`
	Payslips []PayslipResponse `json:"payslips"`
	Failures []EmployeeFailure `json:"failures,omitempty"`
}

// ========== ROLLBACK ==========

type RollbackRequest struct {
	Reason string `json:"reason"`
}

func (r *RollbackRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RollbackResponse struct {
	Success bool `json:"success"`
}

// ========== MAPPERS ==========

func ToRunResponse(r Run) RunResponse {
	return RunResponse{
		ID:            r.ID,
		TenantID:      r.TenantID,
		PeriodStart:   r.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     r.PeriodEnd.Format("2006-01-02"),
		ProcessedBy:   r.ProcessedBy,
		Status:        string(r.Status),
		EmployeeCount: r.EmployeeCount,
		TotalGross:    r.TotalGross,
		TotalNet:      r.TotalNet,
		CreatedAt:     r.CreatedAt,
	}
}

func ToPayslipResponse(p Payslip) PayslipResponse {
	resp := PayslipResponse{
		ID:                p.ID,
		RunID:             p.RunID,
		EmployeeID:        p.EmployeeID,
		GrossPay:          p.GrossPay,
		PAYETax:           p.PAYETax,
		KiwiSaverEmployee: p.KiwiSaverEmployee,
		KiwiSaverEmployer: p.KiwiSaverEmployer,
		ACCLevy:           p.ACCLevy,
		LeaveDetails:      p.LeaveDetails,
		NetPay:            p.NetPay,
		MinimumWage:       p.MinimumWage,
		Voided:            p.Voided,
	}
	if !p.ACCDetails.LevyRate.IsZero() {
		details := p.ACCDetails
		resp.ACCDetails = &details
	}
	return resp
}

func ToPayslipResponses(payslips []Payslip) []PayslipResponse {
	result := make([]PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		result = append(result, ToPayslipResponse(p))
	}
	return result
}
