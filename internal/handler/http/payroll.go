package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/employee"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/payroll"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/handler/http/response"
	payslippdf "github.com/SahejChandok/Ask-My-HR-sub000/internal/pkg/payslip"
	payrollservice "github.com/SahejChandok/Ask-My-HR-sub000/internal/service/payroll"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	ValidatePeriod(w http.ResponseWriter, r *http.Request)
	Process(w http.ResponseWriter, r *http.Request)
	ListRuns(w http.ResponseWriter, r *http.Request)
	GetRun(w http.ResponseWriter, r *http.Request)
	Rollback(w http.ResponseWriter, r *http.Request)
	ListPayslips(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
	PayslipPDF(w http.ResponseWriter, r *http.Request)
	ListCalculationLogs(w http.ResponseWriter, r *http.Request)
	ListAudits(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService *payrollservice.Service
	employeeRepo   employee.EmployeeRepository
}

func NewPayrollHandler(payrollService *payrollservice.Service, employeeRepo employee.EmployeeRepository) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService, employeeRepo: employeeRepo}
}

func parsePeriod(startStr, endStr string) (time.Time, time.Time) {
	start, _ := time.Parse("2006-01-02", startStr)
	end, _ := time.Parse("2006-01-02", endStr)
	return start, end
}

// ValidatePeriod implements PayrollHandler.
func (h *PayrollHandlerImpl) ValidatePeriod(w http.ResponseWriter, r *http.Request) {
	tenantID, _, _, err := requestClaims(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req payroll.ValidatePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ValidatePeriod decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	start, end := parsePeriod(req.PeriodStart, req.PeriodEnd)
	result, err := h.payrollService.ValidatePeriod(r.Context(), tenantID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Process implements PayrollHandler.
func (h *PayrollHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	tenantID, userID, _, err := requestClaims(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req payroll.ProcessPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Process decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	start, end := parsePeriod(req.PeriodStart, req.PeriodEnd)
	result, err := h.payrollService.ProcessPayroll(r.Context(), tenantID, userID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll run completed", payroll.ProcessPayrollResponse{
		Run:      payroll.ToRunResponse(result.Run),
		Payslips: payroll.ToPayslipResponses(result.Payslips),
		Failures: result.Failures,
	})
}

// ListRuns implements PayrollHandler.
func (h *PayrollHandlerImpl) ListRuns(w http.ResponseWriter, r *http.Request) {
	tenantID, _, _, err := requestClaims(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	runs, err := h.payrollService.ListRuns(r.Context(), tenantID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]payroll.RunResponse, 0, len(runs))
	for _, run := range runs {
		result = append(result, payroll.ToRunResponse(run))
	}
	response.Success(w, result)
}

// getTenantRun loads the run named in the URL and enforces tenant scope.
func (h *PayrollHandlerImpl) getTenantRun(r *http.Request, tenantID string) (payroll.Run, error) {
	run, err := h.payrollService.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return payroll.Run{}, err
	}
	if run.TenantID != tenantID {
		return payroll.Run{}, payroll.ErrRunNotFound
	}
	return run, nil
}

// GetRun implements PayrollHandler.
func (h *PayrollHandlerImpl) GetRun(w http.ResponseWriter, r *http.Request) {
	tenantID, _, _, err := requestClaims(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	run, err := h.getTenantRun(r, tenantID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.ToRunResponse(run))
}

// Rollback implements PayrollHandler.
func (h *PayrollHandlerImpl) Rollback(w http.ResponseWriter, r *http.Request) {
	tenantID, userID, roles, err := requestClaims(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req payroll.RollbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Rollback decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	run, err := h.getTenantRun(r, tenantID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.payrollService.RollbackRun(r.Context(), run.ID, userID, roles, req.Reason); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run rolled back", payroll.RollbackResponse{Success: true})
}

// ListPayslips implements PayrollHandler.
func (h *PayrollHandlerImpl) ListPayslips(w http.ResponseWriter, r *http.Request) {
	tenantID, _, _, err := requestClaims(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	run, err := h.getTenantRun(r, tenantID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	payslips, err := h.payrollService.ListPayslips(r.Context(), run.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.ToPayslipResponses(payslips))
}

// getTenantPayslip loads the payslip named in the URL and its run,
// enforcing tenant scope.
func (h *PayrollHandlerImpl) getTenantPayslip(r *http.Request, tenantID string) (payroll.Payslip, payroll.Run, error) {
	p, err := h.payrollService.GetPayslip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return payroll.Payslip{}, payroll.Run{}, err
	}
	run, err := h.payrollService.GetRun(r.Context(), p.RunID)
	if err != nil {
		return payroll.Payslip{}, payroll.Run{}, err
	}
	if run.TenantID != tenantID {
		return payroll.Payslip{}, payroll.Run{}, payroll.ErrPayslipNotFound
	}
	return p, run, nil
}

// GetPayslip implements PayrollHandler.
func (h *PayrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	tenantID, _, _, err := requestClaims(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	p, _, err := h.getTenantPayslip(r, tenantID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.ToPayslipResponse(p))
}

// PayslipPDF implements PayrollHandler.
func (h *PayrollHandlerImpl) PayslipPDF(w http.ResponseWriter, r *http.Request) {
	tenantID, _, _, err := requestClaims(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	p, run, err := h.getTenantPayslip(r, tenantID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	emp, err := h.employeeRepo.GetByID(r.Context(), p.EmployeeID, tenantID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	pdf, err := payslippdf.RenderPDF(p, emp, run)
	if err != nil {
		slog.Error("payslip pdf render error", "error", err, "payslip_id", p.ID)
		response.InternalServerError(w, "Failed to render payslip")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="payslip-`+p.ID+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// ListCalculationLogs implements PayrollHandler.
func (h *PayrollHandlerImpl) ListCalculationLogs(w http.ResponseWriter, r *http.Request) {
	tenantID, _, _, err := requestClaims(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	run, err := h.getTenantRun(r, tenantID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	logs, err := h.payrollService.ListCalculationLogs(r.Context(), run.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, logs)
}

// ListAudits implements PayrollHandler.
func (h *PayrollHandlerImpl) ListAudits(w http.ResponseWriter, r *http.Request) {
	tenantID, _, _, err := requestClaims(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	run, err := h.getTenantRun(r, tenantID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	audits, err := h.payrollService.ListAudits(r.Context(), run.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, audits)
}
