package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRepository is the persistence port the orchestrator depends on.
// All methods take tenant or run scope so one tenant can never touch
// another's runs.
type PayrollRepository interface {
	// AcquireTenantLock serializes run creation per tenant for the
	// lifetime of the surrounding transaction. Must be called inside one.
	AcquireTenantLock(ctx context.Context, tenantID string) error

	CreateRun(ctx context.Context, run Run) (Run, error)
	GetRun(ctx context.Context, id string) (Run, error)
	ListRunsByTenant(ctx context.Context, tenantID string) ([]Run, error)
	// ListOverlappingRuns returns non-voided, non-rejected runs whose
	// [period_start, period_end] strictly overlaps [start, end].
	ListOverlappingRuns(ctx context.Context, tenantID string, start, end time.Time) ([]Run, error)
	UpdateRunStatus(ctx context.Context, id string, status RunStatus) error

	CreatePayslips(ctx context.Context, payslips []Payslip) error
	ListPayslipsByRun(ctx context.Context, runID string) ([]Payslip, error)
	GetPayslip(ctx context.Context, id string) (Payslip, error)
	VoidPayslipsByRun(ctx context.Context, runID string) error
	// YTDLeviableEarnings sums non-voided payslip gross for the employee
	// since the tax-year start, for the ACC levy cap.
	YTDLeviableEarnings(ctx context.Context, employeeID string, yearStart time.Time) (decimal.Decimal, error)

	CreateCalculationLogs(ctx context.Context, logs []CalculationLog) error
	ListCalculationLogsByRun(ctx context.Context, runID string) ([]CalculationLog, error)

	CreateAudit(ctx context.Context, audit RunAudit) error
	ListAuditsByRun(ctx context.Context, runID string) ([]RunAudit, error)

	CreateBalanceAdjustments(ctx context.Context, adjustments []BalanceAdjustment) error
	ListBalanceAdjustmentsByRun(ctx context.Context, runID string) ([]BalanceAdjustment, error)
}
