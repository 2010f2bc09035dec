package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunStatus enum. Lifecycle: validating and computing are in-flight
// markers; completed may move to voided via rollback, which is terminal.
type RunStatus string

const (
	RunStatusDraft      RunStatus = "draft"
	RunStatusProcessing RunStatus = "processing"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusRejected   RunStatus = "rejected"
	RunStatusVoided     RunStatus = "voided"
)

// Run is one batch computation + persistence of payslips for a tenant
// over a period.
type Run struct {
	ID            string
	TenantID      string
	PeriodStart   time.Time
	PeriodEnd     time.Time
	ProcessedBy   string
	Status        RunStatus
	EmployeeCount int
	TotalGross    decimal.Decimal
	TotalNet      decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ACCDetails records the levy context so the YTD cap is auditable.
type ACCDetails struct {
	LevyRate     decimal.Decimal `json:"levy_rate"`
	YTDEarnings  decimal.Decimal `json:"ytd_earnings"`
	RemainingCap decimal.Decimal `json:"remaining_cap"`
}

type LeaveDetail struct {
	Type   string          `json:"type"`
	Hours  decimal.Decimal `json:"hours"`
	Amount decimal.Decimal `json:"amount"`
	Dates  string          `json:"dates"`
}

type MinimumWageCheck struct {
	Compliant     bool            `json:"compliant"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
	RequiredRate  decimal.Decimal `json:"required_rate"`
}

// Payslip is created once per employee per run and never edited after
// creation; rollback voids it rather than mutating amounts.
type Payslip struct {
	ID                string
	RunID             string
	EmployeeID        string
	GrossPay          decimal.Decimal
	PAYETax           decimal.Decimal
	KiwiSaverEmployee decimal.Decimal
	KiwiSaverEmployer decimal.Decimal
	ACCLevy           decimal.Decimal
	ACCDetails        ACCDetails
	LeaveDetails      []LeaveDetail
	NetPay            decimal.Decimal
	MinimumWage       MinimumWageCheck
	Voided            bool
	CreatedAt         time.Time
}

type LogType string

const (
	LogTypeTimesheetSummary LogType = "timesheet_summary"
	LogTypeHourly           LogType = "hourly_calculation"
	LogTypeSalary           LogType = "salary_calculation"
	LogTypeLeave            LogType = "leave_calculation"
	LogTypeKiwiSaver        LogType = "kiwisaver_calculation"
	LogTypeACC              LogType = "acc_calculation"
	LogTypeTax              LogType = "tax_calculation"
	LogTypeFinal            LogType = "final_calculation"
)

// CalculationLog is the append-only audit trail: at least one row per
// pipeline stage per employee per run.
type CalculationLog struct {
	ID         string         `json:"id"`
	RunID      string         `json:"run_id"`
	EmployeeID string         `json:"employee_id"`
	LogType    LogType        `json:"log_type"`
	Details    map[string]any `json:"details"`
	CreatedAt  time.Time      `json:"created_at"`
}

type AuditAction string

const (
	AuditActionCompleted  AuditAction = "completed"
	AuditActionRolledBack AuditAction = "rolled_back"
)

type RunAudit struct {
	ID        string      `json:"id"`
	RunID     string      `json:"run_id"`
	Action    AuditAction `json:"action"`
	ActorID   string      `json:"actor_id"`
	Reason    string      `json:"reason,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// BalanceAdjustment records every leave-balance mutation a run performed
// so rollback can apply the exact inverse. Hours are positive; Kind says
// which direction the run moved the balance.
type BalanceAdjustment struct {
	ID         string
	RunID      string
	EmployeeID string
	LeaveType  string
	Kind       AdjustmentKind
	Hours      decimal.Decimal
}

type AdjustmentKind string

const (
	AdjustmentDeduction AdjustmentKind = "deduction" // run deducted balance (paid leave)
	AdjustmentAccrual   AdjustmentKind = "accrual"   // run credited balance (alternative holiday)
)

// EmployeeFailure reports one employee whose calculation aborted, without
// failing the whole run.
type EmployeeFailure struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}
