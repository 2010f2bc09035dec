package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/payroll"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== RUNS ==========

// AcquireTenantLock takes a transaction-scoped advisory lock keyed on the
// tenant, released automatically at commit or rollback.
func (r *payrollRepository) AcquireTenantLock(ctx context.Context, tenantID string) error {
	q := querier(ctx, r.db)

	h := fnv.New64a()
	h.Write([]byte(tenantID))

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(h.Sum64())); err != nil {
		return fmt.Errorf("failed to acquire tenant lock: %w", err)
	}
	return nil
}

func (r *payrollRepository) CreateRun(ctx context.Context, run payroll.Run) (payroll.Run, error) {
	q := querier(ctx, r.db)

	query := `
		INSERT INTO payroll_runs (
			id, tenant_id, period_start, period_end, processed_by, status,
			employee_count, total_gross, total_net
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		run.ID, run.TenantID, run.PeriodStart, run.PeriodEnd, run.ProcessedBy, run.Status,
		run.EmployeeCount, run.TotalGross, run.TotalNet,
	).Scan(&run.CreatedAt, &run.UpdatedAt)
	if err != nil {
		return payroll.Run{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	return run, nil
}

func (r *payrollRepository) GetRun(ctx context.Context, id string) (payroll.Run, error) {
	q := querier(ctx, r.db)

	query := `
		SELECT id, tenant_id, period_start, period_end, processed_by, status,
			   employee_count, total_gross, total_net, created_at, updated_at
		FROM payroll_runs
		WHERE id = $1
	`

	var run payroll.Run
	err := q.QueryRow(ctx, query, id).Scan(
		&run.ID, &run.TenantID, &run.PeriodStart, &run.PeriodEnd, &run.ProcessedBy, &run.Status,
		&run.EmployeeCount, &run.TotalGross, &run.TotalNet, &run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	return run, nil
}

func (r *payrollRepository) ListRunsByTenant(ctx context.Context, tenantID string) ([]payroll.Run, error) {
	q := querier(ctx, r.db)

	query := `
		SELECT id, tenant_id, period_start, period_end, processed_by, status,
			   employee_count, total_gross, total_net, created_at, updated_at
		FROM payroll_runs
		WHERE tenant_id = $1
		ORDER BY period_start DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

func (r *payrollRepository) ListOverlappingRuns(ctx context.Context, tenantID string, start, end time.Time) ([]payroll.Run, error) {
	q := querier(ctx, r.db)

	query := `
		SELECT id, tenant_id, period_start, period_end, processed_by, status,
			   employee_count, total_gross, total_net, created_at, updated_at
		FROM payroll_runs
		WHERE tenant_id = $1
		  AND status NOT IN ('voided', 'rejected')
		  AND period_start <= $3
		  AND period_end >= $2
		ORDER BY period_start
	`

	rows, err := q.Query(ctx, query, tenantID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

func scanRuns(rows pgx.Rows) ([]payroll.Run, error) {
	var runs []payroll.Run
	for rows.Next() {
		var run payroll.Run
		err := rows.Scan(
			&run.ID, &run.TenantID, &run.PeriodStart, &run.PeriodEnd, &run.ProcessedBy, &run.Status,
			&run.EmployeeCount, &run.TotalGross, &run.TotalNet, &run.CreatedAt, &run.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *payrollRepository) UpdateRunStatus(ctx context.Context, id string, status payroll.RunStatus) error {
	q := querier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE payroll_runs SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update run status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}
	return nil
}

// ========== PAYSLIPS ==========

func (r *payrollRepository) CreatePayslips(ctx context.Context, payslips []payroll.Payslip) error {
	q := querier(ctx, r.db)

	query := `
		INSERT INTO payslips (
			id, run_id, employee_id, gross_pay, paye_tax,
			kiwisaver_employee, kiwisaver_employer, acc_levy, acc_details,
			leave_details, net_pay, minimum_wage_check, voided
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, false)
	`

	for _, p := range payslips {
		accDetails, err := json.Marshal(p.ACCDetails)
		if err != nil {
			return fmt.Errorf("failed to marshal acc details: %w", err)
		}
		leaveDetails, err := json.Marshal(p.LeaveDetails)
		if err != nil {
			return fmt.Errorf("failed to marshal leave details: %w", err)
		}
		minimumWage, err := json.Marshal(p.MinimumWage)
		if err != nil {
			return fmt.Errorf("failed to marshal minimum wage check: %w", err)
		}

		_, err = q.Exec(ctx, query,
			p.ID, p.RunID, p.EmployeeID, p.GrossPay, p.PAYETax,
			p.KiwiSaverEmployee, p.KiwiSaverEmployer, p.ACCLevy, accDetails,
			leaveDetails, p.NetPay, minimumWage,
		)
		if err != nil {
			return fmt.Errorf("failed to create payslip for employee %s: %w", p.EmployeeID, err)
		}
	}
	return nil
}

const payslipColumns = `
	id, run_id, employee_id, gross_pay, paye_tax,
	kiwisaver_employee, kiwisaver_employer, acc_levy, acc_details,
	leave_details, net_pay, minimum_wage_check, voided, created_at
`

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var p payroll.Payslip
	var accDetails, leaveDetails, minimumWage []byte

	err := row.Scan(
		&p.ID, &p.RunID, &p.EmployeeID, &p.GrossPay, &p.PAYETax,
		&p.KiwiSaverEmployee, &p.KiwiSaverEmployer, &p.ACCLevy, &accDetails,
		&leaveDetails, &p.NetPay, &minimumWage, &p.Voided, &p.CreatedAt,
	)
	if err != nil {
		return payroll.Payslip{}, err
	}

	if err := json.Unmarshal(accDetails, &p.ACCDetails); err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to unmarshal acc details: %w", err)
	}
	if len(leaveDetails) > 0 {
		if err := json.Unmarshal(leaveDetails, &p.LeaveDetails); err != nil {
			return payroll.Payslip{}, fmt.Errorf("failed to unmarshal leave details: %w", err)
		}
	}
	if err := json.Unmarshal(minimumWage, &p.MinimumWage); err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to unmarshal minimum wage check: %w", err)
	}
	return p, nil
}

func (r *payrollRepository) ListPayslipsByRun(ctx context.Context, runID string) ([]payroll.Payslip, error) {
	q := querier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+payslipColumns+` FROM payslips WHERE run_id = $1 ORDER BY employee_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payroll.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, err
		}
		payslips = append(payslips, p)
	}
	return payslips, rows.Err()
}

func (r *payrollRepository) GetPayslip(ctx context.Context, id string) (payroll.Payslip, error) {
	q := querier(ctx, r.db)

	p, err := scanPayslip(q.QueryRow(ctx, `SELECT `+payslipColumns+` FROM payslips WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}
	return p, nil
}

func (r *payrollRepository) VoidPayslipsByRun(ctx context.Context, runID string) error {
	q := querier(ctx, r.db)

	if _, err := q.Exec(ctx, `UPDATE payslips SET voided = true WHERE run_id = $1`, runID); err != nil {
		return fmt.Errorf("failed to void payslips: %w", err)
	}
	return nil
}

func (r *payrollRepository) YTDLeviableEarnings(ctx context.Context, employeeID string, yearStart time.Time) (decimal.Decimal, error) {
	q := querier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(p.gross_pay), 0)
		FROM payslips p
		JOIN payroll_runs r ON r.id = p.run_id
		WHERE p.employee_id = $1
		  AND p.voided = false
		  AND r.period_start >= $2
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, yearStart).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum YTD earnings: %w", err)
	}
	return total, nil
}

// ========== CALCULATION LOGS ==========

func (r *payrollRepository) CreateCalculationLogs(ctx context.Context, logs []payroll.CalculationLog) error {
	q := querier(ctx, r.db)

	query := `
		INSERT INTO calculation_logs (id, run_id, employee_id, log_type, details)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, l := range logs {
		details, err := json.Marshal(l.Details)
		if err != nil {
			return fmt.Errorf("failed to marshal log details: %w", err)
		}
		if _, err := q.Exec(ctx, query, l.ID, l.RunID, l.EmployeeID, l.LogType, details); err != nil {
			return fmt.Errorf("failed to create calculation log: %w", err)
		}
	}
	return nil
}

func (r *payrollRepository) ListCalculationLogsByRun(ctx context.Context, runID string) ([]payroll.CalculationLog, error) {
	q := querier(ctx, r.db)

	query := `
		SELECT id, run_id, employee_id, log_type, details, created_at
		FROM calculation_logs
		WHERE run_id = $1
		ORDER BY employee_id, created_at
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculation logs: %w", err)
	}
	defer rows.Close()

	var logs []payroll.CalculationLog
	for rows.Next() {
		var l payroll.CalculationLog
		var details []byte
		if err := rows.Scan(&l.ID, &l.RunID, &l.EmployeeID, &l.LogType, &details, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan calculation log: %w", err)
		}
		if err := json.Unmarshal(details, &l.Details); err != nil {
			return nil, fmt.Errorf("failed to unmarshal log details: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// ========== AUDITS ==========

func (r *payrollRepository) CreateAudit(ctx context.Context, audit payroll.RunAudit) error {
	q := querier(ctx, r.db)

	query := `
		INSERT INTO run_audits (id, run_id, action, actor_id, reason)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := q.Exec(ctx, query, audit.ID, audit.RunID, audit.Action, audit.ActorID, audit.Reason); err != nil {
		return fmt.Errorf("failed to create run audit: %w", err)
	}
	return nil
}

func (r *payrollRepository) ListAuditsByRun(ctx context.Context, runID string) ([]payroll.RunAudit, error) {
	q := querier(ctx, r.db)

	query := `
		SELECT id, run_id, action, actor_id, reason, created_at
		FROM run_audits
		WHERE run_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list run audits: %w", err)
	}
	defer rows.Close()

	var audits []payroll.RunAudit
	for rows.Next() {
		var a payroll.RunAudit
		if err := rows.Scan(&a.ID, &a.RunID, &a.Action, &a.ActorID, &a.Reason, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run audit: %w", err)
		}
		audits = append(audits, a)
	}
	return audits, rows.Err()
}

// ========== BALANCE ADJUSTMENTS ==========

func (r *payrollRepository) CreateBalanceAdjustments(ctx context.Context, adjustments []payroll.BalanceAdjustment) error {
	q := querier(ctx, r.db)

	query := `
		INSERT INTO balance_adjustments (id, run_id, employee_id, leave_type, kind, hours)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, a := range adjustments {
		if _, err := q.Exec(ctx, query, a.ID, a.RunID, a.EmployeeID, a.LeaveType, a.Kind, a.Hours); err != nil {
			return fmt.Errorf("failed to create balance adjustment: %w", err)
		}
	}
	return nil
}

func (r *payrollRepository) ListBalanceAdjustmentsByRun(ctx context.Context, runID string) ([]payroll.BalanceAdjustment, error) {
	q := querier(ctx, r.db)

	query := `
		SELECT id, run_id, employee_id, leave_type, kind, hours
		FROM balance_adjustments
		WHERE run_id = $1
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balance adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []payroll.BalanceAdjustment
	for rows.Next() {
		var a payroll.BalanceAdjustment
		if err := rows.Scan(&a.ID, &a.RunID, &a.EmployeeID, &a.LeaveType, &a.Kind, &a.Hours); err != nil {
			return nil, fmt.Errorf("failed to scan balance adjustment: %w", err)
		}
		adjustments = append(adjustments, a)
	}
	return adjustments, rows.Err()
}
