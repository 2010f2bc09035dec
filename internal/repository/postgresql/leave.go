package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/leave"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

// ========== REQUESTS ==========

const requestColumns = `
	id, tenant_id, employee_id, type, start_date, end_date, requested_hours,
	status, reason, approved_by, approved_at, created_at, updated_at
`

func scanRequest(row pgx.Row) (leave.Request, error) {
	var req leave.Request
	err := row.Scan(
		&req.ID, &req.TenantID, &req.EmployeeID, &req.Type, &req.StartDate, &req.EndDate, &req.RequestedHours,
		&req.Status, &req.Reason, &req.ApprovedBy, &req.ApprovedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

func (r *leaveRepository) GetRequest(ctx context.Context, id string) (leave.Request, error) {
	q := querier(ctx, r.db)

	req, err := scanRequest(q.QueryRow(ctx, `SELECT `+requestColumns+` FROM leave_requests WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return req, nil
}

func (r *leaveRepository) CreateRequest(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := querier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			tenant_id, employee_id, type, start_date, end_date, requested_hours, status, reason
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.TenantID, req.EmployeeID, req.Type, req.StartDate, req.EndDate, req.RequestedHours, req.Status, req.Reason,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return req, nil
}

func (r *leaveRepository) UpdateRequestStatus(ctx context.Context, id string, status leave.RequestStatus, approvedBy *string) error {
	q := querier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, approved_by = $3, approved_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, status, approvedBy)
	if err != nil {
		return fmt.Errorf("failed to update leave request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}
	return nil
}

func (r *leaveRepository) ListApprovedInPeriod(ctx context.Context, tenantID string, start, end time.Time) ([]leave.Request, error) {
	q := querier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM leave_requests
		WHERE tenant_id = $1 AND status = 'approved' AND start_date <= $3 AND end_date >= $2
		ORDER BY employee_id, start_date
	`

	rows, err := q.Query(ctx, query, tenantID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *leaveRepository) MarkPaid(ctx context.Context, runID string, requestIDs []string) error {
	if len(requestIDs) == 0 {
		return nil
	}
	q := querier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = 'paid', run_id = $1, updated_at = NOW()
		WHERE id = ANY($2) AND status = 'approved'
	`

	tag, err := q.Exec(ctx, query, runID, requestIDs)
	if err != nil {
		return fmt.Errorf("failed to mark leave requests paid: %w", err)
	}
	if int(tag.RowsAffected()) != len(requestIDs) {
		return fmt.Errorf("expected to pay %d leave requests, paid %d", len(requestIDs), tag.RowsAffected())
	}
	return nil
}

func (r *leaveRepository) ReopenPaid(ctx context.Context, runID string) error {
	q := querier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = 'approved', run_id = NULL, updated_at = NOW()
		WHERE run_id = $1 AND status = 'paid'
	`

	if _, err := q.Exec(ctx, query, runID); err != nil {
		return fmt.Errorf("failed to reopen paid leave requests: %w", err)
	}
	return nil
}

// ========== BALANCES ==========

const balanceColumns = `
	id, employee_id, leave_type, accrued_hours, taken_hours, balance_hours, year_start, updated_at
`

func (r *leaveRepository) GetBalance(ctx context.Context, employeeID, leaveType string) (leave.Balance, error) {
	q := querier(ctx, r.db)

	var b leave.Balance
	err := q.QueryRow(ctx,
		`SELECT `+balanceColumns+` FROM leave_balances WHERE employee_id = $1 AND leave_type = $2`,
		employeeID, leaveType,
	).Scan(&b.ID, &b.EmployeeID, &b.LeaveType, &b.AccruedHours, &b.TakenHours, &b.BalanceHours, &b.YearStart, &b.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}
	return b, nil
}

func (r *leaveRepository) ListBalances(ctx context.Context, employeeID string) ([]leave.Balance, error) {
	q := querier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+balanceColumns+` FROM leave_balances WHERE employee_id = $1 ORDER BY leave_type`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		var b leave.Balance
		if err := rows.Scan(&b.ID, &b.EmployeeID, &b.LeaveType, &b.AccruedHours, &b.TakenHours, &b.BalanceHours, &b.YearStart, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

// DeductBalance checks and deducts in a single conditional UPDATE so two
// concurrent deductions can never over-draw.
func (r *leaveRepository) DeductBalance(ctx context.Context, employeeID, leaveType string, hours decimal.Decimal) error {
	q := querier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET taken_hours = taken_hours + $3, balance_hours = balance_hours - $3, updated_at = NOW()
		WHERE employee_id = $1 AND leave_type = $2 AND balance_hours >= $3
	`

	tag, err := q.Exec(ctx, query, employeeID, leaveType, hours)
	if err != nil {
		return fmt.Errorf("failed to deduct leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		balance, err := r.GetBalance(ctx, employeeID, leaveType)
		if err != nil {
			return err
		}
		return &leave.InsufficientBalanceError{Available: balance.BalanceHours, Requested: hours}
	}
	return nil
}

func (r *leaveRepository) RestoreBalance(ctx context.Context, employeeID, leaveType string, hours decimal.Decimal) error {
	q := querier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET taken_hours = taken_hours - $3, balance_hours = balance_hours + $3, updated_at = NOW()
		WHERE employee_id = $1 AND leave_type = $2
	`

	tag, err := q.Exec(ctx, query, employeeID, leaveType, hours)
	if err != nil {
		return fmt.Errorf("failed to restore leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}
	return nil
}

// AccrueBalance upserts so the first alternative-holiday credit creates
// the balance row.
func (r *leaveRepository) AccrueBalance(ctx context.Context, employeeID, leaveType string, hours decimal.Decimal) error {
	q := querier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (employee_id, leave_type, accrued_hours, taken_hours, balance_hours, year_start)
		VALUES ($1, $2, $3, 0, $3, DATE_TRUNC('year', NOW()))
		ON CONFLICT (employee_id, leave_type) DO UPDATE SET
			accrued_hours = leave_balances.accrued_hours + $3,
			balance_hours = leave_balances.balance_hours + $3,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, employeeID, leaveType, hours); err != nil {
		return fmt.Errorf("failed to accrue leave balance: %w", err)
	}
	return nil
}

func (r *leaveRepository) ReverseAccrual(ctx context.Context, employeeID, leaveType string, hours decimal.Decimal) error {
	q := querier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET accrued_hours = accrued_hours - $3, balance_hours = balance_hours - $3, updated_at = NOW()
		WHERE employee_id = $1 AND leave_type = $2
	`

	tag, err := q.Exec(ctx, query, employeeID, leaveType, hours)
	if err != nil {
		return fmt.Errorf("failed to reverse leave accrual: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}
	return nil
}
