package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/attendance"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const entryColumns = `
	id, tenant_id, employee_id, date, start_time, end_time, break_minutes,
	description, status, run_id, created_at, updated_at
`

func scanEntries(rows pgx.Rows) ([]attendance.Entry, error) {
	var entries []attendance.Entry
	for rows.Next() {
		var e attendance.Entry
		err := rows.Scan(
			&e.ID, &e.TenantID, &e.EmployeeID, &e.Date, &e.StartTime, &e.EndTime, &e.BreakMinutes,
			&e.Description, &e.Status, &e.RunID, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *attendanceRepository) ListApprovedInPeriod(ctx context.Context, tenantID string, start, end time.Time) ([]attendance.Entry, error) {
	q := querier(ctx, r.db)

	query := `
		SELECT ` + entryColumns + `
		FROM attendance_entries
		WHERE tenant_id = $1 AND status = 'approved' AND date BETWEEN $2 AND $3
		ORDER BY employee_id, date, start_time
	`

	rows, err := q.Query(ctx, query, tenantID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved attendance: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (r *attendanceRepository) ListByEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Entry, error) {
	q := querier(ctx, r.db)

	query := `
		SELECT ` + entryColumns + `
		FROM attendance_entries
		WHERE employee_id = $1 AND status IN ('approved', 'consumed') AND date BETWEEN $2 AND $3
		ORDER BY date, start_time
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (r *attendanceRepository) CountUnapprovedInPeriod(ctx context.Context, tenantID string, start, end time.Time) (int, error) {
	q := querier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM attendance_entries
		WHERE tenant_id = $1 AND status IN ('pending', 'rejected') AND date BETWEEN $2 AND $3
	`

	var count int
	if err := q.QueryRow(ctx, query, tenantID, start, end).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unapproved attendance: %w", err)
	}
	return count, nil
}

// SumApprovedHours totals net worked hours in SQL. A negative raw span
// means the shift crossed midnight, so a day is added back before the
// break is subtracted.
func (r *attendanceRepository) SumApprovedHours(ctx context.Context, employeeID string, start, end time.Time) (decimal.Decimal, error) {
	q := querier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(
			(EXTRACT(EPOCH FROM (end_time::time - start_time::time)) / 60
			 + CASE WHEN end_time::time < start_time::time THEN 1440 ELSE 0 END
			 - break_minutes) / 60.0
		), 0)
		FROM attendance_entries
		WHERE employee_id = $1 AND status IN ('approved', 'consumed') AND date BETWEEN $2 AND $3
	`

	var hours decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&hours); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum approved hours: %w", err)
	}
	return hours, nil
}

func (r *attendanceRepository) MarkConsumed(ctx context.Context, runID string, entryIDs []string) error {
	if len(entryIDs) == 0 {
		return nil
	}
	q := querier(ctx, r.db)

	query := `
		UPDATE attendance_entries
		SET status = 'consumed', run_id = $1, updated_at = NOW()
		WHERE id = ANY($2) AND status = 'approved'
	`

	tag, err := q.Exec(ctx, query, runID, entryIDs)
	if err != nil {
		return fmt.Errorf("failed to mark attendance consumed: %w", err)
	}
	if int(tag.RowsAffected()) != len(entryIDs) {
		return fmt.Errorf("expected to consume %d entries, consumed %d", len(entryIDs), tag.RowsAffected())
	}
	return nil
}

func (r *attendanceRepository) ReopenForRun(ctx context.Context, runID string) error {
	q := querier(ctx, r.db)

	query := `
		UPDATE attendance_entries
		SET status = 'approved', run_id = NULL, updated_at = NOW()
		WHERE run_id = $1 AND status = 'consumed'
	`

	if _, err := q.Exec(ctx, query, runID); err != nil {
		return fmt.Errorf("failed to reopen attendance: %w", err)
	}
	return nil
}
