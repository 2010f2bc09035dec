package postgresql

import (
	"context"
	"fmt"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/employee"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, tenant_id, first_name, last_name, email, hourly_rate, employment_type,
	tax_code, kiwisaver_enrolled, kiwisaver_rate, shift_rule_group_id, is_active,
	created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.TenantID, &e.FirstName, &e.LastName, &e.Email, &e.HourlyRate, &e.EmploymentType,
		&e.TaxCode, &e.KiwiSaverEnrolled, &e.KiwiSaverRate, &e.ShiftRuleGroupID, &e.IsActive,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepository) GetByID(ctx context.Context, id string, tenantID string) (employee.Employee, error) {
	q := querier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1 AND tenant_id = $2`, id, tenantID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

func (r *employeeRepository) GetActiveByTenantID(ctx context.Context, tenantID string) ([]employee.Employee, error) {
	q := querier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE tenant_id = $1 AND is_active = true ORDER BY last_name, first_name`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
