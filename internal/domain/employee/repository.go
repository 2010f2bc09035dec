package employee

import "context"

// EmployeeRepository is read-only: employee records are owned by the HR
// editing surface, the payroll engine only consumes them.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, tenantID string) (Employee, error)
	GetActiveByTenantID(ctx context.Context, tenantID string) ([]Employee, error)
}
