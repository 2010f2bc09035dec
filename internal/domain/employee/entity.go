package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type EmploymentType string

const (
	EmploymentTypeHourly EmploymentType = "hourly"
	EmploymentTypeSalary EmploymentType = "salary"
)

// Employee is the payroll view of an employee record. Salaried employees
// store their pay as an hourly equivalent; AnnualSalary converts it back
// with the annual-hours constant supplied by the statutory fixture.
type Employee struct {
	ID                string
	TenantID          string
	FirstName         string
	LastName          string
	Email             string
	HourlyRate        decimal.Decimal
	EmploymentType    EmploymentType
	TaxCode           string
	KiwiSaverEnrolled bool
	KiwiSaverRate     decimal.Decimal // percent, e.g. 3 for 3%
	ShiftRuleGroupID  *string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// AnnualSalary is the annual equivalent of the stored hourly rate.
func (e Employee) AnnualSalary(annualWorkHours decimal.Decimal) decimal.Decimal {
	return e.HourlyRate.Mul(annualWorkHours)
}
