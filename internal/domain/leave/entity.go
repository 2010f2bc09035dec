package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCancelled RequestStatus = "cancelled"
	// RequestStatusPaid marks requests a completed payroll run has paid
	// out. Rollback returns them to approved.
	RequestStatusPaid RequestStatus = "paid"
)

const (
	TypeAnnual      = "annual"
	TypeSick        = "sick"
	TypeBereavement = "bereavement"
	TypeAlternative = "alternative"
)

// Balance tracks one employee's entitlement for a leave type within a
// year window. BalanceHours == AccruedHours - TakenHours at all times;
// the repository enforces it by mutating all three in one statement.
type Balance struct {
	ID           string
	EmployeeID   string
	LeaveType    string
	AccruedHours decimal.Decimal
	TakenHours   decimal.Decimal
	BalanceHours decimal.Decimal
	YearStart    time.Time
	UpdatedAt    time.Time
}

type Request struct {
	ID             string
	TenantID       string
	EmployeeID     string
	Type           string
	StartDate      time.Time
	EndDate        time.Time
	RequestedHours decimal.Decimal
	Status         RequestStatus
	Reason         *string
	ApprovedBy     *string
	ApprovedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
