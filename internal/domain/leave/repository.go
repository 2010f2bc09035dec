package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type LeaveRepository interface {
	GetRequest(ctx context.Context, id string) (Request, error)
	CreateRequest(ctx context.Context, req Request) (Request, error)
	UpdateRequestStatus(ctx context.Context, id string, status RequestStatus, approvedBy *string) error

	// ListApprovedInPeriod returns approved requests overlapping the
	// period for all employees of the tenant.
	ListApprovedInPeriod(ctx context.Context, tenantID string, start, end time.Time) ([]Request, error)

	// MarkPaid / ReopenPaid move requests between approved and paid when a
	// run commits or is rolled back.
	MarkPaid(ctx context.Context, runID string, requestIDs []string) error
	ReopenPaid(ctx context.Context, runID string) error

	GetBalance(ctx context.Context, employeeID, leaveType string) (Balance, error)
	ListBalances(ctx context.Context, employeeID string) ([]Balance, error)

	// DeductBalance applies taken_hours += hours, balance_hours -= hours
	// only if balance_hours >= hours, in one statement. Returns
	// ErrInsufficientBalance (wrapped with figures) otherwise.
	DeductBalance(ctx context.Context, employeeID, leaveType string, hours decimal.Decimal) error

	// RestoreBalance is the exact compensation of DeductBalance.
	RestoreBalance(ctx context.Context, employeeID, leaveType string, hours decimal.Decimal) error

	// AccrueBalance adds entitlement (accrued_hours += hours,
	// balance_hours += hours), used for alternative-holiday credits.
	AccrueBalance(ctx context.Context, employeeID, leaveType string, hours decimal.Decimal) error

	// ReverseAccrual is the exact compensation of AccrueBalance.
	ReverseAccrual(ctx context.Context, employeeID, leaveType string, hours decimal.Decimal) error
}
