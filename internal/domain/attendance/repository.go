package attendance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type AttendanceRepository interface {
	// ListApprovedInPeriod returns approved entries for every employee of
	// the tenant inside [start, end], ordered by employee then date.
	ListApprovedInPeriod(ctx context.Context, tenantID string, start, end time.Time) ([]Entry, error)

	// ListByEmployeeInRange returns approved or consumed entries for one
	// employee, used for the otherwise-working-day lookback.
	ListByEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time) ([]Entry, error)

	// CountUnapprovedInPeriod counts entries in range whose status is not
	// approved (and not yet consumed by another run).
	CountUnapprovedInPeriod(ctx context.Context, tenantID string, start, end time.Time) (int, error)

	// SumApprovedHours totals net worked hours over a range, for the
	// trailing 52-week earnings window.
	SumApprovedHours(ctx context.Context, employeeID string, start, end time.Time) (decimal.Decimal, error)

	// MarkConsumed stamps the given entries with the run that paid them.
	MarkConsumed(ctx context.Context, runID string, entryIDs []string) error

	// ReopenForRun reverts entries consumed by runID back to approved.
	ReopenForRun(ctx context.Context, runID string) error
}
