package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/employee"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/holiday"
	leavedomain "github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/leave"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/shiftrule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLeaveRepo struct {
	requests map[string]leavedomain.Request
	balances map[string]leavedomain.Balance
	nextID   int
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{
		requests: make(map[string]leavedomain.Request),
		balances: make(map[string]leavedomain.Balance),
	}
}

func balanceKey(employeeID, leaveType string) string {
	return employeeID + "/" + leaveType
}

func (r *fakeLeaveRepo) setBalance(employeeID, leaveType string, hours int64) {
	r.balances[balanceKey(employeeID, leaveType)] = leavedomain.Balance{
		EmployeeID:   employeeID,
		LeaveType:    leaveType,
		AccruedHours: decimal.NewFromInt(hours),
		BalanceHours: decimal.NewFromInt(hours),
	}
}

func (r *fakeLeaveRepo) GetRequest(_ context.Context, id string) (leavedomain.Request, error) {
	req, ok := r.requests[id]
	if !ok {
		return leavedomain.Request{}, leavedomain.ErrRequestNotFound
	}
	return req, nil
}

func (r *fakeLeaveRepo) CreateRequest(_ context.Context, req leavedomain.Request) (leavedomain.Request, error) {
	r.nextID++
	req.ID = fmt.Sprintf("req-%d", r.nextID)
	r.requests[req.ID] = req
	return req, nil
}

func (r *fakeLeaveRepo) UpdateRequestStatus(_ context.Context, id string, status leavedomain.RequestStatus, approvedBy *string) error {
	req, ok := r.requests[id]
	if !ok {
		return leavedomain.ErrRequestNotFound
	}
	req.Status = status
	req.ApprovedBy = approvedBy
	r.requests[id] = req
	return nil
}

func (r *fakeLeaveRepo) ListApprovedInPeriod(_ context.Context, _ string, _, _ time.Time) ([]leavedomain.Request, error) {
	return nil, nil
}

func (r *fakeLeaveRepo) MarkPaid(_ context.Context, _ string, _ []string) error { return nil }
func (r *fakeLeaveRepo) ReopenPaid(_ context.Context, _ string) error           { return nil }

func (r *fakeLeaveRepo) GetBalance(_ context.Context, employeeID, leaveType string) (leavedomain.Balance, error) {
	b, ok := r.balances[balanceKey(employeeID, leaveType)]
	if !ok {
		return leavedomain.Balance{}, leavedomain.ErrBalanceNotFound
	}
	return b, nil
}

func (r *fakeLeaveRepo) ListBalances(_ context.Context, employeeID string) ([]leavedomain.Balance, error) {
	var out []leavedomain.Balance
	for _, b := range r.balances {
		if b.EmployeeID == employeeID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) DeductBalance(_ context.Context, employeeID, leaveType string, hours decimal.Decimal) error {
	key := balanceKey(employeeID, leaveType)
	b, ok := r.balances[key]
	if !ok || b.BalanceHours.LessThan(hours) {
		return &leavedomain.InsufficientBalanceError{Available: b.BalanceHours, Requested: hours}
	}
	b.TakenHours = b.TakenHours.Add(hours)
	b.BalanceHours = b.BalanceHours.Sub(hours)
	r.balances[key] = b
	return nil
}

func (r *fakeLeaveRepo) RestoreBalance(_ context.Context, employeeID, leaveType string, hours decimal.Decimal) error {
	key := balanceKey(employeeID, leaveType)
	b := r.balances[key]
	b.TakenHours = b.TakenHours.Sub(hours)
	b.BalanceHours = b.BalanceHours.Add(hours)
	r.balances[key] = b
	return nil
}

func (r *fakeLeaveRepo) AccrueBalance(_ context.Context, employeeID, leaveType string, hours decimal.Decimal) error {
	key := balanceKey(employeeID, leaveType)
	b := r.balances[key]
	b.EmployeeID = employeeID
	b.LeaveType = leaveType
	b.AccruedHours = b.AccruedHours.Add(hours)
	b.BalanceHours = b.BalanceHours.Add(hours)
	r.balances[key] = b
	return nil
}

func (r *fakeLeaveRepo) ReverseAccrual(_ context.Context, employeeID, leaveType string, hours decimal.Decimal) error {
	key := balanceKey(employeeID, leaveType)
	b := r.balances[key]
	b.AccruedHours = b.AccruedHours.Sub(hours)
	b.BalanceHours = b.BalanceHours.Sub(hours)
	r.balances[key] = b
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id, tenantID string) (employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok || emp.TenantID != tenantID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) GetActiveByTenantID(_ context.Context, tenantID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range r.employees {
		if emp.TenantID == tenantID && emp.IsActive {
			out = append(out, emp)
		}
	}
	return out, nil
}

type fakeRuleRepo struct {
	groups map[string]shiftrule.RuleGroup
}

func (r *fakeRuleRepo) GetByID(_ context.Context, id, _ string) (shiftrule.RuleGroup, error) {
	g, ok := r.groups[id]
	if !ok {
		return shiftrule.RuleGroup{}, shiftrule.ErrRuleGroupNotFound
	}
	return g, nil
}

func (r *fakeRuleRepo) ListByTenantID(_ context.Context, _ string) ([]shiftrule.RuleGroup, error) {
	return nil, nil
}

type fakeHolidayRepo struct {
	holidays []holiday.PublicHoliday
}

func (r *fakeHolidayRepo) ListInRange(_ context.Context, start, end time.Time) ([]holiday.PublicHoliday, error) {
	var out []holiday.PublicHoliday
	for _, h := range r.holidays {
		if !h.Date.Before(start) && !h.Date.After(end) {
			out = append(out, h)
		}
	}
	return out, nil
}

func newLeaveService(leaveRepo *fakeLeaveRepo, holidays ...holiday.PublicHoliday) *Service {
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {
			ID:             "emp-1",
			TenantID:       "tenant-1",
			HourlyRate:     decimal.NewFromInt(25),
			EmploymentType: employee.EmploymentTypeHourly,
			IsActive:       true,
		},
	}}
	return NewService(
		passthroughTx{},
		leaveRepo,
		employees,
		&fakeRuleRepo{groups: map[string]shiftrule.RuleGroup{}},
		&fakeHolidayRepo{holidays: holidays},
	)
}

func TestServiceCreateRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("values the span in working hours", func(t *testing.T) {
		repo := newFakeLeaveRepo()
		svc := newLeaveService(repo)

		created, err := svc.CreateRequest(ctx, "tenant-1", leavedomain.CreateLeaveRequestRequest{
			EmployeeID: "emp-1",
			Type:       leavedomain.TypeAnnual,
			StartDate:  "2025-03-06", // Thursday
			EndDate:    "2025-03-07",
		})
		require.NoError(t, err)
		assert.Equal(t, "16", created.RequestedHours.String())
		assert.Equal(t, leavedomain.RequestStatusPending, created.Status)
	})

	t.Run("public holidays shorten the span", func(t *testing.T) {
		repo := newFakeLeaveRepo()
		svc := newLeaveService(repo, holiday.PublicHoliday{Date: day("2025-03-06"), Name: "Observance"})

		created, err := svc.CreateRequest(ctx, "tenant-1", leavedomain.CreateLeaveRequestRequest{
			EmployeeID: "emp-1",
			Type:       leavedomain.TypeAnnual,
			StartDate:  "2025-03-06",
			EndDate:    "2025-03-07",
		})
		require.NoError(t, err)
		assert.Equal(t, "8", created.RequestedHours.String())
	})

	t.Run("weekend-only span is rejected", func(t *testing.T) {
		repo := newFakeLeaveRepo()
		svc := newLeaveService(repo)

		_, err := svc.CreateRequest(ctx, "tenant-1", leavedomain.CreateLeaveRequestRequest{
			EmployeeID: "emp-1",
			Type:       leavedomain.TypeAnnual,
			StartDate:  "2025-03-08",
			EndDate:    "2025-03-09",
		})
		require.ErrorIs(t, err, leavedomain.ErrNoWorkingDays)
	})

	t.Run("invalid payload fails validation", func(t *testing.T) {
		repo := newFakeLeaveRepo()
		svc := newLeaveService(repo)

		_, err := svc.CreateRequest(ctx, "tenant-1", leavedomain.CreateLeaveRequestRequest{
			EmployeeID: "emp-1",
			Type:       "sabbatical",
			StartDate:  "2025-03-06",
			EndDate:    "2025-03-07",
		})
		require.Error(t, err)
	})

	t.Run("unknown employee", func(t *testing.T) {
		repo := newFakeLeaveRepo()
		svc := newLeaveService(repo)

		_, err := svc.CreateRequest(ctx, "tenant-1", leavedomain.CreateLeaveRequestRequest{
			EmployeeID: "emp-9",
			Type:       leavedomain.TypeAnnual,
			StartDate:  "2025-03-06",
			EndDate:    "2025-03-07",
		})
		require.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}

func TestServiceApprove(t *testing.T) {
	ctx := context.Background()

	pendingRequest := func(repo *fakeLeaveRepo, hours int64) leavedomain.Request {
		req, err := repo.CreateRequest(ctx, leavedomain.Request{
			TenantID:       "tenant-1",
			EmployeeID:     "emp-1",
			Type:           leavedomain.TypeAnnual,
			StartDate:      day("2025-03-06"),
			EndDate:        day("2025-03-07"),
			RequestedHours: decimal.NewFromInt(hours),
			Status:         leavedomain.RequestStatusPending,
		})
		if err != nil {
			panic(err)
		}
		return req
	}

	t.Run("deducts the balance and approves", func(t *testing.T) {
		repo := newFakeLeaveRepo()
		repo.setBalance("emp-1", leavedomain.TypeAnnual, 40)
		svc := newLeaveService(repo)
		req := pendingRequest(repo, 16)

		approved, err := svc.Approve(ctx, req.ID, "mgr-1")
		require.NoError(t, err)
		assert.Equal(t, leavedomain.RequestStatusApproved, approved.Status)
		require.NotNil(t, approved.ApprovedBy)
		assert.Equal(t, "mgr-1", *approved.ApprovedBy)

		balance, err := repo.GetBalance(ctx, "emp-1", leavedomain.TypeAnnual)
		require.NoError(t, err)
		assert.Equal(t, "24", balance.BalanceHours.String())
		assert.Equal(t, "16", balance.TakenHours.String())
	})

	t.Run("insufficient balance leaves everything untouched", func(t *testing.T) {
		repo := newFakeLeaveRepo()
		repo.setBalance("emp-1", leavedomain.TypeAnnual, 8)
		svc := newLeaveService(repo)
		req := pendingRequest(repo, 16)

		_, err := svc.Approve(ctx, req.ID, "mgr-1")
		require.ErrorIs(t, err, leavedomain.ErrInsufficientBalance)

		var balErr *leavedomain.InsufficientBalanceError
		require.ErrorAs(t, err, &balErr)
		assert.Equal(t, "8", balErr.Available.String())
		assert.Equal(t, "16", balErr.Requested.String())

		stored, err := repo.GetRequest(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, leavedomain.RequestStatusPending, stored.Status)

		balance, err := repo.GetBalance(ctx, "emp-1", leavedomain.TypeAnnual)
		require.NoError(t, err)
		assert.Equal(t, "8", balance.BalanceHours.String())
	})

	t.Run("already processed", func(t *testing.T) {
		repo := newFakeLeaveRepo()
		repo.setBalance("emp-1", leavedomain.TypeAnnual, 40)
		svc := newLeaveService(repo)
		req := pendingRequest(repo, 16)

		_, err := svc.Approve(ctx, req.ID, "mgr-1")
		require.NoError(t, err)
		_, err = svc.Approve(ctx, req.ID, "mgr-2")
		require.ErrorIs(t, err, leavedomain.ErrAlreadyProcessed)
	})

	t.Run("unknown request", func(t *testing.T) {
		repo := newFakeLeaveRepo()
		svc := newLeaveService(repo)

		_, err := svc.Approve(ctx, "req-missing", "mgr-1")
		require.ErrorIs(t, err, leavedomain.ErrRequestNotFound)
	})
}

func TestServiceReject(t *testing.T) {
	ctx := context.Background()

	repo := newFakeLeaveRepo()
	repo.setBalance("emp-1", leavedomain.TypeAnnual, 40)
	svc := newLeaveService(repo)

	req, err := repo.CreateRequest(ctx, leavedomain.Request{
		TenantID:       "tenant-1",
		EmployeeID:     "emp-1",
		Type:           leavedomain.TypeAnnual,
		RequestedHours: decimal.NewFromInt(16),
		Status:         leavedomain.RequestStatusPending,
	})
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, req.ID, "mgr-1")
	require.NoError(t, err)
	assert.Equal(t, leavedomain.RequestStatusRejected, rejected.Status)

	balance, err := repo.GetBalance(ctx, "emp-1", leavedomain.TypeAnnual)
	require.NoError(t, err)
	assert.Equal(t, "40", balance.BalanceHours.String())

	_, err = svc.Reject(ctx, req.ID, "mgr-1")
	require.ErrorIs(t, err, leavedomain.ErrAlreadyProcessed)
}
