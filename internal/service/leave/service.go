package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/employee"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/holiday"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/leave"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/shiftrule"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/pkg/database"
)

// Service manages the leave request lifecycle. Approval runs the
// check-then-deduct atomically so two concurrent approvals can never
// over-draw a balance.
type Service struct {
	tx           database.TxRunner
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
	ruleRepo     shiftrule.RuleGroupRepository
	holidayRepo  holiday.HolidayRepository
}

func NewService(
	tx database.TxRunner,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	ruleRepo shiftrule.RuleGroupRepository,
	holidayRepo holiday.HolidayRepository,
) *Service {
	return &Service{
		tx:           tx,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		ruleRepo:     ruleRepo,
		holidayRepo:  holidayRepo,
	}
}

func (s *Service) ruleGroupFor(ctx context.Context, emp employee.Employee) shiftrule.RuleGroup {
	if emp.ShiftRuleGroupID == nil {
		return shiftrule.Default()
	}
	rules, err := s.ruleRepo.GetByID(ctx, *emp.ShiftRuleGroupID, emp.TenantID)
	if err != nil {
		return shiftrule.Default()
	}
	return rules
}

// CreateRequest values the span in hours (working days x standard day
// length, weekends and public holidays excluded) and files it as pending.
func (s *Service) CreateRequest(ctx context.Context, tenantID string, req leave.CreateLeaveRequestRequest) (leave.Request, error) {
	if err := req.Validate(); err != nil {
		return leave.Request{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, tenantID)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to get employee: %w", err)
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	holidays, err := s.holidayRepo.ListInRange(ctx, start, end)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to load public holidays: %w", err)
	}

	rules := s.ruleGroupFor(ctx, emp)
	hours, err := RequestedHours(start, end, holiday.NewCalendar(holidays), rules.StandardHoursPerDay)
	if err != nil {
		return leave.Request{}, err
	}

	created, err := s.leaveRepo.CreateRequest(ctx, leave.Request{
		TenantID:       tenantID,
		EmployeeID:     emp.ID,
		Type:           req.Type,
		StartDate:      start,
		EndDate:        end,
		RequestedHours: hours,
		Status:         leave.RequestStatusPending,
		Reason:         req.Reason,
	})
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

// Approve transitions a pending request to approved. The balance check
// and deduction are a single conditional write inside one transaction;
// an insufficient balance leaves the request and balance untouched.
func (s *Service) Approve(ctx context.Context, requestID, approverID string) (leave.Request, error) {
	var approved leave.Request
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := s.leaveRepo.GetRequest(ctx, requestID)
		if err != nil {
			return err
		}
		if request.Status != leave.RequestStatusPending {
			return leave.ErrAlreadyProcessed
		}

		if err := s.leaveRepo.DeductBalance(ctx, request.EmployeeID, request.Type, request.RequestedHours); err != nil {
			return err
		}

		if err := s.leaveRepo.UpdateRequestStatus(ctx, requestID, leave.RequestStatusApproved, &approverID); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		request.Status = leave.RequestStatusApproved
		request.ApprovedBy = &approverID
		approved = request
		return nil
	})
	if err != nil {
		return leave.Request{}, err
	}
	return approved, nil
}

// Reject closes a pending request without touching any balance.
func (s *Service) Reject(ctx context.Context, requestID, approverID string) (leave.Request, error) {
	request, err := s.leaveRepo.GetRequest(ctx, requestID)
	if err != nil {
		return leave.Request{}, err
	}
	if request.Status != leave.RequestStatusPending {
		return leave.Request{}, leave.ErrAlreadyProcessed
	}

	if err := s.leaveRepo.UpdateRequestStatus(ctx, requestID, leave.RequestStatusRejected, &approverID); err != nil {
		return leave.Request{}, fmt.Errorf("failed to update leave request: %w", err)
	}
	request.Status = leave.RequestStatusRejected
	return request, nil
}

func (s *Service) ListBalances(ctx context.Context, employeeID string) ([]leave.Balance, error) {
	return s.leaveRepo.ListBalances(ctx, employeeID)
}
