package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/attendance"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/employee"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/holiday"
	leavedomain "github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/leave"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/payroll"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/shiftrule"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/fixtures"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const lookbackDays = 28

// Config carries the tenant-independent processing settings.
type Config struct {
	Frequency   PayFrequency
	MaxParallel int
	AdminRoles  []string
	Statutory   fixtures.Statutory
}

// Service orchestrates the run lifecycle: period validation, batch
// calculation, atomic persistence and rollback.
type Service struct {
	tx             database.TxRunner
	cfg            Config
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leavedomain.LeaveRepository
	ruleRepo       shiftrule.RuleGroupRepository
	holidayRepo    holiday.HolidayRepository
	logger         *slog.Logger
}

func NewService(
	tx database.TxRunner,
	cfg Config,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leavedomain.LeaveRepository,
	ruleRepo shiftrule.RuleGroupRepository,
	holidayRepo holiday.HolidayRepository,
	logger *slog.Logger,
) *Service {
	if cfg.MaxParallel <= 0 {
		cfg.MaxParallel = 4
	}
	if cfg.Frequency == "" {
		cfg.Frequency = FrequencyFortnightly
	}
	return &Service{
		tx:             tx,
		cfg:            cfg,
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		ruleRepo:       ruleRepo,
		holidayRepo:    holidayRepo,
		logger:         logger,
	}
}

// taxYearStart returns the 1 April opening the tax year containing date.
func taxYearStart(date time.Time) time.Time {
	year := date.Year()
	if date.Month() < time.April {
		year--
	}
	return time.Date(year, time.April, 1, 0, 0, 0, 0, date.Location())
}

// ValidatePeriod reports whether a run may be created for the period:
// no overlapping non-voided run and no unapproved attendance inside it.
func (s *Service) ValidatePeriod(ctx context.Context, tenantID string, start, end time.Time) (payroll.ValidatePeriodResult, error) {
	if end.Before(start) {
		return payroll.ValidatePeriodResult{}, payroll.ErrInvalidDateRange
	}

	overlapping, err := s.payrollRepo.ListOverlappingRuns(ctx, tenantID, start, end)
	if err != nil {
		return payroll.ValidatePeriodResult{}, fmt.Errorf("failed to check overlapping runs: %w", err)
	}

	unapproved, err := s.attendanceRepo.CountUnapprovedInPeriod(ctx, tenantID, start, end)
	if err != nil {
		return payroll.ValidatePeriodResult{}, fmt.Errorf("failed to count unapproved attendance: %w", err)
	}

	result := payroll.ValidatePeriodResult{
		Valid:           len(overlapping) == 0 && unapproved == 0,
		UnapprovedCount: unapproved,
	}
	for _, run := range overlapping {
		result.ConflictingRuns = append(result.ConflictingRuns, payroll.RunConflict{
			RunID:       run.ID,
			PeriodStart: run.PeriodStart,
			PeriodEnd:   run.PeriodEnd,
			Status:      string(run.Status),
		})
	}
	return result, nil
}

func (s *Service) ruleGroupFor(ctx context.Context, emp employee.Employee) shiftrule.RuleGroup {
	if emp.ShiftRuleGroupID == nil {
		return shiftrule.Default()
	}
	rules, err := s.ruleRepo.GetByID(ctx, *emp.ShiftRuleGroupID, emp.TenantID)
	if err != nil {
		s.logger.Warn("shift rule group not found, using default",
			slog.String("employee_id", emp.ID),
			slog.String("rule_group_id", *emp.ShiftRuleGroupID))
		return shiftrule.Default()
	}
	return rules
}

// loadInputs gathers everything each active employee's calculation needs.
// All reads happen up front so the calculation itself is pure.
func (s *Service) loadInputs(ctx context.Context, tenantID string, start, end time.Time) ([]EmployeeInput, error) {
	employees, err := s.employeeRepo.GetActiveByTenantID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	entries, err := s.attendanceRepo.ListApprovedInPeriod(ctx, tenantID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}
	entriesByEmployee := make(map[string][]attendance.Entry)
	for _, e := range entries {
		entriesByEmployee[e.EmployeeID] = append(entriesByEmployee[e.EmployeeID], e)
	}

	requests, err := s.leaveRepo.ListApprovedInPeriod(ctx, tenantID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load leave requests: %w", err)
	}
	requestsByEmployee := make(map[string][]leavedomain.Request)
	for _, r := range requests {
		requestsByEmployee[r.EmployeeID] = append(requestsByEmployee[r.EmployeeID], r)
	}

	holidays, err := s.holidayRepo.ListInRange(ctx, start.AddDate(0, 0, -lookbackDays), end)
	if err != nil {
		return nil, fmt.Errorf("failed to load public holidays: %w", err)
	}
	calendar := holiday.NewCalendar(holidays)

	yearStart := taxYearStart(start)
	trailingStart := start.AddDate(0, 0, -7*trailingEarningsWeeks)

	inputs := make([]EmployeeInput, 0, len(employees))
	for _, emp := range employees {
		history, err := s.attendanceRepo.ListByEmployeeInRange(ctx, emp.ID, start.AddDate(0, 0, -lookbackDays), start.AddDate(0, 0, -1))
		if err != nil {
			return nil, fmt.Errorf("failed to load attendance history for %s: %w", emp.ID, err)
		}
		trailing, err := s.attendanceRepo.SumApprovedHours(ctx, emp.ID, trailingStart, start.AddDate(0, 0, -1))
		if err != nil {
			return nil, fmt.Errorf("failed to load trailing hours for %s: %w", emp.ID, err)
		}
		ytd, err := s.payrollRepo.YTDLeviableEarnings(ctx, emp.ID, yearStart)
		if err != nil {
			return nil, fmt.Errorf("failed to load YTD earnings for %s: %w", emp.ID, err)
		}

		inputs = append(inputs, EmployeeInput{
			Employee:      emp,
			Entries:       entriesByEmployee[emp.ID],
			LeaveRequests: requestsByEmployee[emp.ID],
			History:       history,
			TrailingHours: trailing,
			Rules:         s.ruleGroupFor(ctx, emp),
			Calendar:      calendar,
			YTDEarnings:   ytd,
			Frequency:     s.cfg.Frequency,
			Statutory:     s.cfg.Statutory,
		})
	}
	return inputs, nil
}

const trailingEarningsWeeks = 52

// ProcessPayroll validates the period, calculates every active employee
// in parallel and persists the whole run atomically. A failing employee
// is reported and skipped; the run fails only when nobody is payable.
func (s *Service) ProcessPayroll(ctx context.Context, tenantID, userID string, start, end time.Time) (payroll.ProcessPayrollResult, error) {
	validation, err := s.ValidatePeriod(ctx, tenantID, start, end)
	if err != nil {
		return payroll.ProcessPayrollResult{}, err
	}
	if !validation.Valid {
		if len(validation.ConflictingRuns) > 0 {
			return payroll.ProcessPayrollResult{}, fmt.Errorf("%w: %d conflicting run(s)", payroll.ErrPeriodOverlap, len(validation.ConflictingRuns))
		}
		return payroll.ProcessPayrollResult{}, fmt.Errorf("%w: %d entries pending approval", payroll.ErrUnapprovedAttendance, validation.UnapprovedCount)
	}

	inputs, err := s.loadInputs(ctx, tenantID, start, end)
	if err != nil {
		return payroll.ProcessPayrollResult{}, err
	}

	results := make([]*EmployeeResult, len(inputs))
	calcErrs := make([]error, len(inputs))

	g, calcCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxParallel)
	for i := range inputs {
		i := i
		g.Go(func() error {
			if err := calcCtx.Err(); err != nil {
				return err
			}
			res, err := CalculateEmployee(inputs[i])
			if err != nil {
				calcErrs[i] = err
				return nil
			}
			results[i] = &res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.ProcessPayrollResult{}, err
	}

	var (
		payslips    []payroll.Payslip
		logs        []payroll.CalculationLog
		adjustments []payroll.BalanceAdjustment
		entryIDs    []string
		requestIDs  []string
		failures    []payroll.EmployeeFailure
		totalGross  = decimal.Zero
		totalNet    = decimal.Zero
	)
	for i, res := range results {
		if calcErrs[i] != nil {
			s.logger.Warn("employee calculation failed",
				slog.String("employee_id", inputs[i].Employee.ID),
				slog.String("reason", calcErrs[i].Error()))
			failures = append(failures, payroll.EmployeeFailure{
				EmployeeID: inputs[i].Employee.ID,
				Reason:     calcErrs[i].Error(),
			})
			continue
		}
		if !res.Payslip.GrossPay.IsPositive() {
			continue
		}
		payslips = append(payslips, res.Payslip)
		logs = append(logs, res.Logs...)
		adjustments = append(adjustments, res.Adjustments...)
		entryIDs = append(entryIDs, res.AttendanceIDs...)
		requestIDs = append(requestIDs, res.LeaveRequestIDs...)
		totalGross = totalGross.Add(res.Payslip.GrossPay)
		totalNet = totalNet.Add(res.Payslip.NetPay)
	}

	if len(payslips) == 0 {
		return payroll.ProcessPayrollResult{Failures: failures}, payroll.ErrNoPayableEmployees
	}

	run := payroll.Run{
		ID:            uuid.NewString(),
		TenantID:      tenantID,
		PeriodStart:   start,
		PeriodEnd:     end,
		ProcessedBy:   userID,
		Status:        payroll.RunStatusCompleted,
		EmployeeCount: len(payslips),
		TotalGross:    totalGross,
		TotalNet:      totalNet,
	}
	for i := range payslips {
		payslips[i].ID = uuid.NewString()
		payslips[i].RunID = run.ID
	}
	for i := range logs {
		logs[i].ID = uuid.NewString()
		logs[i].RunID = run.ID
	}
	for i := range adjustments {
		adjustments[i].ID = uuid.NewString()
		adjustments[i].RunID = run.ID
	}

	commit := func(ctx context.Context) error {
		if err := s.payrollRepo.AcquireTenantLock(ctx, tenantID); err != nil {
			return err
		}
		// Re-check under the lock: another run may have committed between
		// validation and here.
		overlapping, err := s.payrollRepo.ListOverlappingRuns(ctx, tenantID, start, end)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return fmt.Errorf("%w: %d conflicting run(s)", payroll.ErrPeriodOverlap, len(overlapping))
		}

		if _, err := s.payrollRepo.CreateRun(ctx, run); err != nil {
			return err
		}
		if err := s.payrollRepo.CreatePayslips(ctx, payslips); err != nil {
			return err
		}
		if err := s.payrollRepo.CreateCalculationLogs(ctx, logs); err != nil {
			return err
		}
		if err := s.attendanceRepo.MarkConsumed(ctx, run.ID, entryIDs); err != nil {
			return err
		}
		if err := s.leaveRepo.MarkPaid(ctx, run.ID, requestIDs); err != nil {
			return err
		}
		for _, adj := range adjustments {
			switch adj.Kind {
			case payroll.AdjustmentAccrual:
				err = s.leaveRepo.AccrueBalance(ctx, adj.EmployeeID, adj.LeaveType, adj.Hours)
			case payroll.AdjustmentDeduction:
				err = s.leaveRepo.DeductBalance(ctx, adj.EmployeeID, adj.LeaveType, adj.Hours)
			}
			if err != nil {
				return err
			}
		}
		if len(adjustments) > 0 {
			if err := s.payrollRepo.CreateBalanceAdjustments(ctx, adjustments); err != nil {
				return err
			}
		}
		return s.payrollRepo.CreateAudit(ctx, payroll.RunAudit{
			ID:      uuid.NewString(),
			RunID:   run.ID,
			Action:  payroll.AuditActionCompleted,
			ActorID: userID,
		})
	}

	err = s.tx.WithinTransaction(ctx, commit)
	if err != nil && !errors.Is(err, payroll.ErrPeriodOverlap) {
		s.logger.Warn("run persistence failed, retrying once",
			slog.String("run_id", run.ID), slog.String("error", err.Error()))
		err = s.tx.WithinTransaction(ctx, commit)
	}
	if err != nil {
		if errors.Is(err, payroll.ErrPeriodOverlap) {
			return payroll.ProcessPayrollResult{}, err
		}
		return payroll.ProcessPayrollResult{}, &payroll.PersistenceError{Err: err}
	}

	s.logger.Info("payroll run completed",
		slog.String("run_id", run.ID),
		slog.String("tenant_id", tenantID),
		slog.Int("employee_count", run.EmployeeCount),
		slog.Int("failures", len(failures)))

	return payroll.ProcessPayrollResult{Run: run, Payslips: payslips, Failures: failures}, nil
}

// RollbackRun voids a completed run and compensates every side effect it
// recorded: payslips voided, attendance reopened, leave requests back to
// approved, balance adjustments applied in reverse.
func (s *Service) RollbackRun(ctx context.Context, runID, userID string, roles []string, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return payroll.ErrEmptyReason
	}
	if !s.authorized(roles) {
		return payroll.ErrNotAuthorized
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		run, err := s.payrollRepo.GetRun(ctx, runID)
		if err != nil {
			return err
		}
		if run.Status != payroll.RunStatusCompleted {
			return fmt.Errorf("%w: status is %s", payroll.ErrRunNotCompleted, run.Status)
		}

		if err := s.payrollRepo.UpdateRunStatus(ctx, runID, payroll.RunStatusVoided); err != nil {
			return err
		}
		if err := s.payrollRepo.VoidPayslipsByRun(ctx, runID); err != nil {
			return err
		}
		if err := s.attendanceRepo.ReopenForRun(ctx, runID); err != nil {
			return err
		}
		if err := s.leaveRepo.ReopenPaid(ctx, runID); err != nil {
			return err
		}

		adjustments, err := s.payrollRepo.ListBalanceAdjustmentsByRun(ctx, runID)
		if err != nil {
			return err
		}
		for _, adj := range adjustments {
			switch adj.Kind {
			case payroll.AdjustmentAccrual:
				err = s.leaveRepo.ReverseAccrual(ctx, adj.EmployeeID, adj.LeaveType, adj.Hours)
			case payroll.AdjustmentDeduction:
				err = s.leaveRepo.RestoreBalance(ctx, adj.EmployeeID, adj.LeaveType, adj.Hours)
			}
			if err != nil {
				return err
			}
		}

		return s.payrollRepo.CreateAudit(ctx, payroll.RunAudit{
			ID:      uuid.NewString(),
			RunID:   runID,
			Action:  payroll.AuditActionRolledBack,
			ActorID: userID,
			Reason:  reason,
		})
	})
	if err != nil {
		return err
	}

	s.logger.Info("payroll run rolled back",
		slog.String("run_id", runID), slog.String("actor_id", userID))
	return nil
}

func (s *Service) authorized(roles []string) bool {
	for _, role := range roles {
		for _, admin := range s.cfg.AdminRoles {
			if role == admin {
				return true
			}
		}
	}
	return false
}

func (s *Service) GetRun(ctx context.Context, id string) (payroll.Run, error) {
	return s.payrollRepo.GetRun(ctx, id)
}

func (s *Service) ListRuns(ctx context.Context, tenantID string) ([]payroll.Run, error) {
	return s.payrollRepo.ListRunsByTenant(ctx, tenantID)
}

func (s *Service) ListPayslips(ctx context.Context, runID string) ([]payroll.Payslip, error) {
	return s.payrollRepo.ListPayslipsByRun(ctx, runID)
}

func (s *Service) GetPayslip(ctx context.Context, id string) (payroll.Payslip, error) {
	return s.payrollRepo.GetPayslip(ctx, id)
}

func (s *Service) ListCalculationLogs(ctx context.Context, runID string) ([]payroll.CalculationLog, error) {
	return s.payrollRepo.ListCalculationLogsByRun(ctx, runID)
}

func (s *Service) ListAudits(ctx context.Context, runID string) ([]payroll.RunAudit, error) {
	return s.payrollRepo.ListAuditsByRun(ctx, runID)
}
