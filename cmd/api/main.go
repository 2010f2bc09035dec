package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/config"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/fixtures"
	appHTTP "github.com/SahejChandok/Ask-My-HR-sub000/internal/handler/http"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/pkg/database"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/pkg/jwt"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/repository/postgresql"
	leaveService "github.com/SahejChandok/Ask-My-HR-sub000/internal/service/leave"
	payrollService "github.com/SahejChandok/Ask-My-HR-sub000/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "ask-my-hr-payroll"),
	)

	txManager := postgresql.NewTxManager(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	ruleGroupRepo := postgresql.NewRuleGroupRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	payrollSvc := payrollService.NewService(
		txManager,
		payrollService.Config{
			Frequency:   payrollService.PayFrequency(cfg.Payroll.Frequency),
			MaxParallel: cfg.Payroll.MaxParallel,
			AdminRoles:  cfg.Payroll.AdminRoles,
			Statutory:   fixtures.NZStatutory(),
		},
		payrollRepo,
		employeeRepo,
		attendanceRepo,
		leaveRepo,
		ruleGroupRepo,
		holidayRepo,
		logger,
	)
	leaveSvc := leaveService.NewService(txManager, leaveRepo, employeeRepo, ruleGroupRepo, holidayRepo)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc, employeeRepo)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)

	router := appHTTP.NewRouter(jwtService, payrollHandler, leaveHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
