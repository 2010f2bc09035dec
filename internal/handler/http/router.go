package http

import (
	"log/slog"
	"os"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/handler/http/middleware"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(jwtService jwt.Service, payrollHandler PayrollHandler, leaveHandler LeaveHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ask-my-hr-payroll"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/validate-period", payrollHandler.ValidatePeriod)
				r.Post("/process", payrollHandler.Process)

				r.Route("/runs", func(r chi.Router) {
					r.Get("/", payrollHandler.ListRuns)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", payrollHandler.GetRun)
						r.Post("/rollback", payrollHandler.Rollback)
						r.Get("/payslips", payrollHandler.ListPayslips)
						r.Get("/logs", payrollHandler.ListCalculationLogs)
						r.Get("/audits", payrollHandler.ListAudits)
					})
				})

				r.Route("/payslips/{id}", func(r chi.Router) {
					r.Get("/", payrollHandler.GetPayslip)
					r.Get("/pdf", payrollHandler.PayslipPDF)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/requests", leaveHandler.CreateRequest)
				r.Post("/requests/{id}/approve", leaveHandler.ApproveRequest)
				r.Post("/requests/{id}/reject", leaveHandler.RejectRequest)
				r.Get("/balances/{employeeID}", leaveHandler.ListBalances)
			})
		})
	})

	return r
}
