package http

import (
	"log/slog"
	"os"

	"github.com/employeehub/payroll-backend-go/internal/handler/http/middleware"
	"github.com/employeehub/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(JWTService jwt.Service, authHandler AuthHandler, employeeHandler EmployeeHandler, payrollHandler PayrollHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "employeehub-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Get("/stats", employeeHandler.Stats)
				r.Post("/", employeeHandler.Create)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/seed-codes", employeeHandler.SeedCodes)
				})

				r.Route("/{employeeRef}", func(r chi.Router) {
					r.Get("/", employeeHandler.Get)
					r.Put("/", employeeHandler.UpdateProfile)
					r.Put("/composition", employeeHandler.UpdateComposition)

					r.Route("/allowances", func(r chi.Router) {
						r.Post("/", employeeHandler.AddAllowance)
						r.Delete("/{allowanceID}", employeeHandler.DeleteAllowance)
					})

					r.Get("/history", employeeHandler.SalaryHistory)

					r.Route("/deductions", func(r chi.Router) {
						r.Get("/", payrollHandler.ListDeductions)
						r.Post("/", payrollHandler.AddDeduction)
						r.Delete("/{deductionID}", payrollHandler.DeleteDeduction)
					})

					r.Post("/credit-salary", payrollHandler.CreditSalary)
					r.Get("/payroll", payrollHandler.PayrollHistory)
					r.Get("/projection", payrollHandler.Projection)
					r.Post("/send-payslip", payrollHandler.SendPayslip)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Delete("/", employeeHandler.Delete)
					})
				})
			})
		})
	})
	return r
}
