package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/employeehub/payroll-backend-go/internal/config"
	appHTTP "github.com/employeehub/payroll-backend-go/internal/handler/http"
	"github.com/employeehub/payroll-backend-go/internal/pkg/database"
	"github.com/employeehub/payroll-backend-go/internal/pkg/email"
	"github.com/employeehub/payroll-backend-go/internal/pkg/jwt"
	"github.com/employeehub/payroll-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/employeehub/payroll-backend-go/internal/service/auth"
	employeeService "github.com/employeehub/payroll-backend-go/internal/service/employee"
	payrollService "github.com/employeehub/payroll-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	authService := serviceAuth.NewAuthService(db, userRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, employeeRepo, employeeSvc, emailService)

	authHandler := appHTTP.NewAuthHandler(authService)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		employeeHandler,
		payrollHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
