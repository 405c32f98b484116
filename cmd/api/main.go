package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/veripay/payroll-backend-go/internal/config"
	appHTTP "github.com/veripay/payroll-backend-go/internal/handler/http"
	"github.com/veripay/payroll-backend-go/internal/pkg/database"
	"github.com/veripay/payroll-backend-go/internal/repository/postgresql"
	employeeService "github.com/veripay/payroll-backend-go/internal/service/employee"
	payrollService "github.com/veripay/payroll-backend-go/internal/service/payroll"
	rateService "github.com/veripay/payroll-backend-go/internal/service/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	periodRepo := postgresql.NewPeriodRepository(db)
	recordRepo := postgresql.NewRecordRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	rateRepo := postgresql.NewRateRepository(db)

	resolver := rateService.NewResolver(rateRepo)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo)
	payrollSvc := payrollService.NewService(db, periodRepo, recordRepo, timesheetRepo, employeeRepo, resolver)

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	tokenAuth := jwtauth.New("HS256", []byte(cfg.JWT.Secret), nil)
	router := appHTTP.NewRouter(tokenAuth, employeeHandler, payrollHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
