package main

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/santrikita/tpq-backend-go/internal/config"
	appHTTP "github.com/santrikita/tpq-backend-go/internal/handler/http"
	"github.com/santrikita/tpq-backend-go/internal/pkg/database"
	"github.com/santrikita/tpq-backend-go/internal/pkg/jwt"
	"github.com/santrikita/tpq-backend-go/internal/repository/postgresql"
	attendanceService "github.com/santrikita/tpq-backend-go/internal/service/attendance"
	authService "github.com/santrikita/tpq-backend-go/internal/service/auth"
	employeeService "github.com/santrikita/tpq-backend-go/internal/service/employee"
	halaqahService "github.com/santrikita/tpq-backend-go/internal/service/halaqah"
	payrollService "github.com/santrikita/tpq-backend-go/internal/service/payroll"
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

	employeeRepo := postgresql.NewEmployeeRepository(db)
	halaqahRepo := postgresql.NewHalaqahRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	rateRepo := postgresql.NewSalaryRateRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	calcConfig, err := buildCalcConfig(cfg.Payroll)
	if err != nil {
		fmt.Println("Error building payroll config:", err)
		return
	}

	authSvc := authService.NewAuthService(cfg.Admin, jwtService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	halaqahSvc := halaqahService.NewHalaqahService(halaqahRepo, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, halaqahRepo)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, rateRepo, employeeRepo, halaqahRepo, attendanceRepo, calcConfig)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	halaqahHandler := appHTTP.NewHalaqahHandler(halaqahSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		employeeHandler,
		halaqahHandler,
		attendanceHandler,
		payrollHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

func buildCalcConfig(p config.PayrollConfig) (payrollService.CalcConfig, error) {
	fixedBonusRate, err := decimal.NewFromString(p.FixedBonusRate)
	if err != nil {
		return payrollService.CalcConfig{}, fmt.Errorf("invalid PAYROLL_FIXED_BONUS_RATE: %w", err)
	}

	cfg := payrollService.DefaultCalcConfig()
	cfg.SessionBonusThreshold = decimal.NewFromFloat(p.SessionBonusThreshold)
	cfg.SessionBonusFactor = decimal.NewFromInt(p.SessionBonusFactor)
	cfg.FixedBonusThreshold = decimal.NewFromFloat(p.FixedBonusThreshold)
	cfg.FixedBonusRate = fixedBonusRate
	cfg.WeeksPerMonth = p.WeeksPerMonth
	return cfg, nil
}
