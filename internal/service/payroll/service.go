package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"

	"github.com/santrikita/tpq-backend-go/internal/domain/attendance"
	"github.com/santrikita/tpq-backend-go/internal/domain/employee"
	"github.com/santrikita/tpq-backend-go/internal/domain/halaqah"
	"github.com/santrikita/tpq-backend-go/internal/domain/payroll"
	"github.com/santrikita/tpq-backend-go/internal/pkg/database"
	"github.com/santrikita/tpq-backend-go/internal/repository/postgresql"
)

// runInTransaction is a seam for tests; production code always goes through
// postgresql.WithTransaction.
var runInTransaction = postgresql.WithTransaction

type PayrollServiceImpl struct {
	db           *database.DB
	payrollRepo  payroll.PayrollRepository
	rateRepo     payroll.SalaryRateRepository
	employeeRepo employee.EmployeeRepository
	strategies   map[employee.Role]CompensationStrategy
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	rateRepo payroll.SalaryRateRepository,
	employeeRepo employee.EmployeeRepository,
	halaqahRepo halaqah.HalaqahRepository,
	attendanceRepo attendance.AttendanceRepository,
	cfg CalcConfig,
) payroll.PayrollService {
	fixed := NewFixedStrategy(attendanceRepo, cfg)
	return &PayrollServiceImpl{
		db:           db,
		payrollRepo:  payrollRepo,
		rateRepo:     rateRepo,
		employeeRepo: employeeRepo,
		strategies: map[employee.Role]CompensationStrategy{
			employee.RoleMusyrif: NewSessionStrategy(halaqahRepo, attendanceRepo, cfg),
			employee.RoleAdmin:   fixed,
			employee.RoleStaff:   fixed,
		},
	}
}

// Helper to get the acting username from JWT context, when present.
func usernameFromContext(ctx context.Context) *string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil
	}
	if username, ok := claims["username"].(string); ok && username != "" {
		return &username
	}
	return nil
}

// ========== PAYROLL GENERATION ==========

// computedEmployee pairs one employee's reportable outcome with the record
// to persist (nil unless the outcome is a success).
type computedEmployee struct {
	result payroll.GenerateResult
	record *payroll.PayrollRecord
}

func (s *PayrollServiceImpl) GeneratePayroll(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.GeneratePayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	period, err := ResolvePeriod(req.Month, req.Year)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	generatedBy := req.GeneratedBy
	if generatedBy == nil {
		generatedBy = usernameFromContext(ctx)
	}

	var employees []employee.Employee
	if len(req.EmployeeIDs) > 0 {
		employees, err = s.employeeRepo.GetActiveByIDs(ctx, req.EmployeeIDs)
	} else {
		employees, err = s.employeeRepo.GetActiveByRoles(ctx, employee.PayrollEligibleRoles())
	}
	if err != nil {
		return payroll.GeneratePayrollResponse{}, fmt.Errorf("failed to get employees: %w", err)
	}

	// Phase 1: compute every employee's outcome. Missing rate policies and
	// duplicate periods stay per-employee outcomes; only infrastructure
	// failures abort the batch.
	computed := make([]computedEmployee, 0, len(employees))
	for _, emp := range employees {
		c, err := s.computeEmployee(ctx, emp, period, generatedBy)
		if err != nil {
			return payroll.GeneratePayrollResponse{}, err
		}
		computed = append(computed, c)
	}

	// Phase 2: persist every successful record in one transaction. A write
	// failure for any record rolls back all of them.
	err = runInTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		for i := range computed {
			if computed[i].record == nil {
				continue
			}
			created, err := s.payrollRepo.CreatePayrollRecord(txCtx, *computed[i].record)
			if err != nil {
				return fmt.Errorf("failed to create payroll record for employee %s: %w", computed[i].record.EmployeeID, err)
			}
			computed[i].result.PayrollID = &created.ID
			netSalary := created.NetSalary
			computed[i].result.NetSalary = &netSalary
		}
		return nil
	})
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	results := make([]payroll.GenerateResult, 0, len(computed))
	for _, c := range computed {
		results = append(results, c.result)
	}

	return payroll.GeneratePayrollResponse{
		Results: results,
		Period:  period.Label(),
	}, nil
}

func (s *PayrollServiceImpl) computeEmployee(ctx context.Context, emp employee.Employee, period Period, generatedBy *string) (computedEmployee, error) {
	result := payroll.GenerateResult{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
	}

	exists, err := s.payrollRepo.ExistsByEmployeePeriod(ctx, emp.ID, period.Month, period.Year)
	if err != nil {
		return computedEmployee{}, fmt.Errorf("failed to check existing payroll record: %w", err)
	}
	if exists {
		result.Status = payroll.ResultSkipped
		msg := payroll.ErrPayrollRecordAlreadyExists.Error()
		result.Message = &msg
		return computedEmployee{result: result}, nil
	}

	rate, err := s.rateRepo.GetActiveByRole(ctx, emp.Role)
	if err != nil {
		if errors.Is(err, payroll.ErrSalaryRateNotFound) {
			result.Status = payroll.ResultError
			msg := payroll.ErrSalaryRateNotFound.Error()
			result.Message = &msg
			return computedEmployee{result: result}, nil
		}
		return computedEmployee{}, fmt.Errorf("failed to get salary rate: %w", err)
	}

	strategy, ok := s.strategies[emp.Role]
	if !ok {
		result.Status = payroll.ResultError
		msg := payroll.ErrNoStrategyForRole.Error()
		result.Message = &msg
		return computedEmployee{result: result}, nil
	}

	calc, err := strategy.Calculate(ctx, emp, rate, period)
	if err != nil {
		return computedEmployee{}, err
	}

	result.Status = payroll.ResultSuccess
	record := payroll.PayrollRecord{
		EmployeeID: emp.ID,
		// Snapshot name and role as of this run for the audit trail.
		EmployeeName:     emp.FullName,
		EmployeeRole:     emp.Role,
		PeriodMonth:      period.Month,
		PeriodYear:       period.Year,
		TotalSessions:    calc.TotalSessions,
		AttendedSessions: calc.AttendedSessions,
		AbsentSessions:   calc.AbsentSessions,
		LateSessions:     calc.LateSessions,
		BaseSalary:       calc.BaseSalary,
		SessionRate:      calc.SessionRate,
		AttendanceBonus:  calc.AttendanceBonus,
		OvertimeAmount:   calc.OvertimeAmount,
		TotalAllowances:  calc.TotalAllowances,
		TotalDeductions:  calc.TotalDeductions,
		GrossSalary:      calc.GrossSalary,
		NetSalary:        calc.NetSalary,
		Status:           payroll.PayrollStatusDraft,
		Detail:           calc.Detail,
		GeneratedBy:      generatedBy,
	}

	return computedEmployee{result: result, record: &record}, nil
}

// ========== RECORDS ==========

func (s *PayrollServiceImpl) GetPayrollRecord(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return mapToRecordResponse(record), nil
}

func (s *PayrollServiceImpl) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	records, totalCount, err := s.payrollRepo.ListPayrollRecords(ctx, filter)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	return payroll.ListPayrollRecordResponse{
		Data:       mapToRecordResponses(records),
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) FinalizePayroll(ctx context.Context, req payroll.FinalizePayrollRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	paidBy := req.PaidBy
	if paidBy == "" {
		if username := usernameFromContext(ctx); username != nil {
			paidBy = *username
		}
	}

	return s.payrollRepo.FinalizePayrollRecords(ctx, req.RecordIDs, paidBy)
}

func (s *PayrollServiceImpl) DeletePayrollRecord(ctx context.Context, id string) error {
	return s.payrollRepo.DeletePayrollRecord(ctx, id)
}

// ========== RATES ==========

func (s *PayrollServiceImpl) CreateSalaryRate(ctx context.Context, req payroll.CreateSalaryRateRequest) (payroll.SalaryRateResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryRateResponse{}, err
	}

	rate := payroll.SalaryRate{
		Role:       employee.Role(req.Role),
		BaseAmount: req.BaseAmount,
		Allowances: req.Allowances,
		Deductions: req.Deductions,
		IsActive:   true,
	}

	created, err := s.rateRepo.Create(ctx, rate)
	if err != nil {
		return payroll.SalaryRateResponse{}, err
	}

	return mapToRateResponse(created), nil
}

func (s *PayrollServiceImpl) GetActiveSalaryRate(ctx context.Context, role string) (payroll.SalaryRateResponse, error) {
	if !employee.IsValidRole(role) {
		return payroll.SalaryRateResponse{}, employee.ErrInvalidRole
	}

	rate, err := s.rateRepo.GetActiveByRole(ctx, employee.Role(role))
	if err != nil {
		return payroll.SalaryRateResponse{}, err
	}

	return mapToRateResponse(rate), nil
}

func (s *PayrollServiceImpl) ListSalaryRates(ctx context.Context, role *string) ([]payroll.SalaryRateResponse, error) {
	rates, err := s.rateRepo.List(ctx, role)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.SalaryRateResponse, 0, len(rates))
	for _, rate := range rates {
		result = append(result, mapToRateResponse(rate))
	}

	return result, nil
}

func (s *PayrollServiceImpl) DeactivateSalaryRate(ctx context.Context, id string) error {
	return s.rateRepo.Deactivate(ctx, id)
}

// ========== SUMMARY ==========

func (s *PayrollServiceImpl) GetPayrollSummary(ctx context.Context, month, year int) (payroll.PayrollSummaryResponse, error) {
	if _, err := ResolvePeriod(month, year); err != nil {
		return payroll.PayrollSummaryResponse{}, err
	}

	return s.payrollRepo.GetPayrollSummary(ctx, month, year)
}

// ========== HELPERS ==========

func mapToRecordResponse(r payroll.PayrollRecord) payroll.PayrollRecordResponse {
	var paidAtStr *string
	if r.PaidAt != nil {
		str := r.PaidAt.Format(time.RFC3339)
		paidAtStr = &str
	}

	return payroll.PayrollRecordResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		EmployeeName:     r.EmployeeName,
		EmployeeRole:     string(r.EmployeeRole),
		PeriodMonth:      r.PeriodMonth,
		PeriodYear:       r.PeriodYear,
		TotalSessions:    r.TotalSessions,
		AttendedSessions: r.AttendedSessions,
		AbsentSessions:   r.AbsentSessions,
		LateSessions:     r.LateSessions,
		BaseSalary:       r.BaseSalary,
		SessionRate:      r.SessionRate,
		AttendanceBonus:  r.AttendanceBonus,
		OvertimeAmount:   r.OvertimeAmount,
		TotalAllowances:  r.TotalAllowances,
		TotalDeductions:  r.TotalDeductions,
		GrossSalary:      r.GrossSalary,
		NetSalary:        r.NetSalary,
		Status:           string(r.Status),
		Detail:           r.Detail,
		GeneratedBy:      r.GeneratedBy,
		PaidAt:           paidAtStr,
	}
}

func mapToRecordResponses(records []payroll.PayrollRecord) []payroll.PayrollRecordResponse {
	result := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapToRecordResponse(r))
	}
	return result
}

func mapToRateResponse(r payroll.SalaryRate) payroll.SalaryRateResponse {
	return payroll.SalaryRateResponse{
		ID:         r.ID,
		Role:       string(r.Role),
		BaseAmount: r.BaseAmount,
		Allowances: r.Allowances,
		Deductions: r.Deductions,
		IsActive:   r.IsActive,
	}
}
