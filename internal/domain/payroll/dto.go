package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/santrikita/tpq-backend-go/internal/domain/employee"
	"github.com/santrikita/tpq-backend-go/internal/pkg/validator"
)

// ========== GENERATION DTOs ==========

type GeneratePayrollRequest struct {
	Month       int      `json:"month"`
	Year        int      `json:"year"`
	EmployeeIDs []string `json:"employee_ids,omitempty"` // Empty = all eligible active employees
	GeneratedBy *string  `json:"generated_by,omitempty"` // Audit only, not validated
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month == 0 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "is required"})
	} else if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year == 0 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "is required"})
	} else if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a 4-digit year"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Per-employee outcome statuses of one generation run.
const (
	ResultSuccess = "success"
	ResultSkipped = "skipped"
	ResultError   = "error"
)

type GenerateResult struct {
	EmployeeID   string           `json:"employee_id"`
	EmployeeName string           `json:"employee_name"`
	Status       string           `json:"status"`
	PayrollID    *string          `json:"payroll_id,omitempty"`
	NetSalary    *decimal.Decimal `json:"net_salary,omitempty"`
	Message      *string          `json:"message,omitempty"`
}

type GeneratePayrollResponse struct {
	Results []GenerateResult `json:"results"`
	Period  string           `json:"period"` // "<month>/<year>"
}

// Generated counts how many results succeeded.
func (r GeneratePayrollResponse) Generated() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == ResultSuccess {
			n++
		}
	}
	return n
}

// ========== SALARY RATE DTOs ==========

type CreateSalaryRateRequest struct {
	Role       string                     `json:"role"`
	BaseAmount decimal.Decimal            `json:"base_amount"`
	Allowances map[string]decimal.Decimal `json:"allowances,omitempty"`
	Deductions map[string]decimal.Decimal `json:"deductions,omitempty"`
}

func (r *CreateSalaryRateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !employee.IsValidRole(r.Role) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be 'musyrif', 'admin' or 'staff'"})
	}
	if !r.BaseAmount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "base_amount", Message: "must be positive"})
	}
	for name, amount := range r.Allowances {
		if amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "allowances." + name, Message: "must be non-negative"})
		}
	}
	for name, amount := range r.Deductions {
		if amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "deductions." + name, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalaryRateResponse struct {
	ID         string                     `json:"id"`
	Role       string                     `json:"role"`
	BaseAmount decimal.Decimal            `json:"base_amount"`
	Allowances map[string]decimal.Decimal `json:"allowances,omitempty"`
	Deductions map[string]decimal.Decimal `json:"deductions,omitempty"`
	IsActive   bool                       `json:"is_active"`
}

// ========== PAYROLL RECORD DTOs ==========

type PayrollFilter struct {
	PeriodMonth *int    `json:"period_month,omitempty"`
	PeriodYear  *int    `json:"period_year,omitempty"`
	Status      *string `json:"status,omitempty"`
	EmployeeID  *string `json:"employee_id,omitempty"`
	Page        int     `json:"page"`
	Limit       int     `json:"limit"`
	SortBy      string  `json:"sort_by"`
	SortOrder   string  `json:"sort_order"`
}

type FinalizePayrollRequest struct {
	RecordIDs []string `json:"record_ids"`
	PaidBy    string   `json:"-"`
}

func (r *FinalizePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.RecordIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "record_ids", Message: "at least one record is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollRecordResponse struct {
	ID               string            `json:"id"`
	EmployeeID       string            `json:"employee_id"`
	EmployeeName     string            `json:"employee_name"`
	EmployeeRole     string            `json:"employee_role"`
	PeriodMonth      int               `json:"period_month"`
	PeriodYear       int               `json:"period_year"`
	TotalSessions    int               `json:"total_sessions"`
	AttendedSessions int               `json:"attended_sessions"`
	AbsentSessions   int               `json:"absent_sessions"`
	LateSessions     int               `json:"late_sessions"`
	BaseSalary       decimal.Decimal   `json:"base_salary"`
	SessionRate      decimal.Decimal   `json:"session_rate"`
	AttendanceBonus  decimal.Decimal   `json:"attendance_bonus"`
	OvertimeAmount   decimal.Decimal   `json:"overtime_amount"`
	TotalAllowances  decimal.Decimal   `json:"total_allowances"`
	TotalDeductions  decimal.Decimal   `json:"total_deductions"`
	GrossSalary      decimal.Decimal   `json:"gross_salary"`
	NetSalary        decimal.Decimal   `json:"net_salary"`
	Status           string            `json:"status"`
	Detail           CalculationDetail `json:"calculation_detail"`
	GeneratedBy      *string           `json:"generated_by,omitempty"`
	PaidAt           *string           `json:"paid_at,omitempty"`
}

type ListPayrollRecordResponse struct {
	Data       []PayrollRecordResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}

type PayrollSummaryResponse struct {
	PeriodMonth      int             `json:"period_month"`
	PeriodYear       int             `json:"period_year"`
	TotalEmployees   int             `json:"total_employees"`
	TotalBaseSalary  decimal.Decimal `json:"total_base_salary"`
	TotalAllowances  decimal.Decimal `json:"total_allowances"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	TotalBonus       decimal.Decimal `json:"total_bonus"`
	TotalGrossSalary decimal.Decimal `json:"total_gross_salary"`
	TotalNetSalary   decimal.Decimal `json:"total_net_salary"`
	DraftCount       int             `json:"draft_count"`
	PaidCount        int             `json:"paid_count"`
}
