package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/santrikita/tpq-backend-go/internal/domain/employee"
)

// DeductionLatePenalty is the reserved deduction name interpreted as a
// per-occurrence penalty instead of a flat monthly amount.
const DeductionLatePenalty = "late_penalty"

// SalaryRate is the active compensation policy for a role. BaseAmount is
// read as "per session" for musyrif and "per period" for salaried roles.
// At most one rate per role is active at a time.
type SalaryRate struct {
	ID         string
	Role       employee.Role
	BaseAmount decimal.Decimal
	Allowances map[string]decimal.Decimal
	Deductions map[string]decimal.Decimal
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LatePenaltyPerOccurrence returns the configured per-occurrence late
// penalty, or zero when the policy defines none.
func (r SalaryRate) LatePenaltyPerOccurrence() decimal.Decimal {
	if v, ok := r.Deductions[DeductionLatePenalty]; ok {
		return v
	}
	return decimal.Zero
}

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusDraft PayrollStatus = "draft"
	PayrollStatusPaid  PayrollStatus = "paid"
)

// PayrollRecord - Generated payroll result. Employee name and role are
// snapshotted at generation time so the record reflects the employee as of
// that run, not as of whenever it is read.
type PayrollRecord struct {
	ID               string
	EmployeeID       string
	EmployeeName     string
	EmployeeRole     employee.Role
	PeriodMonth      int
	PeriodYear       int
	TotalSessions    int
	AttendedSessions int
	AbsentSessions   int
	LateSessions     int
	BaseSalary       decimal.Decimal
	SessionRate      decimal.Decimal
	AttendanceBonus  decimal.Decimal
	OvertimeAmount   decimal.Decimal
	TotalAllowances  decimal.Decimal
	TotalDeductions  decimal.Decimal
	GrossSalary      decimal.Decimal
	NetSalary        decimal.Decimal
	Status           PayrollStatus
	Detail           CalculationDetail
	GeneratedBy      *string
	PaidAt           *time.Time
	PaidBy           *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CalculationDetail captures the inputs a record was computed from. It is
// persisted as JSONB purely for audit.
type CalculationDetail struct {
	Method               string                     `json:"method"` // "session" or "fixed"
	Rate                 decimal.Decimal            `json:"rate"`
	WorkingDays          int                        `json:"working_days,omitempty"`
	DaysPresent          int                        `json:"days_present,omitempty"`
	AttendancePercentage decimal.Decimal            `json:"attendance_percentage"`
	LatePenalty          decimal.Decimal            `json:"late_penalty"`
	Allowances           map[string]decimal.Decimal `json:"allowances,omitempty"`
	Deductions           map[string]decimal.Decimal `json:"deductions,omitempty"`
}
