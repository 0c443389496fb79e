package payroll

import (
	"context"

	"github.com/santrikita/tpq-backend-go/internal/domain/employee"
)

// PayrollRepository defines data access for generated payroll records.
type PayrollRepository interface {
	CreatePayrollRecord(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetPayrollRecordByID(ctx context.Context, id string) (PayrollRecord, error)
	ExistsByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (bool, error)
	ListPayrollRecords(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, int64, error)
	FinalizePayrollRecords(ctx context.Context, ids []string, paidBy string) error
	DeletePayrollRecord(ctx context.Context, id string) error
	GetPayrollSummary(ctx context.Context, month, year int) (PayrollSummaryResponse, error)
}

// SalaryRateRepository defines data access for compensation rate policies.
type SalaryRateRepository interface {
	// Create inserts a new active rate and deactivates any previously
	// active rate for the same role within the same transaction.
	Create(ctx context.Context, rate SalaryRate) (SalaryRate, error)
	GetActiveByRole(ctx context.Context, role employee.Role) (SalaryRate, error)
	List(ctx context.Context, role *string) ([]SalaryRate, error)
	Deactivate(ctx context.Context, id string) error
}
