package payroll

import "context"

type PayrollService interface {
	// Generation
	GeneratePayroll(ctx context.Context, req GeneratePayrollRequest) (GeneratePayrollResponse, error)

	// Records
	GetPayrollRecord(ctx context.Context, id string) (PayrollRecordResponse, error)
	ListPayrollRecords(ctx context.Context, filter PayrollFilter) (ListPayrollRecordResponse, error)
	FinalizePayroll(ctx context.Context, req FinalizePayrollRequest) error
	DeletePayrollRecord(ctx context.Context, id string) error

	// Rates
	CreateSalaryRate(ctx context.Context, req CreateSalaryRateRequest) (SalaryRateResponse, error)
	GetActiveSalaryRate(ctx context.Context, role string) (SalaryRateResponse, error)
	ListSalaryRates(ctx context.Context, role *string) ([]SalaryRateResponse, error)
	DeactivateSalaryRate(ctx context.Context, id string) error

	// Summary
	GetPayrollSummary(ctx context.Context, month, year int) (PayrollSummaryResponse, error)
}
