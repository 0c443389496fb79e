package payroll

import "errors"

var (
	ErrSalaryRateNotFound         = errors.New("rate policy not found for this role")
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll already exists for this period")
	ErrPayrollRecordAlreadyPaid   = errors.New("payroll record already paid, cannot modify")
	ErrInvalidPeriod              = errors.New("invalid payroll period")
	ErrCannotDeletePaidRecord     = errors.New("cannot delete paid payroll record")
	ErrNoStrategyForRole          = errors.New("no compensation strategy for this role")
)
