package response

import (
	"errors"
	"net/http"

	"github.com/santrikita/tpq-backend-go/internal/domain/auth"
	"github.com/santrikita/tpq-backend-go/internal/domain/employee"
	"github.com/santrikita/tpq-backend-go/internal/domain/halaqah"
	"github.com/santrikita/tpq-backend-go/internal/domain/payroll"
	"github.com/santrikita/tpq-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInvalidRole):
		BadRequest(w, "Invalid employee role", nil)
	case errors.Is(err, employee.ErrPhoneExists):
		Conflict(w, "Phone number already registered")

	// Halaqah domain errors
	case errors.Is(err, halaqah.ErrHalaqahNotFound):
		NotFound(w, "Halaqah not found")
	case errors.Is(err, halaqah.ErrMusyrifNotFound):
		BadRequest(w, "Musyrif not found or not a musyrif", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrSalaryRateNotFound):
		NotFound(w, "Salary rate not found")
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists):
		Conflict(w, "Payroll already exists for this period")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyPaid):
		Conflict(w, "Payroll record already paid")
	case errors.Is(err, payroll.ErrCannotDeletePaidRecord):
		Conflict(w, "Cannot delete a paid payroll record")

	// Anything else is a hard failure; surface the underlying message so
	// batch-fatal write errors are diagnosable from the response.
	default:
		InternalServerError(w, err.Error())
	}
}
