package employee

import (
	"github.com/santrikita/tpq-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName    string  `json:"full_name"`
	Role        string  `json:"role"`
	PhoneNumber string  `json:"phone_number"`
	Address     *string `json:"address,omitempty"`
	JoinDate    string  `json:"join_date"` // YYYY-MM-DD
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if !IsValidRole(r.Role) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be 'musyrif', 'admin' or 'staff'"})
	}
	if r.PhoneNumber != "" && !validator.IsValidPhoneNumber(r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{Field: "phone_number", Message: "is not a valid phone number"})
	}
	if r.JoinDate != "" {
		if _, ok := validator.IsValidDate(r.JoinDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "join_date", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID          string
	FullName    *string `json:"full_name,omitempty"`
	Role        *string `json:"role,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Address     *string `json:"address,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "must not be empty"})
	}
	if r.Role != nil && !IsValidRole(*r.Role) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be 'musyrif', 'admin' or 'staff'"})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{string(StatusActive), string(StatusInactive)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'active' or 'inactive'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFilter struct {
	Role   *string
	Status *string
}

type EmployeeResponse struct {
	ID          string  `json:"id"`
	FullName    string  `json:"full_name"`
	Role        string  `json:"role"`
	PhoneNumber string  `json:"phone_number,omitempty"`
	Address     *string `json:"address,omitempty"`
	JoinDate    string  `json:"join_date"`
	Status      string  `json:"status"`
}
