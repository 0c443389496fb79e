package halaqah

import (
	"github.com/santrikita/tpq-backend-go/internal/pkg/validator"
)

type CreateHalaqahRequest struct {
	Name            string `json:"name"`
	MusyrifID       string `json:"musyrif_id"`
	SessionsPerWeek int    `json:"sessions_per_week"`
}

func (r *CreateHalaqahRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if validator.IsEmpty(r.MusyrifID) {
		errs = append(errs, validator.ValidationError{Field: "musyrif_id", Message: "is required"})
	}
	if r.SessionsPerWeek < 1 || r.SessionsPerWeek > 14 {
		errs = append(errs, validator.ValidationError{Field: "sessions_per_week", Message: "must be between 1 and 14"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateHalaqahRequest struct {
	ID              string
	Name            *string `json:"name,omitempty"`
	MusyrifID       *string `json:"musyrif_id,omitempty"`
	SessionsPerWeek *int    `json:"sessions_per_week,omitempty"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

func (r *UpdateHalaqahRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.SessionsPerWeek != nil && (*r.SessionsPerWeek < 1 || *r.SessionsPerWeek > 14) {
		errs = append(errs, validator.ValidationError{Field: "sessions_per_week", Message: "must be between 1 and 14"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HalaqahResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	MusyrifID       string  `json:"musyrif_id"`
	MusyrifName     *string `json:"musyrif_name,omitempty"`
	SessionsPerWeek int     `json:"sessions_per_week"`
	IsActive        bool    `json:"is_active"`
}
