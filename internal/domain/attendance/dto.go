package attendance

import (
	"github.com/santrikita/tpq-backend-go/internal/pkg/validator"
)

type RecordAttendanceRequest struct {
	HalaqahID *string `json:"halaqah_id,omitempty"`
	SantriID  *string `json:"santri_id,omitempty"`
	Date      string  `json:"date"` // YYYY-MM-DD
	Status    string  `json:"status"`
	Notes     *string `json:"notes,omitempty"`
}

func (r *RecordAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "is required"})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if !IsValidStatus(r.Status) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'present', 'absent' or 'late'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID         string  `json:"id"`
	HalaqahID  *string `json:"halaqah_id,omitempty"`
	SantriID   *string `json:"santri_id,omitempty"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	RecordedBy string  `json:"recorded_by"`
	Notes      *string `json:"notes,omitempty"`
}
