package attendance

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
)

func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusPresent, StatusAbsent, StatusLate:
		return true
	}
	return false
}

// AttendanceRecord is one presence observation for a session or day.
// Payroll only ever reads these rows; it never mutates them.
type AttendanceRecord struct {
	ID         string
	HalaqahID  *string
	SantriID   *string
	Date       time.Time
	Status     Status
	RecordedBy string
	Notes      *string
	CreatedAt  time.Time
}

// SessionSummary aggregates attendance joined through a musyrif's halaqah
// for one period. Attended counts every matching row, including absent and
// late ones; the subsets are reported separately.
type SessionSummary struct {
	Attended int
	Absent   int
	Late     int
}
