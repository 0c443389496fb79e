package halaqah

import "time"

// Halaqah groups santri sessions under one responsible musyrif. The
// sessions-per-week count drives the scheduled-session estimate used by
// payroll generation.
type Halaqah struct {
	ID              string
	Name            string
	MusyrifID       string
	SessionsPerWeek int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	MusyrifName *string
}
