package payroll

import (
	"fmt"
	"time"

	"github.com/santrikita/tpq-backend-go/internal/domain/payroll"
	"github.com/santrikita/tpq-backend-go/internal/pkg/validator"
)

// Period is one resolved payroll month with inclusive calendar bounds.
type Period struct {
	Month int
	Year  int
	Start time.Time
	End   time.Time
}

// ResolvePeriod validates the month/year pair and computes the first and
// last calendar day of the month.
func ResolvePeriod(month, year int) (Period, error) {
	if !validator.IsValidMonth(month) || !validator.IsValidYear(year) {
		return Period{}, payroll.ErrInvalidPeriod
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	return Period{Month: month, Year: year, Start: start, End: end}, nil
}

// WorkingDays counts the days of the period not falling on the weekly rest
// day. Used as the denominator for fixed-salary attendance percentages.
func (p Period) WorkingDays(restDay time.Weekday) int {
	days := 0
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != restDay {
			days++
		}
	}
	return days
}

// Label renders the period as "<month>/<year>".
func (p Period) Label() string {
	return fmt.Sprintf("%d/%d", p.Month, p.Year)
}
