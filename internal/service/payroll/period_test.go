package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santrikita/tpq-backend-go/internal/domain/payroll"
)

func TestResolvePeriod(t *testing.T) {
	t.Run("valid period", func(t *testing.T) {
		period, err := ResolvePeriod(2, 2025)
		require.NoError(t, err)

		assert.Equal(t, 2, period.Month)
		assert.Equal(t, 2025, period.Year)
		assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), period.Start)
		assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), period.End)
	})

	t.Run("leap february", func(t *testing.T) {
		period, err := ResolvePeriod(2, 2024)
		require.NoError(t, err)

		assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), period.End)
	})

	t.Run("december wraps the year", func(t *testing.T) {
		period, err := ResolvePeriod(12, 2025)
		require.NoError(t, err)

		assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), period.End)
	})

	t.Run("invalid month", func(t *testing.T) {
		for _, month := range []int{0, 13, -1} {
			_, err := ResolvePeriod(month, 2025)
			assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
		}
	})

	t.Run("invalid year", func(t *testing.T) {
		for _, year := range []int{0, 123, 10000} {
			_, err := ResolvePeriod(1, year)
			assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
		}
	})
}

func TestPeriodWorkingDays(t *testing.T) {
	tests := []struct {
		name    string
		month   int
		year    int
		restDay time.Weekday
		want    int
	}{
		// January 2025 has 31 days and 4 Sundays
		{"january 2025 sundays off", 1, 2025, time.Sunday, 27},
		// January 2025 has 5 Fridays
		{"january 2025 fridays off", 1, 2025, time.Friday, 26},
		{"february 2025 sundays off", 2, 2025, time.Sunday, 24},
		{"april 2025 sundays off", 4, 2025, time.Sunday, 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period, err := ResolvePeriod(tt.month, tt.year)
			require.NoError(t, err)

			assert.Equal(t, tt.want, period.WorkingDays(tt.restDay))
		})
	}
}

func TestPeriodLabel(t *testing.T) {
	period, err := ResolvePeriod(3, 2025)
	require.NoError(t, err)

	assert.Equal(t, "3/2025", period.Label())
}
