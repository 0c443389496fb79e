package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santrikita/tpq-backend-go/internal/domain/attendance"
	"github.com/santrikita/tpq-backend-go/internal/domain/employee"
	"github.com/santrikita/tpq-backend-go/internal/domain/payroll"
)

type fakeSessionSource struct {
	weekly int
	err    error
}

func (f *fakeSessionSource) CountWeeklySessionsByMusyrif(ctx context.Context, musyrifID string) (int, error) {
	return f.weekly, f.err
}

type fakeSummarySource struct {
	summary attendance.SessionSummary
	err     error
}

func (f *fakeSummarySource) SummarizeByMusyrif(ctx context.Context, musyrifID string, from, to time.Time) (attendance.SessionSummary, error) {
	return f.summary, f.err
}

type fakeActivitySource struct {
	days int
	err  error
}

func (f *fakeActivitySource) CountRecordedDays(ctx context.Context, recordedBy string, from, to time.Time) (int, error) {
	return f.days, f.err
}

func mustPeriod(t *testing.T, month, year int) Period {
	t.Helper()
	period, err := ResolvePeriod(month, year)
	require.NoError(t, err)
	return period
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func testMusyrif() employee.Employee {
	return employee.Employee{ID: "emp-1", FullName: "Ust. Ahmad", Role: employee.RoleMusyrif}
}

func TestSessionStrategyCalculate(t *testing.T) {
	ctx := context.Background()
	period := mustPeriod(t, 1, 2025)

	t.Run("below bonus threshold", func(t *testing.T) {
		strategy := NewSessionStrategy(
			&fakeSessionSource{weekly: 5},
			&fakeSummarySource{summary: attendance.SessionSummary{Attended: 10}},
			DefaultCalcConfig(),
		)
		rate := payroll.SalaryRate{
			BaseAmount: decimal.NewFromInt(50000),
			Allowances: map[string]decimal.Decimal{"transport": decimal.NewFromInt(20000)},
		}

		calc, err := strategy.Calculate(ctx, testMusyrif(), rate, period)
		require.NoError(t, err)

		assert.Equal(t, 20, calc.TotalSessions)
		assert.Equal(t, 10, calc.AttendedSessions)
		assertDecimal(t, "500000", calc.BaseSalary)
		assertDecimal(t, "50", calc.Detail.AttendancePercentage)
		assertDecimal(t, "0", calc.AttendanceBonus)
		assertDecimal(t, "20000", calc.TotalAllowances)
		assertDecimal(t, "520000", calc.GrossSalary)
		assertDecimal(t, "520000", calc.NetSalary)
		assert.Equal(t, "session", calc.Detail.Method)
	})

	t.Run("late penalty per occurrence", func(t *testing.T) {
		strategy := NewSessionStrategy(
			&fakeSessionSource{weekly: 5},
			&fakeSummarySource{summary: attendance.SessionSummary{Attended: 10, Late: 3}},
			DefaultCalcConfig(),
		)
		rate := payroll.SalaryRate{
			BaseAmount: decimal.NewFromInt(50000),
			Allowances: map[string]decimal.Decimal{"transport": decimal.NewFromInt(20000)},
			Deductions: map[string]decimal.Decimal{payroll.DeductionLatePenalty: decimal.NewFromInt(10000)},
		}

		calc, err := strategy.Calculate(ctx, testMusyrif(), rate, period)
		require.NoError(t, err)

		assertDecimal(t, "30000", calc.Detail.LatePenalty)
		assertDecimal(t, "30000", calc.TotalDeductions)
		assertDecimal(t, "490000", calc.NetSalary)
	})

	t.Run("full attendance earns bonus", func(t *testing.T) {
		strategy := NewSessionStrategy(
			&fakeSessionSource{weekly: 3},
			&fakeSummarySource{summary: attendance.SessionSummary{Attended: 12}},
			DefaultCalcConfig(),
		)
		rate := payroll.SalaryRate{BaseAmount: decimal.NewFromInt(50000)}

		calc, err := strategy.Calculate(ctx, testMusyrif(), rate, period)
		require.NoError(t, err)

		assert.Equal(t, 12, calc.TotalSessions)
		assertDecimal(t, "100", calc.Detail.AttendancePercentage)
		// Bonus is two session rates
		assertDecimal(t, "100000", calc.AttendanceBonus)
		assertDecimal(t, "700000", calc.NetSalary)
	})

	t.Run("no scheduled sessions yields zero percentage", func(t *testing.T) {
		strategy := NewSessionStrategy(
			&fakeSessionSource{weekly: 0},
			&fakeSummarySource{summary: attendance.SessionSummary{}},
			DefaultCalcConfig(),
		)
		rate := payroll.SalaryRate{BaseAmount: decimal.NewFromInt(50000)}

		calc, err := strategy.Calculate(ctx, testMusyrif(), rate, period)
		require.NoError(t, err)

		assert.Equal(t, 0, calc.TotalSessions)
		assertDecimal(t, "0", calc.Detail.AttendancePercentage)
		assertDecimal(t, "0", calc.AttendanceBonus)
		assertDecimal(t, "0", calc.NetSalary)
	})

	t.Run("net salary may go negative", func(t *testing.T) {
		strategy := NewSessionStrategy(
			&fakeSessionSource{weekly: 5},
			&fakeSummarySource{summary: attendance.SessionSummary{Attended: 1, Late: 10}},
			DefaultCalcConfig(),
		)
		rate := payroll.SalaryRate{
			BaseAmount: decimal.NewFromInt(50000),
			Deductions: map[string]decimal.Decimal{payroll.DeductionLatePenalty: decimal.NewFromInt(10000)},
		}

		calc, err := strategy.Calculate(ctx, testMusyrif(), rate, period)
		require.NoError(t, err)

		// 50000 gross, 100000 in penalties
		assertDecimal(t, "-50000", calc.NetSalary)
		assert.True(t, calc.NetSalary.IsNegative())
	})

	t.Run("source failure propagates", func(t *testing.T) {
		strategy := NewSessionStrategy(
			&fakeSessionSource{err: errors.New("connection refused")},
			&fakeSummarySource{},
			DefaultCalcConfig(),
		)

		_, err := strategy.Calculate(ctx, testMusyrif(), payroll.SalaryRate{}, period)
		assert.Error(t, err)
	})
}

func TestFixedStrategyCalculate(t *testing.T) {
	ctx := context.Background()
	// January 2025 has 27 working days with Sundays off
	period := mustPeriod(t, 1, 2025)
	admin := employee.Employee{ID: "emp-2", FullName: "Siti", Role: employee.RoleAdmin}

	t.Run("full presence earns bonus", func(t *testing.T) {
		strategy := NewFixedStrategy(&fakeActivitySource{days: 27}, DefaultCalcConfig())
		rate := payroll.SalaryRate{BaseAmount: decimal.NewFromInt(3000000)}

		calc, err := strategy.Calculate(ctx, admin, rate, period)
		require.NoError(t, err)

		assert.Equal(t, 27, calc.Detail.WorkingDays)
		assert.Equal(t, 27, calc.Detail.DaysPresent)
		assertDecimal(t, "100", calc.Detail.AttendancePercentage)
		assertDecimal(t, "150000", calc.AttendanceBonus)
		assertDecimal(t, "3150000", calc.NetSalary)
		assert.Equal(t, "fixed", calc.Detail.Method)
	})

	t.Run("no recorded activity defaults to full presence", func(t *testing.T) {
		strategy := NewFixedStrategy(&fakeActivitySource{days: 0}, DefaultCalcConfig())
		rate := payroll.SalaryRate{BaseAmount: decimal.NewFromInt(3000000)}

		calc, err := strategy.Calculate(ctx, admin, rate, period)
		require.NoError(t, err)

		assert.Equal(t, 27, calc.Detail.DaysPresent)
		assertDecimal(t, "150000", calc.AttendanceBonus)
	})

	t.Run("partial presence below threshold", func(t *testing.T) {
		strategy := NewFixedStrategy(&fakeActivitySource{days: 20}, DefaultCalcConfig())
		rate := payroll.SalaryRate{BaseAmount: decimal.NewFromInt(3000000)}

		calc, err := strategy.Calculate(ctx, admin, rate, period)
		require.NoError(t, err)

		assert.Equal(t, 20, calc.Detail.DaysPresent)
		assertDecimal(t, "0", calc.AttendanceBonus)
		assertDecimal(t, "3000000", calc.NetSalary)
	})

	t.Run("late penalty key excluded from flat deductions", func(t *testing.T) {
		strategy := NewFixedStrategy(&fakeActivitySource{days: 20}, DefaultCalcConfig())
		rate := payroll.SalaryRate{
			BaseAmount: decimal.NewFromInt(3000000),
			Deductions: map[string]decimal.Decimal{
				"bpjs":                       decimal.NewFromInt(50000),
				payroll.DeductionLatePenalty: decimal.NewFromInt(10000),
			},
		}

		calc, err := strategy.Calculate(ctx, admin, rate, period)
		require.NoError(t, err)

		assertDecimal(t, "50000", calc.TotalDeductions)
		assertDecimal(t, "2950000", calc.NetSalary)
	})

	t.Run("allowances and deductions in net", func(t *testing.T) {
		strategy := NewFixedStrategy(&fakeActivitySource{days: 27}, DefaultCalcConfig())
		rate := payroll.SalaryRate{
			BaseAmount: decimal.NewFromInt(3000000),
			Allowances: map[string]decimal.Decimal{"meal": decimal.NewFromInt(200000)},
			Deductions: map[string]decimal.Decimal{"bpjs": decimal.NewFromInt(50000)},
		}

		calc, err := strategy.Calculate(ctx, admin, rate, period)
		require.NoError(t, err)

		assertDecimal(t, "200000", calc.TotalAllowances)
		assertDecimal(t, "3350000", calc.GrossSalary)
		assertDecimal(t, "3300000", calc.NetSalary)
	})

	t.Run("source failure propagates", func(t *testing.T) {
		strategy := NewFixedStrategy(&fakeActivitySource{err: errors.New("connection refused")}, DefaultCalcConfig())

		_, err := strategy.Calculate(ctx, admin, payroll.SalaryRate{BaseAmount: decimal.NewFromInt(1)}, period)
		assert.Error(t, err)
	})
}
