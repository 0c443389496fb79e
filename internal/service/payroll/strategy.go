package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/santrikita/tpq-backend-go/internal/domain/attendance"
	"github.com/santrikita/tpq-backend-go/internal/domain/employee"
	"github.com/santrikita/tpq-backend-go/internal/domain/payroll"
)

// CalcConfig holds the tunable calculation policy: bonus thresholds,
// bonus sizes and the scheduled-session approximation. Injected at
// construction so strategies stay testable without code changes.
type CalcConfig struct {
	SessionBonusThreshold decimal.Decimal // attendance %, session strategy
	SessionBonusFactor    decimal.Decimal // bonus = session rate × factor
	FixedBonusThreshold   decimal.Decimal // attendance %, fixed strategy
	FixedBonusRate        decimal.Decimal // bonus = base salary × rate
	WeeksPerMonth         int64           // monthly sessions ≈ weekly × this
	RestDay               time.Weekday
}

func DefaultCalcConfig() CalcConfig {
	return CalcConfig{
		SessionBonusThreshold: decimal.NewFromInt(90),
		SessionBonusFactor:    decimal.NewFromInt(2),
		FixedBonusThreshold:   decimal.NewFromInt(95),
		FixedBonusRate:        decimal.RequireFromString("0.05"),
		WeeksPerMonth:         4,
		RestDay:               time.Sunday,
	}
}

// Calculation is the full outcome of computing one employee's pay.
type Calculation struct {
	TotalSessions    int
	AttendedSessions int
	AbsentSessions   int
	LateSessions     int
	BaseSalary       decimal.Decimal
	SessionRate      decimal.Decimal
	AttendanceBonus  decimal.Decimal
	OvertimeAmount   decimal.Decimal
	TotalAllowances  decimal.Decimal
	TotalDeductions  decimal.Decimal
	GrossSalary      decimal.Decimal
	NetSalary        decimal.Decimal
	Detail           payroll.CalculationDetail
}

// CompensationStrategy computes one employee's pay for a resolved period
// under the active rate policy for their role.
type CompensationStrategy interface {
	Calculate(ctx context.Context, emp employee.Employee, rate payroll.SalaryRate, period Period) (Calculation, error)
}

// Narrow data-source views over the repositories, so strategies can be
// exercised with fakes.
type ScheduledSessionSource interface {
	CountWeeklySessionsByMusyrif(ctx context.Context, musyrifID string) (int, error)
}

type AttendanceSummarySource interface {
	SummarizeByMusyrif(ctx context.Context, musyrifID string, from, to time.Time) (attendance.SessionSummary, error)
}

type ActivitySource interface {
	CountRecordedDays(ctx context.Context, recordedBy string, from, to time.Time) (int, error)
}

// ========== SESSION STRATEGY ==========

// sessionStrategy pays per delivered session. Scheduled sessions are
// approximated as weekly sessions × WeeksPerMonth rather than computed from
// the calendar; this is a deliberate simplification carried over from the
// compensation policy.
type sessionStrategy struct {
	sessions  ScheduledSessionSource
	summaries AttendanceSummarySource
	cfg       CalcConfig
}

func NewSessionStrategy(sessions ScheduledSessionSource, summaries AttendanceSummarySource, cfg CalcConfig) CompensationStrategy {
	return &sessionStrategy{sessions: sessions, summaries: summaries, cfg: cfg}
}

func (s *sessionStrategy) Calculate(ctx context.Context, emp employee.Employee, rate payroll.SalaryRate, period Period) (Calculation, error) {
	weekly, err := s.sessions.CountWeeklySessionsByMusyrif(ctx, emp.ID)
	if err != nil {
		return Calculation{}, fmt.Errorf("failed to count scheduled sessions: %w", err)
	}
	totalSessions := weekly * int(s.cfg.WeeksPerMonth)

	summary, err := s.summaries.SummarizeByMusyrif(ctx, emp.ID, period.Start, period.End)
	if err != nil {
		return Calculation{}, fmt.Errorf("failed to summarize attendance: %w", err)
	}

	sessionRate := rate.BaseAmount
	baseSalary := sessionRate.Mul(decimal.NewFromInt(int64(summary.Attended)))

	allowancesTotal := sumAmounts(rate.Allowances)

	latePenalty := rate.LatePenaltyPerOccurrence().Mul(decimal.NewFromInt(int64(summary.Late)))
	deductionsTotal := sumAmountsExcept(rate.Deductions, payroll.DeductionLatePenalty).Add(latePenalty)

	attendancePct := decimal.Zero
	if totalSessions > 0 {
		attendancePct = decimal.NewFromInt(int64(summary.Attended)).
			Div(decimal.NewFromInt(int64(totalSessions))).
			Mul(decimal.NewFromInt(100))
	}

	attendanceBonus := decimal.Zero
	if attendancePct.GreaterThanOrEqual(s.cfg.SessionBonusThreshold) {
		attendanceBonus = sessionRate.Mul(s.cfg.SessionBonusFactor)
	}

	grossSalary := baseSalary.Add(allowancesTotal).Add(attendanceBonus)
	// Net is deliberately not floored at zero: a large late penalty may
	// drive it negative and that has to stay visible.
	netSalary := grossSalary.Sub(deductionsTotal)

	return Calculation{
		TotalSessions:    totalSessions,
		AttendedSessions: summary.Attended,
		AbsentSessions:   summary.Absent,
		LateSessions:     summary.Late,
		BaseSalary:       baseSalary,
		SessionRate:      sessionRate,
		AttendanceBonus:  attendanceBonus,
		OvertimeAmount:   decimal.Zero,
		TotalAllowances:  allowancesTotal,
		TotalDeductions:  deductionsTotal,
		GrossSalary:      grossSalary,
		NetSalary:        netSalary,
		Detail: payroll.CalculationDetail{
			Method:               "session",
			Rate:                 sessionRate,
			AttendancePercentage: attendancePct,
			LatePenalty:          latePenalty,
			Allowances:           rate.Allowances,
			Deductions:           rate.Deductions,
		},
	}, nil
}

// ========== FIXED STRATEGY ==========

// fixedStrategy pays a flat per-period amount. Presence is proxied by the
// days the employee recorded attendance rows themselves; an employee with no
// recorded activity is assumed fully present, not fully absent.
type fixedStrategy struct {
	activity ActivitySource
	cfg      CalcConfig
}

func NewFixedStrategy(activity ActivitySource, cfg CalcConfig) CompensationStrategy {
	return &fixedStrategy{activity: activity, cfg: cfg}
}

func (s *fixedStrategy) Calculate(ctx context.Context, emp employee.Employee, rate payroll.SalaryRate, period Period) (Calculation, error) {
	baseSalary := rate.BaseAmount
	workingDays := period.WorkingDays(s.cfg.RestDay)

	daysPresent, err := s.activity.CountRecordedDays(ctx, emp.ID, period.Start, period.End)
	if err != nil {
		return Calculation{}, fmt.Errorf("failed to count recorded days: %w", err)
	}
	if daysPresent == 0 {
		daysPresent = workingDays
	}

	attendancePct := decimal.NewFromInt(int64(daysPresent)).
		Div(decimal.NewFromInt(int64(workingDays))).
		Mul(decimal.NewFromInt(100))

	allowancesTotal := sumAmounts(rate.Allowances)
	deductionsTotal := sumAmountsExcept(rate.Deductions, payroll.DeductionLatePenalty)

	attendanceBonus := decimal.Zero
	if attendancePct.GreaterThanOrEqual(s.cfg.FixedBonusThreshold) {
		attendanceBonus = baseSalary.Mul(s.cfg.FixedBonusRate)
	}

	grossSalary := baseSalary.Add(allowancesTotal).Add(attendanceBonus)
	netSalary := grossSalary.Sub(deductionsTotal)

	return Calculation{
		BaseSalary:      baseSalary,
		SessionRate:     decimal.Zero,
		AttendanceBonus: attendanceBonus,
		OvertimeAmount:  decimal.Zero,
		TotalAllowances: allowancesTotal,
		TotalDeductions: deductionsTotal,
		GrossSalary:     grossSalary,
		NetSalary:       netSalary,
		Detail: payroll.CalculationDetail{
			Method:               "fixed",
			Rate:                 baseSalary,
			WorkingDays:          workingDays,
			DaysPresent:          daysPresent,
			AttendancePercentage: attendancePct,
			LatePenalty:          decimal.Zero,
			Allowances:           rate.Allowances,
			Deductions:           rate.Deductions,
		},
	}, nil
}

// ========== HELPERS ==========

func sumAmounts(amounts map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total
}

func sumAmountsExcept(amounts map[string]decimal.Decimal, except string) decimal.Decimal {
	total := decimal.Zero
	for name, amount := range amounts {
		if name == except {
			continue
		}
		total = total.Add(amount)
	}
	return total
}
