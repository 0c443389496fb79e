package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santrikita/tpq-backend-go/internal/domain/attendance"
	"github.com/santrikita/tpq-backend-go/internal/domain/employee"
	"github.com/santrikita/tpq-backend-go/internal/domain/halaqah"
	"github.com/santrikita/tpq-backend-go/internal/domain/payroll"
	"github.com/santrikita/tpq-backend-go/internal/pkg/database"
)

// ========== FAKES ==========

type fakeEmployeeRepo struct {
	employees []employee.Employee
	calls     int
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	f.calls++
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetActiveByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	f.calls++
	var out []employee.Employee
	for _, e := range f.employees {
		for _, id := range ids {
			if e.ID == id && e.Status == employee.StatusActive {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) GetActiveByRoles(ctx context.Context, roles []employee.Role) ([]employee.Employee, error) {
	f.calls++
	var out []employee.Employee
	for _, e := range f.employees {
		for _, role := range roles {
			if e.Role == role && e.Status == employee.StatusActive {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, error) {
	f.calls++
	return f.employees, nil
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepo) SetStatus(ctx context.Context, id string, status employee.Status) error {
	return nil
}

type fakePayrollRepo struct {
	existing    map[string]bool // "employeeID:month/year"
	created     []payroll.PayrollRecord
	createErr   error
	finalizeErr error
	finalized   []string
}

func existingKey(employeeID string, month, year int) string {
	return employeeID + ":" + time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("1/2006")
}

func (f *fakePayrollRepo) CreatePayrollRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	if f.createErr != nil {
		return payroll.PayrollRecord{}, f.createErr
	}
	record.ID = "pay-" + record.EmployeeID
	f.created = append(f.created, record)
	return record, nil
}

func (f *fakePayrollRepo) GetPayrollRecordByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	for _, r := range f.created {
		if r.ID == id {
			return r, nil
		}
	}
	return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
}

func (f *fakePayrollRepo) ExistsByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (bool, error) {
	return f.existing[existingKey(employeeID, month, year)], nil
}

func (f *fakePayrollRepo) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	return f.created, int64(len(f.created)), nil
}

func (f *fakePayrollRepo) FinalizePayrollRecords(ctx context.Context, ids []string, paidBy string) error {
	if f.finalizeErr != nil {
		return f.finalizeErr
	}
	f.finalized = append(f.finalized, ids...)
	return nil
}

func (f *fakePayrollRepo) DeletePayrollRecord(ctx context.Context, id string) error {
	return nil
}

func (f *fakePayrollRepo) GetPayrollSummary(ctx context.Context, month, year int) (payroll.PayrollSummaryResponse, error) {
	return payroll.PayrollSummaryResponse{PeriodMonth: month, PeriodYear: year}, nil
}

type fakeRateRepo struct {
	rates map[employee.Role]payroll.SalaryRate
}

func (f *fakeRateRepo) Create(ctx context.Context, rate payroll.SalaryRate) (payroll.SalaryRate, error) {
	return rate, nil
}

func (f *fakeRateRepo) GetActiveByRole(ctx context.Context, role employee.Role) (payroll.SalaryRate, error) {
	rate, ok := f.rates[role]
	if !ok {
		return payroll.SalaryRate{}, payroll.ErrSalaryRateNotFound
	}
	return rate, nil
}

func (f *fakeRateRepo) List(ctx context.Context, role *string) ([]payroll.SalaryRate, error) {
	return nil, nil
}

func (f *fakeRateRepo) Deactivate(ctx context.Context, id string) error {
	return nil
}

type fakeHalaqahRepo struct {
	weeklyByMusyrif map[string]int
}

func (f *fakeHalaqahRepo) Create(ctx context.Context, h halaqah.Halaqah) (halaqah.Halaqah, error) {
	return h, nil
}

func (f *fakeHalaqahRepo) GetByID(ctx context.Context, id string) (halaqah.Halaqah, error) {
	return halaqah.Halaqah{}, halaqah.ErrHalaqahNotFound
}

func (f *fakeHalaqahRepo) List(ctx context.Context, activeOnly bool) ([]halaqah.Halaqah, error) {
	return nil, nil
}

func (f *fakeHalaqahRepo) Update(ctx context.Context, req halaqah.UpdateHalaqahRequest) error {
	return nil
}

func (f *fakeHalaqahRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func (f *fakeHalaqahRepo) CountWeeklySessionsByMusyrif(ctx context.Context, musyrifID string) (int, error) {
	return f.weeklyByMusyrif[musyrifID], nil
}

type fakeAttendanceRepo struct {
	summaries    map[string]attendance.SessionSummary
	recordedDays map[string]int
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	return record, nil
}

func (f *fakeAttendanceRepo) ListByHalaqah(ctx context.Context, halaqahID string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) SummarizeByMusyrif(ctx context.Context, musyrifID string, from, to time.Time) (attendance.SessionSummary, error) {
	return f.summaries[musyrifID], nil
}

func (f *fakeAttendanceRepo) CountRecordedDays(ctx context.Context, recordedBy string, from, to time.Time) (int, error) {
	return f.recordedDays[recordedBy], nil
}

// ========== SETUP ==========

type generateFixture struct {
	service      payroll.PayrollService
	employeeRepo *fakeEmployeeRepo
	payrollRepo  *fakePayrollRepo
	rateRepo     *fakeRateRepo
}

func stubTransactions(t *testing.T) {
	t.Helper()
	prev := runInTransaction
	runInTransaction = func(ctx context.Context, db *database.DB, fn func(tx pgx.Tx) error) error {
		return fn(nil)
	}
	t.Cleanup(func() { runInTransaction = prev })
}

func newGenerateFixture(t *testing.T) *generateFixture {
	stubTransactions(t)

	employeeRepo := &fakeEmployeeRepo{
		employees: []employee.Employee{
			{ID: "musyrif-1", FullName: "Ust. Ahmad", Role: employee.RoleMusyrif, Status: employee.StatusActive},
			{ID: "admin-1", FullName: "Siti", Role: employee.RoleAdmin, Status: employee.StatusActive},
		},
	}
	payrollRepo := &fakePayrollRepo{existing: map[string]bool{}}
	rateRepo := &fakeRateRepo{
		rates: map[employee.Role]payroll.SalaryRate{
			employee.RoleMusyrif: {BaseAmount: decimal.NewFromInt(50000)},
			employee.RoleAdmin:   {BaseAmount: decimal.NewFromInt(3000000)},
		},
	}
	halaqahRepo := &fakeHalaqahRepo{weeklyByMusyrif: map[string]int{"musyrif-1": 3}}
	attendanceRepo := &fakeAttendanceRepo{
		summaries:    map[string]attendance.SessionSummary{"musyrif-1": {Attended: 10}},
		recordedDays: map[string]int{},
	}

	svc := NewPayrollService(nil, payrollRepo, rateRepo, employeeRepo, halaqahRepo, attendanceRepo, DefaultCalcConfig())
	return &generateFixture{
		service:      svc,
		employeeRepo: employeeRepo,
		payrollRepo:  payrollRepo,
		rateRepo:     rateRepo,
	}
}

// ========== TESTS ==========

func TestGeneratePayroll(t *testing.T) {
	ctx := context.Background()

	t.Run("generates one record per eligible employee", func(t *testing.T) {
		f := newGenerateFixture(t)

		resp, err := f.service.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{Month: 1, Year: 2025})
		require.NoError(t, err)

		require.Len(t, resp.Results, 2)
		assert.Equal(t, 2, resp.Generated())
		assert.Equal(t, "1/2025", resp.Period)
		assert.Len(t, f.payrollRepo.created, 2)
		for _, res := range resp.Results {
			assert.Equal(t, payroll.ResultSuccess, res.Status)
			require.NotNil(t, res.PayrollID)
			require.NotNil(t, res.NetSalary)
		}
	})

	t.Run("records are persisted as drafts with snapshots", func(t *testing.T) {
		f := newGenerateFixture(t)

		_, err := f.service.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{Month: 1, Year: 2025})
		require.NoError(t, err)

		for _, rec := range f.payrollRepo.created {
			assert.Equal(t, payroll.PayrollStatusDraft, rec.Status)
			assert.NotEmpty(t, rec.EmployeeName)
			assert.Equal(t, 1, rec.PeriodMonth)
			assert.Equal(t, 2025, rec.PeriodYear)
		}
	})

	t.Run("existing records are skipped", func(t *testing.T) {
		f := newGenerateFixture(t)
		f.payrollRepo.existing[existingKey("musyrif-1", 1, 2025)] = true

		resp, err := f.service.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{Month: 1, Year: 2025})
		require.NoError(t, err)

		assert.Equal(t, 1, resp.Generated())
		assert.Len(t, f.payrollRepo.created, 1)

		var skipped *payroll.GenerateResult
		for i := range resp.Results {
			if resp.Results[i].Status == payroll.ResultSkipped {
				skipped = &resp.Results[i]
			}
		}
		require.NotNil(t, skipped)
		assert.Equal(t, "musyrif-1", skipped.EmployeeID)
		assert.Nil(t, skipped.PayrollID)
	})

	t.Run("missing rate yields per-employee error", func(t *testing.T) {
		f := newGenerateFixture(t)
		delete(f.rateRepo.rates, employee.RoleAdmin)

		resp, err := f.service.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{Month: 1, Year: 2025})
		require.NoError(t, err)

		assert.Equal(t, 1, resp.Generated())
		assert.Len(t, f.payrollRepo.created, 1)

		var failed *payroll.GenerateResult
		for i := range resp.Results {
			if resp.Results[i].Status == payroll.ResultError {
				failed = &resp.Results[i]
			}
		}
		require.NotNil(t, failed)
		assert.Equal(t, "admin-1", failed.EmployeeID)
		require.NotNil(t, failed.Message)
		assert.Contains(t, *failed.Message, "rate policy not found")
	})

	t.Run("explicit employee list narrows the batch", func(t *testing.T) {
		f := newGenerateFixture(t)

		resp, err := f.service.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{
			Month:       1,
			Year:        2025,
			EmployeeIDs: []string{"admin-1"},
		})
		require.NoError(t, err)

		require.Len(t, resp.Results, 1)
		assert.Equal(t, "admin-1", resp.Results[0].EmployeeID)
	})

	t.Run("invalid request touches no repository", func(t *testing.T) {
		f := newGenerateFixture(t)

		_, err := f.service.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{Month: 13, Year: 2025})
		require.Error(t, err)
		assert.Equal(t, 0, f.employeeRepo.calls)
		assert.Empty(t, f.payrollRepo.created)
	})

	t.Run("write failure aborts the whole batch", func(t *testing.T) {
		f := newGenerateFixture(t)
		f.payrollRepo.createErr = errors.New("connection reset")

		_, err := f.service.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{Month: 1, Year: 2025})
		require.Error(t, err)
		assert.Empty(t, f.payrollRepo.created)
	})

	t.Run("second run skips everything", func(t *testing.T) {
		f := newGenerateFixture(t)

		first, err := f.service.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{Month: 1, Year: 2025})
		require.NoError(t, err)
		require.Equal(t, 2, first.Generated())

		for _, rec := range f.payrollRepo.created {
			f.payrollRepo.existing[existingKey(rec.EmployeeID, rec.PeriodMonth, rec.PeriodYear)] = true
		}

		second, err := f.service.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{Month: 1, Year: 2025})
		require.NoError(t, err)

		assert.Equal(t, 0, second.Generated())
		for _, res := range second.Results {
			assert.Equal(t, payroll.ResultSkipped, res.Status)
		}
		assert.Len(t, f.payrollRepo.created, 2)
	})
}

func TestFinalizePayroll(t *testing.T) {
	ctx := context.Background()

	t.Run("marks records as paid", func(t *testing.T) {
		f := newGenerateFixture(t)

		err := f.service.FinalizePayroll(ctx, payroll.FinalizePayrollRequest{
			RecordIDs: []string{"pay-1", "pay-2"},
			PaidBy:    "admin",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"pay-1", "pay-2"}, f.payrollRepo.finalized)
	})

	t.Run("empty record list fails validation", func(t *testing.T) {
		f := newGenerateFixture(t)

		err := f.service.FinalizePayroll(ctx, payroll.FinalizePayrollRequest{})
		require.Error(t, err)
		assert.Empty(t, f.payrollRepo.finalized)
	})

	t.Run("already paid records surface the conflict", func(t *testing.T) {
		f := newGenerateFixture(t)
		f.payrollRepo.finalizeErr = payroll.ErrPayrollRecordAlreadyPaid

		err := f.service.FinalizePayroll(ctx, payroll.FinalizePayrollRequest{
			RecordIDs: []string{"pay-1"},
		})
		assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyPaid)
	})
}

func TestGetPayrollSummaryValidatesPeriod(t *testing.T) {
	f := newGenerateFixture(t)

	_, err := f.service.GetPayrollSummary(context.Background(), 0, 2025)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)

	summary, err := f.service.GetPayrollSummary(context.Background(), 1, 2025)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.PeriodMonth)
}

func TestCreateSalaryRateValidation(t *testing.T) {
	f := newGenerateFixture(t)

	_, err := f.service.CreateSalaryRate(context.Background(), payroll.CreateSalaryRateRequest{
		Role:       "teacher",
		BaseAmount: decimal.NewFromInt(-1),
	})
	assert.Error(t, err)
}
