package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/santrikita/tpq-backend-go/internal/domain/payroll"
	"github.com/santrikita/tpq-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	id, employee_id, employee_name, employee_role, period_month, period_year,
	total_sessions, attended_sessions, absent_sessions, late_sessions,
	base_salary, session_rate, attendance_bonus, overtime_amount,
	total_allowances, total_deductions, gross_salary, net_salary,
	status, calculation_detail, generated_by, paid_at, paid_by, created_at, updated_at`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	var detailJSON []byte
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &rec.EmployeeRole,
		&rec.PeriodMonth, &rec.PeriodYear,
		&rec.TotalSessions, &rec.AttendedSessions, &rec.AbsentSessions, &rec.LateSessions,
		&rec.BaseSalary, &rec.SessionRate, &rec.AttendanceBonus, &rec.OvertimeAmount,
		&rec.TotalAllowances, &rec.TotalDeductions, &rec.GrossSalary, &rec.NetSalary,
		&rec.Status, &detailJSON, &rec.GeneratedBy, &rec.PaidAt, &rec.PaidBy,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	if len(detailJSON) > 0 {
		if err := json.Unmarshal(detailJSON, &rec.Detail); err != nil {
			return payroll.PayrollRecord{}, fmt.Errorf("failed to decode calculation detail: %w", err)
		}
	}
	return rec, nil
}

func (r *payrollRepository) CreatePayrollRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	detailJSON, err := json.Marshal(record.Detail)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to encode calculation detail: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO payroll_records (
			id, employee_id, employee_name, employee_role, period_month, period_year,
			total_sessions, attended_sessions, absent_sessions, late_sessions,
			base_salary, session_rate, attendance_bonus, overtime_amount,
			total_allowances, total_deductions, gross_salary, net_salary,
			status, calculation_detail, generated_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21
		)
		RETURNING %s
	`, payrollColumns)

	created, err := scanPayrollRecord(q.QueryRow(ctx, query,
		uuid.New().String(), record.EmployeeID, record.EmployeeName, record.EmployeeRole,
		record.PeriodMonth, record.PeriodYear,
		record.TotalSessions, record.AttendedSessions, record.AbsentSessions, record.LateSessions,
		record.BaseSalary, record.SessionRate, record.AttendanceBonus, record.OvertimeAmount,
		record.TotalAllowances, record.TotalDeductions, record.GrossSalary, record.NetSalary,
		record.Status, detailJSON, record.GeneratedBy,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_employee_period") {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetPayrollRecordByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM payroll_records WHERE id = $1`, payrollColumns)

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) ExistsByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM payroll_records
			WHERE employee_id = $1 AND period_month = $2 AND period_year = $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, month, year).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existing payroll record: %w", err)
	}

	return exists, nil
}

var payrollSortColumns = map[string]string{
	"created_at":    "created_at",
	"period":        "period_year, period_month",
	"net_salary":    "net_salary",
	"employee_name": "employee_name",
}

func (r *payrollRepository) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.PeriodMonth != nil {
		where = append(where, fmt.Sprintf("period_month = $%d", argIdx))
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		where = append(where, fmt.Sprintf("period_year = $%d", argIdx))
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EmployeeID != nil {
		where = append(where, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	whereClause := strings.Join(where, " AND ")

	var totalCount int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM payroll_records WHERE %s`, whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	sortBy, ok := payrollSortColumns[filter.SortBy]
	if !ok {
		sortBy = "created_at"
	}
	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s FROM payroll_records
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, payrollColumns, whereClause, sortBy, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}

	return records, totalCount, nil
}

func (r *payrollRepository) FinalizePayrollRecords(ctx context.Context, ids []string, paidBy string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = $3, paid_at = NOW(), paid_by = $2, updated_at = NOW()
		WHERE id = ANY($1) AND status = $4
	`

	tag, err := q.Exec(ctx, query, ids, paidBy, payroll.PayrollStatusPaid, payroll.PayrollStatusDraft)
	if err != nil {
		return fmt.Errorf("failed to finalize payroll records: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Nothing was draft: distinguish records already paid from ids
		// that do not exist at all.
		var paidCount int
		err := q.QueryRow(ctx,
			`SELECT COUNT(*) FROM payroll_records WHERE id = ANY($1) AND status = $2`,
			ids, payroll.PayrollStatusPaid,
		).Scan(&paidCount)
		if err != nil {
			return fmt.Errorf("failed to check payroll record status: %w", err)
		}
		if paidCount > 0 {
			return payroll.ErrPayrollRecordAlreadyPaid
		}
		return payroll.ErrPayrollRecordNotFound
	}

	return nil
}

func (r *payrollRepository) DeletePayrollRecord(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var status payroll.PayrollStatus
	err := q.QueryRow(ctx, `SELECT status FROM payroll_records WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrPayrollRecordNotFound
		}
		return fmt.Errorf("failed to get payroll record status: %w", err)
	}
	if status == payroll.PayrollStatusPaid {
		return payroll.ErrCannotDeletePaidRecord
	}

	if _, err := q.Exec(ctx, `DELETE FROM payroll_records WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}

	return nil
}

func (r *payrollRepository) GetPayrollSummary(ctx context.Context, month, year int) (payroll.PayrollSummaryResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*),
			   COALESCE(SUM(base_salary), 0),
			   COALESCE(SUM(total_allowances), 0),
			   COALESCE(SUM(total_deductions), 0),
			   COALESCE(SUM(attendance_bonus), 0),
			   COALESCE(SUM(gross_salary), 0),
			   COALESCE(SUM(net_salary), 0),
			   COUNT(*) FILTER (WHERE status = $3),
			   COUNT(*) FILTER (WHERE status = $4)
		FROM payroll_records
		WHERE period_month = $1 AND period_year = $2
	`

	summary := payroll.PayrollSummaryResponse{PeriodMonth: month, PeriodYear: year}
	err := q.QueryRow(ctx, query, month, year,
		payroll.PayrollStatusDraft, payroll.PayrollStatusPaid,
	).Scan(
		&summary.TotalEmployees,
		&summary.TotalBaseSalary,
		&summary.TotalAllowances,
		&summary.TotalDeductions,
		&summary.TotalBonus,
		&summary.TotalGrossSalary,
		&summary.TotalNetSalary,
		&summary.DraftCount,
		&summary.PaidCount,
	)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}

	return summary, nil
}
