package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/santrikita/tpq-backend-go/internal/domain/employee"
	"github.com/santrikita/tpq-backend-go/internal/domain/payroll"
	"github.com/santrikita/tpq-backend-go/internal/pkg/database"
)

type salaryRateRepository struct {
	db *database.DB
}

func NewSalaryRateRepository(db *database.DB) payroll.SalaryRateRepository {
	return &salaryRateRepository{db: db}
}

func scanSalaryRate(row pgx.Row) (payroll.SalaryRate, error) {
	var rate payroll.SalaryRate
	var allowancesJSON, deductionsJSON []byte
	err := row.Scan(
		&rate.ID, &rate.Role, &rate.BaseAmount,
		&allowancesJSON, &deductionsJSON,
		&rate.IsActive, &rate.CreatedAt, &rate.UpdatedAt,
	)
	if err != nil {
		return payroll.SalaryRate{}, err
	}
	if err := decodeAmountMap(allowancesJSON, &rate.Allowances); err != nil {
		return payroll.SalaryRate{}, fmt.Errorf("failed to decode allowances: %w", err)
	}
	if err := decodeAmountMap(deductionsJSON, &rate.Deductions); err != nil {
		return payroll.SalaryRate{}, fmt.Errorf("failed to decode deductions: %w", err)
	}
	return rate, nil
}

func decodeAmountMap(data []byte, dst *map[string]decimal.Decimal) error {
	if len(data) == 0 {
		*dst = map[string]decimal.Decimal{}
		return nil
	}
	return json.Unmarshal(data, dst)
}

const salaryRateColumns = `id, role, base_amount, allowances, deductions, is_active, created_at, updated_at`

// Create inserts the new rate as active and retires the previously active
// rate for the same role in one transaction, keeping the one-active-per-role
// invariant.
func (r *salaryRateRepository) Create(ctx context.Context, rate payroll.SalaryRate) (payroll.SalaryRate, error) {
	allowancesJSON, err := json.Marshal(rate.Allowances)
	if err != nil {
		return payroll.SalaryRate{}, fmt.Errorf("failed to encode allowances: %w", err)
	}
	deductionsJSON, err := json.Marshal(rate.Deductions)
	if err != nil {
		return payroll.SalaryRate{}, fmt.Errorf("failed to encode deductions: %w", err)
	}

	var created payroll.SalaryRate
	err = WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`UPDATE salary_rates SET is_active = false, updated_at = NOW() WHERE role = $1 AND is_active = true`,
			rate.Role,
		); err != nil {
			return fmt.Errorf("failed to deactivate previous rate: %w", err)
		}

		query := fmt.Sprintf(`
			INSERT INTO salary_rates (id, role, base_amount, allowances, deductions, is_active)
			VALUES ($1, $2, $3, $4, $5, true)
			RETURNING %s
		`, salaryRateColumns)

		created, err = scanSalaryRate(tx.QueryRow(ctx, query,
			uuid.New().String(), rate.Role, rate.BaseAmount, allowancesJSON, deductionsJSON,
		))
		if err != nil {
			return fmt.Errorf("failed to create salary rate: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.SalaryRate{}, err
	}

	return created, nil
}

func (r *salaryRateRepository) GetActiveByRole(ctx context.Context, role employee.Role) (payroll.SalaryRate, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM salary_rates
		WHERE role = $1 AND is_active = true
	`, salaryRateColumns)

	rate, err := scanSalaryRate(q.QueryRow(ctx, query, role))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.SalaryRate{}, payroll.ErrSalaryRateNotFound
		}
		return payroll.SalaryRate{}, fmt.Errorf("failed to get salary rate: %w", err)
	}

	return rate, nil
}

func (r *salaryRateRepository) List(ctx context.Context, role *string) ([]payroll.SalaryRate, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM salary_rates`, salaryRateColumns)
	args := []interface{}{}
	if role != nil {
		query += " WHERE role = $1"
		args = append(args, *role)
	}
	query += " ORDER BY role, created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary rates: %w", err)
	}
	defer rows.Close()

	var rates []payroll.SalaryRate
	for rows.Next() {
		rate, err := scanSalaryRate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary rate: %w", err)
		}
		rates = append(rates, rate)
	}

	return rates, nil
}

func (r *salaryRateRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE salary_rates SET is_active = false, updated_at = NOW() WHERE id = $1 RETURNING id`

	var updatedID string
	err := q.QueryRow(ctx, query, id).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrSalaryRateNotFound
		}
		return fmt.Errorf("failed to deactivate salary rate: %w", err)
	}

	return nil
}
