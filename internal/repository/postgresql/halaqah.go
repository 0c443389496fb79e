package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/santrikita/tpq-backend-go/internal/domain/halaqah"
	"github.com/santrikita/tpq-backend-go/internal/pkg/database"
)

type halaqahRepository struct {
	db *database.DB
}

func NewHalaqahRepository(db *database.DB) halaqah.HalaqahRepository {
	return &halaqahRepository{db: db}
}

func (r *halaqahRepository) Create(ctx context.Context, h halaqah.Halaqah) (halaqah.Halaqah, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO halaqah (id, name, musyrif_id, sessions_per_week, is_active)
		VALUES ($1, $2, $3, $4, true)
		RETURNING id, name, musyrif_id, sessions_per_week, is_active, created_at, updated_at
	`

	var created halaqah.Halaqah
	err := q.QueryRow(ctx, query,
		uuid.New().String(), h.Name, h.MusyrifID, h.SessionsPerWeek,
	).Scan(
		&created.ID, &created.Name, &created.MusyrifID, &created.SessionsPerWeek,
		&created.IsActive, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "fk_halaqah_musyrif") {
			return halaqah.Halaqah{}, halaqah.ErrMusyrifNotFound
		}
		return halaqah.Halaqah{}, fmt.Errorf("failed to create halaqah: %w", err)
	}

	return created, nil
}

func (r *halaqahRepository) GetByID(ctx context.Context, id string) (halaqah.Halaqah, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT h.id, h.name, h.musyrif_id, h.sessions_per_week, h.is_active,
			   h.created_at, h.updated_at, e.full_name AS musyrif_name
		FROM halaqah h
		JOIN employees e ON h.musyrif_id = e.id
		WHERE h.id = $1
	`

	var h halaqah.Halaqah
	err := q.QueryRow(ctx, query, id).Scan(
		&h.ID, &h.Name, &h.MusyrifID, &h.SessionsPerWeek, &h.IsActive,
		&h.CreatedAt, &h.UpdatedAt, &h.MusyrifName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return halaqah.Halaqah{}, halaqah.ErrHalaqahNotFound
		}
		return halaqah.Halaqah{}, fmt.Errorf("failed to get halaqah: %w", err)
	}

	return h, nil
}

func (r *halaqahRepository) List(ctx context.Context, activeOnly bool) ([]halaqah.Halaqah, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT h.id, h.name, h.musyrif_id, h.sessions_per_week, h.is_active,
			   h.created_at, h.updated_at, e.full_name AS musyrif_name
		FROM halaqah h
		JOIN employees e ON h.musyrif_id = e.id
	`
	if activeOnly {
		query += " WHERE h.is_active = true"
	}
	query += " ORDER BY h.name"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list halaqah: %w", err)
	}
	defer rows.Close()

	var result []halaqah.Halaqah
	for rows.Next() {
		var h halaqah.Halaqah
		if err := rows.Scan(
			&h.ID, &h.Name, &h.MusyrifID, &h.SessionsPerWeek, &h.IsActive,
			&h.CreatedAt, &h.UpdatedAt, &h.MusyrifName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan halaqah: %w", err)
		}
		result = append(result, h)
	}

	return result, nil
}

func (r *halaqahRepository) Update(ctx context.Context, req halaqah.UpdateHalaqahRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID}
	argIdx := 2

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.MusyrifID != nil {
		setParts = append(setParts, fmt.Sprintf("musyrif_id = $%d", argIdx))
		args = append(args, *req.MusyrifID)
		argIdx++
	}
	if req.SessionsPerWeek != nil {
		setParts = append(setParts, fmt.Sprintf("sessions_per_week = $%d", argIdx))
		args = append(args, *req.SessionsPerWeek)
		argIdx++
	}
	if req.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *req.IsActive)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE halaqah
		SET %s
		WHERE id = $1
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return halaqah.ErrHalaqahNotFound
		}
		if strings.Contains(err.Error(), "fk_halaqah_musyrif") {
			return halaqah.ErrMusyrifNotFound
		}
		return fmt.Errorf("failed to update halaqah: %w", err)
	}

	return nil
}

func (r *halaqahRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM halaqah WHERE id = $1 RETURNING id`

	var deletedID string
	err := q.QueryRow(ctx, query, id).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return halaqah.ErrHalaqahNotFound
		}
		return fmt.Errorf("failed to delete halaqah: %w", err)
	}

	return nil
}

func (r *halaqahRepository) CountWeeklySessionsByMusyrif(ctx context.Context, musyrifID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(sessions_per_week), 0)
		FROM halaqah
		WHERE musyrif_id = $1 AND is_active = true
	`

	var total int
	if err := q.QueryRow(ctx, query, musyrifID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count weekly sessions: %w", err)
	}

	return total, nil
}
