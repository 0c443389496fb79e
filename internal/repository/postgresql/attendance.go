package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/santrikita/tpq-backend-go/internal/domain/attendance"
	"github.com/santrikita/tpq-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (id, halaqah_id, santri_id, date, status, recorded_by, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, halaqah_id, santri_id, date, status, recorded_by, notes, created_at
	`

	var created attendance.AttendanceRecord
	err := q.QueryRow(ctx, query,
		uuid.New().String(), record.HalaqahID, record.SantriID, record.Date,
		record.Status, record.RecordedBy, record.Notes,
	).Scan(
		&created.ID, &created.HalaqahID, &created.SantriID, &created.Date,
		&created.Status, &created.RecordedBy, &created.Notes, &created.CreatedAt,
	)
	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return created, nil
}

func (r *attendanceRepository) ListByHalaqah(ctx context.Context, halaqahID string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, halaqah_id, santri_id, date, status, recorded_by, notes, created_at
		FROM attendance_records
		WHERE halaqah_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date, created_at
	`

	rows, err := q.Query(ctx, query, halaqahID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		if err := rows.Scan(
			&rec.ID, &rec.HalaqahID, &rec.SantriID, &rec.Date,
			&rec.Status, &rec.RecordedBy, &rec.Notes, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// SummarizeByMusyrif counts every attendance row reachable through the
// musyrif's halaqah in the range. "Attended" is the full row count; the
// absent and late subsets are broken out by status.
func (r *attendanceRepository) SummarizeByMusyrif(ctx context.Context, musyrifID string, from, to time.Time) (attendance.SessionSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*),
			   COUNT(*) FILTER (WHERE a.status = $4),
			   COUNT(*) FILTER (WHERE a.status = $5)
		FROM attendance_records a
		JOIN halaqah h ON a.halaqah_id = h.id
		WHERE h.musyrif_id = $1 AND a.date BETWEEN $2 AND $3
	`

	var s attendance.SessionSummary
	err := q.QueryRow(ctx, query, musyrifID, from, to,
		attendance.StatusAbsent, attendance.StatusLate,
	).Scan(&s.Attended, &s.Absent, &s.Late)
	if err != nil {
		return attendance.SessionSummary{}, fmt.Errorf("failed to summarize attendance: %w", err)
	}

	return s, nil
}

func (r *attendanceRepository) CountRecordedDays(ctx context.Context, recordedBy string, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(DISTINCT date)
		FROM attendance_records
		WHERE recorded_by = $1 AND date BETWEEN $2 AND $3
	`

	var days int
	if err := q.QueryRow(ctx, query, recordedBy, from, to).Scan(&days); err != nil {
		return 0, fmt.Errorf("failed to count recorded days: %w", err)
	}

	return days, nil
}
