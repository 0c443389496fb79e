package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)
	ListByHalaqah(ctx context.Context, halaqahID string, from, to time.Time) ([]AttendanceRecord, error)

	// SummarizeByMusyrif aggregates rows joined through the musyrif's
	// halaqah over an inclusive date range.
	SummarizeByMusyrif(ctx context.Context, musyrifID string, from, to time.Time) (SessionSummary, error)

	// CountRecordedDays counts distinct dates on which the employee
	// recorded any attendance row within the range.
	CountRecordedDays(ctx context.Context, recordedBy string, from, to time.Time) (int, error)
}
