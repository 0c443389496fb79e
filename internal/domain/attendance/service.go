package attendance

import (
	"context"
)

type AttendanceService interface {
	RecordAttendance(ctx context.Context, req RecordAttendanceRequest, recordedBy string) (AttendanceResponse, error)
	ListByHalaqah(ctx context.Context, halaqahID string, from, to string) ([]AttendanceResponse, error)
}
