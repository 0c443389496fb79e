package attendance

import (
	"context"
	"time"

	"github.com/santrikita/tpq-backend-go/internal/domain/attendance"
	"github.com/santrikita/tpq-backend-go/internal/domain/halaqah"
	"github.com/santrikita/tpq-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	halaqahRepo    halaqah.HalaqahRepository
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, halaqahRepo halaqah.HalaqahRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{attendanceRepo: attendanceRepo, halaqahRepo: halaqahRepo}
}

func (s *AttendanceServiceImpl) RecordAttendance(ctx context.Context, req attendance.RecordAttendanceRequest, recordedBy string) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.HalaqahID != nil {
		if _, err := s.halaqahRepo.GetByID(ctx, *req.HalaqahID); err != nil {
			return attendance.AttendanceResponse{}, err
		}
	}

	date, _ := validator.IsValidDate(req.Date)

	created, err := s.attendanceRepo.Create(ctx, attendance.AttendanceRecord{
		HalaqahID:  req.HalaqahID,
		SantriID:   req.SantriID,
		Date:       date,
		Status:     attendance.Status(req.Status),
		RecordedBy: recordedBy,
		Notes:      req.Notes,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapToResponse(created), nil
}

func (s *AttendanceServiceImpl) ListByHalaqah(ctx context.Context, halaqahID string, from, to string) ([]attendance.AttendanceResponse, error) {
	fromDate, ok := validator.IsValidDate(from)
	if !ok {
		fromDate = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	toDate, ok := validator.IsValidDate(to)
	if !ok {
		toDate = time.Now().UTC()
	}

	records, err := s.attendanceRepo.ListByHalaqah(ctx, halaqahID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	result := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		result = append(result, mapToResponse(rec))
	}

	return result, nil
}

func mapToResponse(rec attendance.AttendanceRecord) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:         rec.ID,
		HalaqahID:  rec.HalaqahID,
		SantriID:   rec.SantriID,
		Date:       rec.Date.Format("2006-01-02"),
		Status:     string(rec.Status),
		RecordedBy: rec.RecordedBy,
		Notes:      rec.Notes,
	}
}
