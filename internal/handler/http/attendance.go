package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/santrikita/tpq-backend-go/internal/domain/attendance"
	"github.com/santrikita/tpq-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	ListByHalaqah(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *attendanceHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	recordedBy := "system"
	if _, claims, err := jwtauth.FromContext(r.Context()); err == nil {
		if username, ok := claims["username"].(string); ok && username != "" {
			recordedBy = username
		}
	}

	result, err := h.attendanceService.RecordAttendance(r.Context(), req, recordedBy)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded", result)
}

func (h *attendanceHandlerImpl) ListByHalaqah(w http.ResponseWriter, r *http.Request) {
	halaqahID := chi.URLParam(r, "halaqahID")
	if halaqahID == "" {
		response.BadRequest(w, "Halaqah ID is required", nil)
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	result, err := h.attendanceService.ListByHalaqah(r.Context(), halaqahID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
