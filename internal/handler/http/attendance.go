package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ListAttendance(w http.ResponseWriter, r *http.Request)
	GetAttendance(w http.ResponseWriter, r *http.Request)
	RecordAttendance(w http.ResponseWriter, r *http.Request)
	UpdateAttendance(w http.ResponseWriter, r *http.Request)
	DeleteAttendance(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// ListAttendance implements AttendanceHandler
func (h *attendanceHandlerImpl) ListAttendance(w http.ResponseWriter, r *http.Request) {
	q := newQueryReader(r.URL.Query())

	filter := attendance.NewAttendanceFilter()
	filter.EmployeeID = q.OptionalInt64("employee_id", "Employee ID")
	filter.Date = q.String("date")
	filter.From = q.String("from")
	filter.To = q.String("to")
	q.Int("page", "Page", &filter.Page)
	q.Int("limit", "Limit", &filter.Limit)

	if err := q.merge(filter.Validate()); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		slog.Error("ListAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, "Attendance records retrieved successfully", result)
}

// GetAttendance implements AttendanceHandler
func (h *attendanceHandlerImpl) GetAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid attendance record ID", nil)
		return
	}

	result, err := h.attendanceService.GetAttendance(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, "Attendance record retrieved successfully", result)
}

// RecordAttendance implements AttendanceHandler
func (h *attendanceHandlerImpl) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(r)
	if err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	f := &fieldReader{values: fields}
	req := attendance.RecordAttendanceRequest{
		EmployeeID:  f.OptionalInt64("employee_id", "Employee ID"),
		Date:        f.String("date"),
		CheckInTime: f.String("check_in_time"),
	}

	if err := f.merge(req.Validate()); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.RecordAttendance(r.Context(), req)
	if err != nil {
		slog.Error("RecordAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, "Attendance recorded successfully", result)
}

// UpdateAttendance implements AttendanceHandler
func (h *attendanceHandlerImpl) UpdateAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid attendance record ID", nil)
		return
	}

	if _, err := h.attendanceService.GetAttendance(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	fields, err := readFields(r)
	if err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req := attendance.UpdateAttendanceRequest{CheckInTime: fields["check_in_time"]}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.UpdateAttendance(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, "Attendance record updated successfully", result)
}

// DeleteAttendance implements AttendanceHandler
func (h *attendanceHandlerImpl) DeleteAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid attendance record ID", nil)
		return
	}

	if err := h.attendanceService.DeleteAttendance(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, "Attendance record deleted successfully", nil)
}
