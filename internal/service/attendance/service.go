package attendance

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, employeeRepo employee.EmployeeRepository) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

func employeeNotActiveError() error {
	var errs validator.ValidationErrors
	errs.Add("employee_id", "Employee does not exist or is not active")
	return errs
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	records, total, err := s.attendanceRepo.FindAll(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	data := make([]attendance.AttendanceResponse, 0, len(records))
	for _, a := range records {
		data = append(data, attendance.NewAttendanceResponse(a))
	}

	return attendance.ListAttendanceResponse{
		Data:       data,
		Pagination: pagination.New(filter.Page, filter.Limit, total),
	}, nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id int64) (attendance.AttendanceResponse, error) {
	a, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(a), nil
}

// RecordAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordAttendance(ctx context.Context, req attendance.RecordAttendanceRequest) (attendance.AttendanceResponse, error) {
	exists, err := s.employeeRepo.ExistsActive(ctx, *req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !exists {
		return attendance.AttendanceResponse{}, employeeNotActiveError()
	}

	record, _, err := s.attendanceRepo.Upsert(ctx, *req.EmployeeID, req.ParsedDate(), req.CheckInTime)
	if err != nil {
		if errors.Is(err, attendance.ErrEmployeeNotActive) {
			return attendance.AttendanceResponse{}, employeeNotActiveError()
		}
		return attendance.AttendanceResponse{}, err
	}

	return attendance.NewAttendanceResponse(record), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, id int64, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	record, err := s.attendanceRepo.UpdateCheckInTime(ctx, id, req.CheckInTime)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(record), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id int64) error {
	return s.attendanceRepo.Delete(ctx, id)
}

var _ attendance.AttendanceService = (*AttendanceServiceImpl)(nil)
