package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAttendanceRepository implements attendance.AttendanceRepository for testing
type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) FindAll(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]attendance.Attendance), args.Get(1).(int64), args.Error(2)
}

func (m *MockAttendanceRepository) GetByID(ctx context.Context, id int64) (attendance.Attendance, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(attendance.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) Upsert(ctx context.Context, employeeID int64, date time.Time, checkInTime string) (attendance.Attendance, bool, error) {
	args := m.Called(ctx, employeeID, date, checkInTime)
	return args.Get(0).(attendance.Attendance), args.Bool(1), args.Error(2)
}

func (m *MockAttendanceRepository) UpdateCheckInTime(ctx context.Context, id int64, checkInTime string) (attendance.Attendance, error) {
	args := m.Called(ctx, id, checkInTime)
	return args.Get(0).(attendance.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockEmployeeRepository only answers ExistsActive; other calls fail the test.
type MockEmployeeRepository struct {
	mock.Mock
	employee.EmployeeRepository
}

func (m *MockEmployeeRepository) ExistsActive(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var day = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func recordRequest(employeeID int64, clock string) attendance.RecordAttendanceRequest {
	req := attendance.RecordAttendanceRequest{EmployeeID: &employeeID, Date: "2024-01-15", CheckInTime: clock}
	return req
}

func TestRecordAttendance(t *testing.T) {
	ctx := context.Background()

	t.Run("records for an active employee", func(t *testing.T) {
		records := new(MockAttendanceRepository)
		employees := new(MockEmployeeRepository)
		svc := NewAttendanceService(records, employees)

		req := recordRequest(1, "09:30")
		require.NoError(t, req.Validate())

		employees.On("ExistsActive", ctx, int64(1)).Return(true, nil)
		records.On("Upsert", ctx, int64(1), day, "09:30:00").Return(attendance.Attendance{
			ID: 5, EmployeeID: 1, Date: day, CheckInTime: "09:30:00", EmployeeName: "John Smith",
		}, true, nil)

		resp, err := svc.RecordAttendance(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.ID)
		assert.Equal(t, "2024-01-15", resp.Date)
		assert.Equal(t, "09:30:00", resp.CheckInTime)
		records.AssertExpectations(t)
	})

	t.Run("inactive employee is a validation error", func(t *testing.T) {
		records := new(MockAttendanceRepository)
		employees := new(MockEmployeeRepository)
		svc := NewAttendanceService(records, employees)

		employees.On("ExistsActive", ctx, int64(9)).Return(false, nil)

		_, err := svc.RecordAttendance(ctx, recordRequest(9, "09:30:00"))
		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "employee_id", errs[0].Field)
		records.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("employee removed between check and write", func(t *testing.T) {
		records := new(MockAttendanceRepository)
		employees := new(MockEmployeeRepository)
		svc := NewAttendanceService(records, employees)

		employees.On("ExistsActive", ctx, int64(1)).Return(true, nil)
		records.On("Upsert", ctx, int64(1), day, "09:30:00").
			Return(attendance.Attendance{}, false, attendance.ErrEmployeeNotActive)

		_, err := svc.RecordAttendance(ctx, recordRequest(1, "09:30:00"))
		var errs validator.ValidationErrors
		assert.ErrorAs(t, err, &errs)
	})

	t.Run("repository failure passes through", func(t *testing.T) {
		records := new(MockAttendanceRepository)
		employees := new(MockEmployeeRepository)
		svc := NewAttendanceService(records, employees)

		dbErr := errors.New("connection reset")
		employees.On("ExistsActive", ctx, int64(1)).Return(false, dbErr)

		_, err := svc.RecordAttendance(ctx, recordRequest(1, "09:30:00"))
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestListAttendance(t *testing.T) {
	ctx := context.Background()
	records := new(MockAttendanceRepository)
	svc := NewAttendanceService(records, new(MockEmployeeRepository))

	filter := attendance.NewAttendanceFilter()
	records.On("FindAll", ctx, filter).Return([]attendance.Attendance{
		{ID: 1, EmployeeID: 1, Date: day, CheckInTime: "08:55:00"},
		{ID: 2, EmployeeID: 2, Date: day, CheckInTime: "09:30:00"},
	}, int64(2), nil)

	resp, err := svc.ListAttendance(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
}

func TestUpdateAndDeleteAttendance(t *testing.T) {
	ctx := context.Background()
	records := new(MockAttendanceRepository)
	svc := NewAttendanceService(records, new(MockEmployeeRepository))

	records.On("UpdateCheckInTime", ctx, int64(1), "10:00:00").
		Return(attendance.Attendance{ID: 1, EmployeeID: 1, Date: day, CheckInTime: "10:00:00"}, nil)
	records.On("UpdateCheckInTime", ctx, int64(2), "10:00:00").
		Return(attendance.Attendance{}, attendance.ErrAttendanceNotFound)
	records.On("Delete", ctx, int64(2)).Return(attendance.ErrAttendanceNotFound)

	resp, err := svc.UpdateAttendance(ctx, 1, attendance.UpdateAttendanceRequest{CheckInTime: "10:00:00"})
	require.NoError(t, err)
	assert.Equal(t, "10:00:00", resp.CheckInTime)

	_, err = svc.UpdateAttendance(ctx, 2, attendance.UpdateAttendanceRequest{CheckInTime: "10:00:00"})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	assert.ErrorIs(t, svc.DeleteAttendance(ctx, 2), attendance.ErrAttendanceNotFound)
}
