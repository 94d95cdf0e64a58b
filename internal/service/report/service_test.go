package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// MockReportRepository implements report.ReportRepository for testing
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) GetMonthlyAttendanceReport(ctx context.Context, start, end time.Time, employeeID *int64, lateThreshold string) ([]report.MonthlyAttendanceRow, error) {
	args := m.Called(ctx, start, end, employeeID, lateThreshold)
	return args.Get(0).([]report.MonthlyAttendanceRow), args.Error(1)
}

var januaryRows = []report.MonthlyAttendanceRow{
	{EmployeeID: 1, Name: "John Smith", DaysPresent: 20, TimesLate: 3},
	{EmployeeID: 2, Name: "Sarah Johnson", DaysPresent: 18, TimesLate: 0},
}

func TestGetMonthlyAttendanceReport(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReportRepository)
	svc := NewReportService(repo, "09:45:00")

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	repo.On("GetMonthlyAttendanceReport", ctx, start, end, (*int64)(nil), "09:45:00").Return(januaryRows, nil)

	rows, err := svc.GetMonthlyAttendanceReport(ctx, report.MonthlyAttendanceReportRequest{Month: "2024-01"})
	require.NoError(t, err)
	assert.Equal(t, januaryRows, rows)
	repo.AssertExpectations(t)

	_, err = svc.GetMonthlyAttendanceReport(ctx, report.MonthlyAttendanceReportRequest{Month: "2024-13"})
	var errs validator.ValidationErrors
	assert.ErrorAs(t, err, &errs)
}

func TestExportMonthlyAttendanceReport(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReportRepository)
	svc := NewReportService(repo, "09:45:00")

	repo.On("GetMonthlyAttendanceReport", ctx, mock.Anything, mock.Anything, mock.Anything, "09:45:00").Return(januaryRows, nil)

	file, err := svc.ExportMonthlyAttendanceReport(ctx, report.MonthlyAttendanceReportRequest{Month: "2024-01"})
	require.NoError(t, err)
	assert.Equal(t, "attendance-report-2024-01.xlsx", file.Filename)
	assert.Equal(t, xlsxContentType, file.ContentType)

	workbook, err := excelize.OpenReader(bytes.NewReader(file.Content))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Attendance 2024-01")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Employee ID", "Name", "Days Present", "Times Late"}, rows[0])
	assert.Equal(t, []string{"1", "John Smith", "20", "3"}, rows[1])
	assert.Equal(t, []string{"2", "Sarah Johnson", "18", "0"}, rows[2])
}
