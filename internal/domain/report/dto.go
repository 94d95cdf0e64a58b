package report

import (
	"time"

	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/validator"
)

type MonthlyAttendanceReportRequest struct {
	Month      string `query:"month" validate:"required,month"`
	EmployeeID *int64 `query:"employee_id" validate:"omitnil,gt=0"`
}

var reportMessages = validator.Messages{
	"month.required": "Month is required",
	"month.month":    "Month must be in YYYY-MM format",
	"employee_id.gt": "Employee ID must be a positive number",
}

func (r *MonthlyAttendanceReportRequest) Validate() error {
	return validator.Struct(r, reportMessages)
}

// Period returns the half-open range [first day of month, first day of next month).
func (r *MonthlyAttendanceReportRequest) Period() (start, end time.Time) {
	start, _ = validator.IsValidMonth(r.Month)
	return start, start.AddDate(0, 1, 0)
}

// MonthlyAttendanceRow summarises one employee's attendance for the month.
type MonthlyAttendanceRow struct {
	EmployeeID  int64  `json:"employee_id"`
	Name        string `json:"name"`
	DaysPresent int    `json:"days_present"`
	TimesLate   int    `json:"times_late"`
}

// ReportFile is a rendered report ready to be downloaded.
type ReportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
