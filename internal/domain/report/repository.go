package report

import (
	"context"
	"time"
)

// ReportRepository defines the interface for report data access
type ReportRepository interface {
	// GetMonthlyAttendanceReport aggregates attendance of active employees in
	// [start, end). A check-in strictly after lateThreshold counts as late.
	GetMonthlyAttendanceReport(ctx context.Context, start, end time.Time, employeeID *int64, lateThreshold string) ([]MonthlyAttendanceRow, error)
}
