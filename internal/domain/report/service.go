package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	GetMonthlyAttendanceReport(ctx context.Context, req MonthlyAttendanceReportRequest) ([]MonthlyAttendanceRow, error)
	// ExportMonthlyAttendanceReport renders the same rows as an XLSX workbook.
	ExportMonthlyAttendanceReport(ctx context.Context, req MonthlyAttendanceReportRequest) (ReportFile, error)
}
