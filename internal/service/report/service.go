package report

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hr-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportServiceImpl struct {
	reportRepo    report.ReportRepository
	lateThreshold string
}

// NewReportService builds the report service. A check-in later than
// lateThreshold (HH:MM:SS) counts as late.
func NewReportService(reportRepo report.ReportRepository, lateThreshold string) *ReportServiceImpl {
	return &ReportServiceImpl{
		reportRepo:    reportRepo,
		lateThreshold: lateThreshold,
	}
}

// GetMonthlyAttendanceReport implements report.ReportService.
func (s *ReportServiceImpl) GetMonthlyAttendanceReport(ctx context.Context, req report.MonthlyAttendanceReportRequest) ([]report.MonthlyAttendanceRow, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, end := req.Period()

	rows, err := s.reportRepo.GetMonthlyAttendanceReport(ctx, start, end, req.EmployeeID, s.lateThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance data: %w", err)
	}

	return rows, nil
}

// ExportMonthlyAttendanceReport implements report.ReportService.
func (s *ReportServiceImpl) ExportMonthlyAttendanceReport(ctx context.Context, req report.MonthlyAttendanceReportRequest) (report.ReportFile, error) {
	rows, err := s.GetMonthlyAttendanceReport(ctx, req)
	if err != nil {
		return report.ReportFile{}, err
	}

	content, err := renderMonthlyAttendanceXLSX(req.Month, rows)
	if err != nil {
		return report.ReportFile{}, fmt.Errorf("%w: %v", report.ErrReportGeneration, err)
	}

	return report.ReportFile{
		Filename:    fmt.Sprintf("attendance-report-%s.xlsx", req.Month),
		ContentType: xlsxContentType,
		Content:     content,
	}, nil
}

func renderMonthlyAttendanceXLSX(month string, rows []report.MonthlyAttendanceRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance " + month
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	header := []any{"Employee ID", "Name", "Days Present", "Times Late"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", "D1", bold); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []any{row.EmployeeID, row.Name, row.DaysPresent, row.TimesLate}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(sheet, "B", "B", 30); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "C", "D", 14); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ report.ReportService = (*ReportServiceImpl)(nil)
