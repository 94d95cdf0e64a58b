package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/hr-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	GetMonthlyAttendanceReport(w http.ResponseWriter, r *http.Request)
	ExportMonthlyAttendanceReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func parseReportRequest(r *http.Request) (report.MonthlyAttendanceReportRequest, error) {
	q := newQueryReader(r.URL.Query())
	req := report.MonthlyAttendanceReportRequest{
		Month:      q.String("month"),
		EmployeeID: q.OptionalInt64("employee_id", "Employee ID"),
	}
	return req, q.merge(req.Validate())
}

// GetMonthlyAttendanceReport implements ReportHandler
func (h *reportHandlerImpl) GetMonthlyAttendanceReport(w http.ResponseWriter, r *http.Request) {
	req, err := parseReportRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rows, err := h.reportService.GetMonthlyAttendanceReport(r.Context(), req)
	if err != nil {
		slog.Error("GetMonthlyAttendanceReport service error", "month", req.Month, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, "Monthly attendance report generated successfully", rows)
}

// ExportMonthlyAttendanceReport implements ReportHandler
func (h *reportHandlerImpl) ExportMonthlyAttendanceReport(w http.ResponseWriter, r *http.Request) {
	req, err := parseReportRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.reportService.ExportMonthlyAttendanceReport(r.Context(), req)
	if err != nil {
		slog.Error("ExportMonthlyAttendanceReport service error", "month", req.Month, "error", err)
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Content)
}
