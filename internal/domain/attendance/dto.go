package attendance

import (
	"time"

	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/validator"
)

const DateLayout = "2006-01-02"

type RecordAttendanceRequest struct {
	EmployeeID  *int64 `json:"employee_id" validate:"required,gt=0"`
	Date        string `json:"date" validate:"required,date"`
	CheckInTime string `json:"check_in_time" validate:"required,clock"`
}

var attendanceMessages = validator.Messages{
	"employee_id.required":   "Employee ID is required",
	"employee_id.gt":         "Employee ID must be a positive number",
	"date.required":          "Date is required",
	"date.date":              "Date must be in YYYY-MM-DD format",
	"check_in_time.required": "Check-in time is required",
	"check_in_time.clock":    "Check-in time must be in HH:MM or HH:MM:SS format",
	"from.date":              "From date must be in YYYY-MM-DD format",
	"to.date":                "To date must be in YYYY-MM-DD format",
	"page.gte":               "Page must be at least 1",
	"limit.gte":              "Limit must be at least 1",
	"limit.lte":              "Limit cannot exceed 100",
}

func (r *RecordAttendanceRequest) Validate() error {
	if err := validator.Struct(r, attendanceMessages); err != nil {
		return err
	}
	r.CheckInTime = validator.NormalizeClock(r.CheckInTime)
	return nil
}

// ParsedDate returns the validated date.
func (r *RecordAttendanceRequest) ParsedDate() time.Time {
	d, _ := time.Parse(DateLayout, r.Date)
	return d
}

type UpdateAttendanceRequest struct {
	CheckInTime string `json:"check_in_time" validate:"required,clock"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	if err := validator.Struct(r, attendanceMessages); err != nil {
		return err
	}
	r.CheckInTime = validator.NormalizeClock(r.CheckInTime)
	return nil
}

type AttendanceFilter struct {
	EmployeeID *int64 `query:"employee_id" validate:"omitnil,gt=0"`
	Date       string `query:"date" validate:"omitempty,date"`
	From       string `query:"from" validate:"omitempty,date"`
	To         string `query:"to" validate:"omitempty,date"`
	Page       int    `query:"page" validate:"gte=1"`
	Limit      int    `query:"limit" validate:"gte=1,lte=100"`
}

// NewAttendanceFilter returns a filter with the default page and limit.
func NewAttendanceFilter() AttendanceFilter {
	return AttendanceFilter{Page: pagination.DefaultPage, Limit: pagination.DefaultLimit}
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(f, attendanceMessages); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = fieldErrs
	}
	if len(errs) == 0 && f.From != "" && f.To != "" {
		from, _ := validator.ParseDate(f.From)
		to, _ := validator.ParseDate(f.To)
		if to.Before(from) {
			errs.Add("from", "From date cannot be after to date")
		}
	}
	return errs.Err()
}

type AttendanceResponse struct {
	ID           int64     `json:"id"`
	EmployeeID   int64     `json:"employee_id"`
	EmployeeName string    `json:"employee_name,omitempty"`
	Date         string    `json:"date"`
	CheckInTime  string    `json:"check_in_time"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		Date:         a.Date.Format(DateLayout),
		CheckInTime:  a.CheckInTime,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

type ListAttendanceResponse struct {
	Data       []AttendanceResponse  `json:"data"`
	Pagination pagination.Pagination `json:"pagination"`
}
