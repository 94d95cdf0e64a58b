package attendance

import "context"

type AttendanceService interface {
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	GetAttendance(ctx context.Context, id int64) (AttendanceResponse, error)
	// RecordAttendance creates or replaces the employee's check-in for the date.
	RecordAttendance(ctx context.Context, req RecordAttendanceRequest) (AttendanceResponse, error)
	UpdateAttendance(ctx context.Context, id int64, req UpdateAttendanceRequest) (AttendanceResponse, error)
	DeleteAttendance(ctx context.Context, id int64) error
}
