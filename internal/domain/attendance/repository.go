package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// FindAll returns one page of records of active employees and the total
	// number of matches, ordered by date then check-in time.
	FindAll(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
	GetByID(ctx context.Context, id int64) (Attendance, error)
	// Upsert inserts the (employee_id, date) record or replaces its check-in
	// time in one statement. created reports whether a new row was inserted.
	Upsert(ctx context.Context, employeeID int64, date time.Time, checkInTime string) (record Attendance, created bool, err error)
	UpdateCheckInTime(ctx context.Context, id int64, checkInTime string) (Attendance, error)
	Delete(ctx context.Context, id int64) error
}
