package attendance

import "time"

// Attendance is a single check-in. There is at most one per employee per date.
type Attendance struct {
	ID           int64
	EmployeeID   int64
	Date         time.Time
	CheckInTime  string // HH:MM:SS
	CreatedAt    time.Time
	UpdatedAt    time.Time
	EmployeeName string // joined from employees
}
