package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	// ErrEmployeeNotActive is returned when the referenced employee is missing or deleted.
	ErrEmployeeNotActive = errors.New("employee not found or inactive")
)
