package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.Messages())
		return
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrNoToken):
		Unauthorized(w, "Access denied. No token provided.")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token.")
	case errors.Is(err, auth.ErrTooManyAttempts):
		TooManyRequests(w, "Too many login attempts. Please try again later.")

	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrEmployeeNotActive):
		ValidationError(w, []string{"Employee does not exist or is not active"})

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, err)
	}
}
