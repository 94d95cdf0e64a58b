package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
)

const internalErrorMessage = "Internal server error"

type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

var exposeErrors atomic.Bool

// ExposeErrors controls whether 500 responses carry the underlying error text.
// It is enabled outside production.
func ExposeErrors(enabled bool) {
	exposeErrors.Store(enabled)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// Success responses
func Success(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// File streams a download with the given name.
func File(w http.ResponseWriter, filename, contentType string, content []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		slog.Error("Failed to write file response", "filename", filename, "error", err)
	}
}

// Error responses
func BadRequest(w http.ResponseWriter, message string, errs []string) {
	writeJSON(w, http.StatusBadRequest, Response{
		Message: message,
		Errors:  errs,
	})
}

func ValidationError(w http.ResponseWriter, errs []string) {
	BadRequest(w, "Validation failed", errs)
}

func Unauthorized(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnauthorized, Response{Message: message})
}

func NotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, Response{Message: message})
}

func MethodNotAllowed(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusMethodNotAllowed, Response{Message: message})
}

func TooManyRequests(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusTooManyRequests, Response{Message: message})
}

func InternalServerError(w http.ResponseWriter, err error) {
	message := internalErrorMessage
	if err != nil && exposeErrors.Load() {
		message = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, Response{Message: message})
}
