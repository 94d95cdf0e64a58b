package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hr-backend-go/internal/handler/http/response"
)

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type HealthHandler struct {
	db        HealthChecker
	startedAt time.Time
	version   string
}

func NewHealthHandler(db HealthChecker, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		startedAt: time.Now(),
		version:   version,
	}
}

// Health reports liveness. A failing database degrades the status but the
// endpoint still answers 200 so the process is not restarted for it.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, database := "ok", "up"
	if !h.db.Healthy(ctx) {
		status, database = "degraded", "down"
	}

	response.Success(w, "HR Management API is running", map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).Seconds(),
		"database":  database,
	})
}

// Root describes the API.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	response.Success(w, "HR Management API", map[string]any{
		"version": h.version,
		"endpoints": map[string]string{
			"auth":       "/auth/login",
			"employees":  "/employees",
			"attendance": "/attendance",
			"reports":    "/reports/attendance",
			"health":     "/health",
		},
	})
}
