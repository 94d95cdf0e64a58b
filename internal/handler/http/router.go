package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/hr-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hr-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type RouterOptions struct {
	CORSOrigins []string
	Production  bool
	// UploadDir is served under UploadPrefix when photos are stored on local disk.
	UploadDir    string
	UploadPrefix string
}

type Handlers struct {
	Health     *HealthHandler
	Auth       AuthHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Report     ReportHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, loginLimiter *middleware.RateLimiter, m *metrics.Metrics, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	// Only 4xx/5xx requests are logged in production.
	logLevel := slog.LevelInfo
	if opts.Production {
		logLevel = slog.LevelWarn
	}
	r.Use(httplog.RequestLogger(slog.Default(), &httplog.Options{
		Level:  logLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(m.Middleware)
	r.Use(middleware.SecureHeaders)
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, fmt.Sprintf("Route %s %s not found", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w, fmt.Sprintf("Method %s not allowed for %s", r.Method, r.URL.Path))
	})

	r.Get("/", h.Health.Root)
	r.Get("/health", h.Health.Health)

	if opts.UploadDir != "" {
		prefix := "/" + strings.Trim(opts.UploadPrefix, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix, noDirListing(http.FileServer(http.Dir(opts.UploadDir)))))
	}

	r.Route("/auth", func(r chi.Router) {
		r.With(loginLimiter.Limit).Post("/login", h.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
			r.Get("/me", h.Auth.Me)
		})
	})

	// Requires authentication
	r.Group(func(r chi.Router) {
		r.Use(middleware.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.Employee.ListEmployees)
			r.Post("/", h.Employee.CreateEmployee)
			r.Get("/{id}", h.Employee.GetEmployee)
			r.Put("/{id}", h.Employee.UpdateEmployee)
			r.Delete("/{id}", h.Employee.DeleteEmployee)
			r.Post("/{id}/restore", h.Employee.RestoreEmployee)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", h.Attendance.ListAttendance)
			r.Post("/", h.Attendance.RecordAttendance)
			r.Get("/{id}", h.Attendance.GetAttendance)
			r.Put("/{id}", h.Attendance.UpdateAttendance)
			r.Delete("/{id}", h.Attendance.DeleteAttendance)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/attendance", h.Report.GetMonthlyAttendanceReport)
			r.Get("/attendance/export", h.Report.ExportMonthlyAttendanceReport)
		})

		r.Handle("/metrics", m.Handler())
	})

	return r
}

func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			response.NotFound(w, fmt.Sprintf("Route %s %s not found", r.Method, r.URL.Path))
			return
		}
		next.ServeHTTP(w, r)
	})
}
