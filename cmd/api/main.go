package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hr-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hr-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/hr-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hr-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hr-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hr-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/hr-backend-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/hr-backend-go/internal/service/employee"
	"github.com/cmlabs-hris/hr-backend-go/internal/service/file"
	reportService "github.com/cmlabs-hris/hr-backend-go/internal/service/report"
	"github.com/go-chi/httplog/v3"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-backend"),
		slog.String("version", version),
		slog.String("env", cfg.App.Env),
	))
	response.ExposeErrors(!cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), cfg.Database.MaxConns)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	fileStorage, uploadDir, err := newFileStorage(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	m := metrics.New()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiration)
	authService, err := serviceAuth.NewAuthService(userRepo, JWTService)
	if err != nil {
		return fmt.Errorf("init auth service: %w", err)
	}
	fileService := file.NewFileService(fileStorage)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, fileService, m)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo)
	reportSvc := reportService.NewReportService(reportRepo, cfg.Report.LateThreshold)

	loginLimiter := middleware.NewRateLimiter(cfg.RateLimit.LoginPerSecond, cfg.RateLimit.LoginBurst)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("login-limiter-sweep", 5*time.Minute, loginLimiter.Sweep)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			CORSOrigins:  cfg.App.CORSOrigin,
			Production:   cfg.IsProduction(),
			UploadDir:    uploadDir,
			UploadPrefix: uploadPrefix(cfg.Storage.BaseURL),
		},
		JWTService,
		loginLimiter,
		m,
		appHTTP.Handlers{
			Health:     appHTTP.NewHealthHandler(db, version),
			Auth:       appHTTP.NewAuthHandler(authService),
			Employee:   appHTTP.NewEmployeeHandler(employeeSvc, cfg.Storage.MaxUploadSize),
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			Report:     appHTTP.NewReportHandler(reportSvc),
		},
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "addr", srv.Addr, "storage", cfg.Storage.Type)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	slog.Info("Server exited gracefully")
	return nil
}

// newFileStorage returns the configured backend and, for local storage, the
// directory to serve publicly.
func newFileStorage(ctx context.Context, cfg config.StorageConfig) (storage.FileStorage, string, error) {
	switch cfg.Type {
	case "s3":
		s3Storage, err := storage.NewS3Storage(ctx, storage.S3Options{
			Endpoint:     cfg.S3.Endpoint,
			Region:       cfg.S3.Region,
			Bucket:       cfg.S3.Bucket,
			AccessKey:    cfg.S3.AccessKey,
			SecretKey:    cfg.S3.SecretKey,
			UsePathStyle: cfg.S3.UsePathStyle,
			PublicURL:    cfg.S3.PublicURL,
		})
		if err != nil {
			return nil, "", fmt.Errorf("init s3 storage: %w", err)
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			return nil, "", fmt.Errorf("ensure bucket: %w", err)
		}
		return s3Storage, "", nil
	default:
		localStorage, err := storage.NewLocalStorage(cfg.UploadPath, cfg.BaseURL)
		if err != nil {
			return nil, "", fmt.Errorf("init local storage: %w", err)
		}
		return localStorage, localStorage.BasePath(), nil
	}
}

// uploadPrefix extracts the path part of UPLOAD_BASE_URL, which may be absolute.
func uploadPrefix(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Path == "" {
		return "/uploads"
	}
	return u.Path
}
