package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
	Report    ReportConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port       int
	Env        string
	CORSOrigin []string
}

// StorageConfig selects where employee photos are written.
type StorageConfig struct {
	Type          string // local | s3
	UploadPath    string
	BaseURL       string
	MaxUploadSize int64
	S3            S3Config
}

type S3Config struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
	PublicURL    string
}

// RateLimitConfig throttles POST /auth/login per client address.
type RateLimitConfig struct {
	LoginPerSecond float64
	LoginBurst     int
}

type ReportConfig struct {
	LateThreshold string
}

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	config := &Config{}

	database, err := loadDatabase()
	if err != nil {
		return nil, err
	}
	config.Database = database

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:       appPort,
		Env:        getEnv("APP_ENV", EnvDevelopment),
		CORSOrigin: getEnvSlice("CORS_ORIGIN", []string{"*"}),
	}

	// JWT configuration
	jwtExpiration, err := time.ParseDuration(getEnv("JWT_EXPIRATION_TIME", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_TIME: %w", err)
	}

	config.JWT = JWTConfig{
		Secret:     getEnv("JWT_SECRET_KEY", ""),
		Expiration: jwtExpiration,
	}

	// Storage configuration
	maxUploadMB, err := strconv.Atoi(getEnv("UPLOAD_MAX_SIZE_MB", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_SIZE_MB: %w", err)
	}
	usePathStyle, err := strconv.ParseBool(getEnv("S3_USE_PATH_STYLE", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid S3_USE_PATH_STYLE: %w", err)
	}

	config.Storage = StorageConfig{
		Type:          getEnv("STORAGE_TYPE", "local"),
		UploadPath:    getEnv("UPLOAD_PATH", "./uploads"),
		BaseURL:       strings.TrimRight(getEnv("UPLOAD_BASE_URL", "/uploads"), "/"),
		MaxUploadSize: int64(maxUploadMB) << 20,
		S3: S3Config{
			Endpoint:     getEnv("S3_ENDPOINT", ""),
			Region:       getEnv("S3_REGION", "us-east-1"),
			Bucket:       getEnv("S3_BUCKET", ""),
			AccessKey:    getEnv("S3_ACCESS_KEY", ""),
			SecretKey:    getEnv("S3_SECRET_KEY", ""),
			UsePathStyle: usePathStyle,
			PublicURL:    strings.TrimRight(getEnv("S3_PUBLIC_URL", ""), "/"),
		},
	}

	// Login throttling
	loginRate, err := strconv.ParseFloat(getEnv("LOGIN_RATE_LIMIT", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_LIMIT: %w", err)
	}
	loginBurst, err := strconv.Atoi(getEnv("LOGIN_RATE_BURST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_BURST: %w", err)
	}

	config.RateLimit = RateLimitConfig{
		LoginPerSecond: loginRate,
		LoginBurst:     loginBurst,
	}

	config.Report = ReportConfig{
		LateThreshold: getEnv("LATE_THRESHOLD", "09:45:00"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_TIME must be positive")
	}
	switch c.App.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("APP_ENV must be one of development, production, test")
	}
	switch c.Storage.Type {
	case "local":
		if c.Storage.UploadPath == "" {
			return fmt.Errorf("UPLOAD_PATH is required for local storage")
		}
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for s3 storage")
		}
		if c.Storage.S3.AccessKey == "" || c.Storage.S3.SecretKey == "" {
			return fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY are required for s3 storage")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_TYPE: %s", c.Storage.Type)
	}
	if c.Storage.MaxUploadSize <= 0 {
		return fmt.Errorf("UPLOAD_MAX_SIZE_MB must be positive")
	}
	if c.RateLimit.LoginPerSecond <= 0 || c.RateLimit.LoginBurst <= 0 {
		return fmt.Errorf("LOGIN_RATE_LIMIT and LOGIN_RATE_BURST must be positive")
	}
	if _, err := time.Parse("15:04:05", c.Report.LateThreshold); err != nil {
		return fmt.Errorf("LATE_THRESHOLD must be HH:MM:SS")
	}
	return nil
}

// IsProduction reports whether internal error details must be hidden.
func (c *Config) IsProduction() bool {
	return c.App.Env == EnvProduction
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return c.Database.URL()
}

// LoadDatabase reads only the database settings, for tools such as
// cmd/migrate and cmd/seed that do not serve HTTP.
func LoadDatabase() (DatabaseConfig, error) {
	if err := loadDotEnv(); err != nil {
		return DatabaseConfig{}, err
	}
	return loadDatabase()
}

func (d DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

func loadDotEnv() error {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		slog.Debug("No .env file found, using process environment")
	}
	return nil
}

func loadDatabase() (DatabaseConfig, error) {
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return DatabaseConfig{}, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return DatabaseConfig{}, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hr_management"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
