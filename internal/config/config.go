package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Jobs     JobsConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
	// StorageDriver selects the repository backend: memory or postgres
	StorageDriver string
	SeedDemo      bool
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	Migrate  bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// LockDriver is local or redis
	LockDriver string
	LockTTL    time.Duration
}

// StorageConfig is where generated exports are written
type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioRegion    string
	URLExpiry      time.Duration
}

type JobsConfig struct {
	Enabled  bool
	Interval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	} else if err != nil {
		slog.Debug("No .env file found, using process environment")
	}

	config := &Config{}

	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}
	seedDemo, err := getEnvBool("SEED_DEMO_DATA", false)
	if err != nil {
		return nil, err
	}
	config.App = AppConfig{
		Port:          appPort,
		Env:           getEnv("APP_ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:3000"),
		StorageDriver: getEnv("STORAGE_DRIVER", "memory"),
		SeedDemo:      seedDemo,
	}

	// Database configuration
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	migrate, err := getEnvBool("DB_MIGRATE", true)
	if err != nil {
		return nil, err
	}
	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "backoffice"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		Migrate:  migrate,
	}

	// Redis configuration
	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	lockTTL, err := getEnvDuration("LOCK_TTL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	config.Redis = RedisConfig{
		Addr:       getEnv("REDIS_ADDR", "localhost:6379"),
		Password:   getEnv("REDIS_PASSWORD", ""),
		DB:         redisDB,
		LockDriver: getEnv("LOCK_DRIVER", "local"),
		LockTTL:    lockTTL,
	}

	// File storage configuration
	useSSL, err := getEnvBool("MINIO_USE_SSL", false)
	if err != nil {
		return nil, err
	}
	urlExpiry, err := getEnvDuration("STORAGE_URL_EXPIRY", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	config.Storage = StorageConfig{
		Type:           getEnv("FILE_STORAGE", "local"),
		BasePath:       getEnv("STORAGE_BASE_PATH", "./storage"),
		BaseURL:        getEnv("STORAGE_BASE_URL", fmt.Sprintf("http://localhost:%d/api/v1/exports/files", appPort)),
		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "backoffice-exports"),
		MinioUseSSL:    useSSL,
		MinioRegion:    getEnv("MINIO_REGION", ""),
		URLExpiry:      urlExpiry,
	}

	jobsEnabled, err := getEnvBool("JOBS_ENABLED", true)
	if err != nil {
		return nil, err
	}
	jobsInterval, err := getEnvDuration("JOBS_INTERVAL", time.Hour)
	if err != nil {
		return nil, err
	}
	config.Jobs = JobsConfig{
		Enabled:  jobsEnabled,
		Interval: jobsInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.App.StorageDriver {
	case "memory":
	case "postgres":
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be memory or postgres, got %q", c.App.StorageDriver)
	}

	if c.Redis.LockDriver != "local" && c.Redis.LockDriver != "redis" {
		return fmt.Errorf("LOCK_DRIVER must be local or redis, got %q", c.Redis.LockDriver)
	}

	switch c.Storage.Type {
	case "local":
		if c.Storage.BasePath == "" {
			return fmt.Errorf("STORAGE_BASE_PATH is required")
		}
	case "minio":
		if c.Storage.MinioAccessKey == "" || c.Storage.MinioSecretKey == "" {
			return fmt.Errorf("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required")
		}
	default:
		return fmt.Errorf("FILE_STORAGE must be local or minio, got %q", c.Storage.Type)
	}

	if c.Jobs.Enabled && c.Jobs.Interval <= 0 {
		return fmt.Errorf("JOBS_INTERVAL must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
