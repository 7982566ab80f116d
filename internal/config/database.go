package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"realestate-backend/internal/infrastructure/database"
)

// loadPostgresConfig đọc DB_* variables. Chỉ gọi khi STORAGE_DRIVER=postgres.
func loadPostgresConfig() (*database.DBConfig, error) {
	env := &envReader{}
	cfg := &database.DBConfig{
		Host:              getEnv("DB_HOST", "localhost"),
		Port:              env.int("DB_PORT", 5432),
		Username:          getEnv("DB_USER", "realestate"),
		Password:          getEnv("DB_PASSWORD", ""),
		DBName:            getEnv("DB_NAME", "realestate"),
		SSLMode:           getEnv("DB_SSLMODE", "disable"),
		MaxConns:          int32(env.int("DB_MAX_CONNECTIONS", 25)),
		MinConns:          int32(env.int("DB_MIN_CONNECTIONS", 5)),
		MaxConnLifetime:   env.duration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
		MaxConnIdleTime:   env.duration("DB_MAX_CONN_IDLE_TIME", time.Minute),
		HealthCheckPeriod: env.duration("DB_HEALTH_CHECK_PERIOD", time.Minute),
		MaxRetries:        env.int("DB_MAX_RETRIES", 5),
		RetryDelay:        env.duration("DB_RETRY_DELAY", time.Second),
		ConnectTimeout:    env.duration("DB_CONNECT_TIMEOUT", 10*time.Second),
	}
	if err := env.err(); err != nil {
		return nil, err
	}
	if err := validatePostgres(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validatePostgres(c *database.DBConfig) error {
	switch {
	case c.Host == "" || c.DBName == "":
		return fmt.Errorf("DB_HOST and DB_NAME are required")
	case c.Port < 1 || c.Port > 65535:
		return fmt.Errorf("DB_PORT %d out of range", c.Port)
	case c.MaxConns < 1:
		return fmt.Errorf("DB_MAX_CONNECTIONS must be at least 1")
	case c.MinConns < 0 || c.MinConns > c.MaxConns:
		return fmt.Errorf("DB_MIN_CONNECTIONS must be between 0 and DB_MAX_CONNECTIONS (%d)", c.MaxConns)
	case c.MaxRetries < 0:
		return fmt.Errorf("DB_MAX_RETRIES must not be negative")
	case c.ConnectTimeout <= 0:
		return fmt.Errorf("DB_CONNECT_TIMEOUT must be positive")
	}
	return nil
}

// envReader gom lỗi parse để báo một lần
type envReader struct {
	errs []error
}

func (r *envReader) int(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return v
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return v
}

func (r *envReader) err() error {
	return errors.Join(r.errs...)
}
