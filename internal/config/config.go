package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"realestate-backend/internal/infrastructure/database"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Storage drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App     AppConfig
	Storage StorageConfig
	Redis   RedisConfig
	Cache   CacheConfig
	JWT     JWTConfig
	Auth    AuthConfig
	CORS    CORSConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type StorageConfig struct {
	Driver     string // postgres | sqlite
	SQLitePath string
	Postgres   *database.DBConfig // nil khi Driver=sqlite
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
}

type CacheConfig struct {
	ListTTL    time.Duration
	MemorySize int // entries, used when Redis is disabled
}

type JWTConfig struct {
	Secret            string
	Issuer            string
	Audience          string
	AccessTokenExpiry int // minutes
}

// AuthConfig - demo credential list, username -> plain password
type AuthConfig struct {
	Users      map[string]string
	BcryptCost int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	listTTL, err := time.ParseDuration(getEnv("LIST_CACHE_TTL", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LIST_CACHE_TTL: %w", err)
	}

	users, err := parseUsers(getEnv("AUTH_USERS", ""))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Real Estate API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			Driver:     strings.ToLower(getEnv("STORAGE_DRIVER", DriverPostgres)),
			SQLitePath: getEnv("SQLITE_PATH", "realestate.db"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			ListTTL:    listTTL,
			MemorySize: getEnvInt("MEMORY_CACHE_SIZE", 1024),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			Issuer:            getEnv("JWT_ISSUER", "realestate-api"),
			Audience:          getEnv("JWT_AUDIENCE", "realestate-clients"),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 60), // minutes
		},
		Auth: AuthConfig{
			Users:      users,
			BcryptCost: getEnvInt("AUTH_BCRYPT_COST", 10),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
	}

	if cfg.Storage.Driver == DriverPostgres {
		if cfg.Storage.Postgres, err = loadPostgresConfig(); err != nil {
			return nil, fmt.Errorf("database config: %w", err)
		}
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Storage.Driver == DriverPostgres && c.Storage.Postgres == nil {
		return fmt.Errorf("postgres storage selected without database config")
	}
	if c.Cache.ListTTL <= 0 {
		return fmt.Errorf("LIST_CACHE_TTL must be positive")
	}
	if c.JWT.AccessTokenExpiry <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRY must be positive")
	}

	// Production environment phải có JWT secret
	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Storage.Driver == DriverPostgres && c.Storage.Postgres.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

// IsProduction - shortcut cho gin mode và logger
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// parseUsers đọc "alice:secret,bob:hunter2"
func parseUsers(raw string) (map[string]string, error) {
	users := make(map[string]string)
	for _, entry := range splitList(raw) {
		name, password, ok := strings.Cut(entry, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" || password == "" {
			return nil, fmt.Errorf("invalid AUTH_USERS entry %q: expected user:password", entry)
		}
		users[name] = password
	}
	return users, nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
