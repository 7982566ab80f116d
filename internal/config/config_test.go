package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("AUTH_USERS", "")
	t.Setenv("LIST_CACHE_TTL", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, 60*time.Second, cfg.Cache.ListTTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.Empty(t, cfg.Auth.Users)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("LIST_CACHE_TTL", "5m")
	t.Setenv("AUTH_USERS", "alice:secret, bob:p:w")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/x.db", cfg.Storage.SQLitePath)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Cache.ListTTL)
	assert.Equal(t, map[string]string{"alice": "secret", "bob": "p:w"}, cfg.Auth.Users)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"driver":     {"STORAGE_DRIVER": "mongo"},
		"ttl":        {"LIST_CACHE_TTL": "soon"},
		"users":      {"AUTH_USERS": "alice"},
		"prod jwt":   {"APP_ENV": "production", "STORAGE_DRIVER": "sqlite"},
		"prod db pw": {"APP_ENV": "production", "JWT_SECRET": "s3cret", "DB_PASSWORD": ""},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_PostgresSettings(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_MAX_CONN_LIFETIME", "10m")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg.Storage.Postgres)
	assert.Equal(t, 6543, cfg.Storage.Postgres.Port)
	assert.Equal(t, 10*time.Minute, cfg.Storage.Postgres.MaxConnLifetime)
	assert.Equal(t, int32(25), cfg.Storage.Postgres.MaxConns)
}

func TestLoad_SQLiteIgnoresDatabaseSettings(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("DB_PORT", "abc")
	t.Setenv("DB_MAX_CONNECTIONS", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Nil(t, cfg.Storage.Postgres)
}

func TestLoad_InvalidPostgresSettings(t *testing.T) {
	cases := map[string]map[string]string{
		"port not a number": {"DB_PORT": "abc"},
		"port range":        {"DB_PORT": "70000"},
		"bad duration":      {"DB_RETRY_DELAY": "later"},
		"no connections":    {"DB_MAX_CONNECTIONS": "0"},
		"min above max":     {"DB_MAX_CONNECTIONS": "4", "DB_MIN_CONNECTIONS": "5"},
		"negative retries":  {"DB_MAX_RETRIES": "-1"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("STORAGE_DRIVER", "postgres")
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestEnvReader_CollectsEveryError(t *testing.T) {
	t.Setenv("X_INT", "one")
	t.Setenv("X_DUR", "two")
	env := &envReader{}

	assert.Equal(t, 7, env.int("X_INT", 7))
	assert.Equal(t, time.Second, env.duration("X_DUR", time.Second))
	err := env.err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "X_INT")
	assert.Contains(t, err.Error(), "X_DUR")
}
