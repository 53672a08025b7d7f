package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/fittrack/internal/logger"
)

// unsetEnv clears keys for the duration of the test; t.Setenv restores them afterwards.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	unsetEnv(t, "STORE_DRIVER", "STORE_NAMESPACE", "REDIS_HOST", "REDIS_PORT", "REDIS_TIMEOUT",
		"DB_SQLITE_PATH", "LOG_FORMAT", "LOG_LEVEL")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 3*time.Second, cfg.Redis.Timeout)
	assert.Equal(t, "data/fittrack.db", cfg.DB.SQLitePath)
	assert.Equal(t, "text", cfg.Logger.Format)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", " Redis ")
	t.Setenv("STORE_NAMESPACE", "test:")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_TIMEOUT", "500ms")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, DriverRedis, cfg.Store.Driver)
	assert.Equal(t, "test:", cfg.Store.Namespace)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr())
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 500*time.Millisecond, cfg.Redis.Timeout)
	assert.Equal(t, logger.LevelDebug, cfg.Logger.LoggerSettings().Level)
}

func TestFromEnv_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown STORE_DRIVER "mongo"`)
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := &Config{
		Store:  StoreConfig{Driver: DriverSQLite},
		Logger: LoggerConfig{Format: "xml"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_SQLITE_PATH")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestDSN(t *testing.T) {
	cfg := DBConfig{Host: "db", Port: "5433", User: "u", Password: "p", DBName: "n", SSLMode: "require"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=n sslmode=require", cfg.DSN())
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]logger.LogLevel{
		"debug":   logger.LevelDebug,
		"INFO":    logger.LevelInfo,
		"warning": logger.LevelWarn,
		"error":   logger.LevelError,
		"bogus":   logger.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLogLevel(in), in)
	}
}
