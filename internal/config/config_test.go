package config

import (
    "os"
    "path/filepath"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func noEnvFile(t *testing.T) {
    t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
}

func TestLoadSQLiteDefaults(t *testing.T) {
    noEnvFile(t)
    t.Setenv("DB_DRIVER", "sqlite")
    t.Setenv("SQLITE_PATH", "")
    t.Setenv("APP_PORT", "")

    cfg, err := Load()
    require.NoError(t, err)
    assert.Equal(t, "sqlite", cfg.DBDriver)
    assert.Equal(t, "directory.db", cfg.SQLitePath)
    assert.Equal(t, "8080", cfg.Port)
    assert.Equal(t, "strict", cfg.IntegrityPolicy)
}

func TestLoadMySQLRequiresConnectionVars(t *testing.T) {
    noEnvFile(t)
    t.Setenv("DB_DRIVER", "mysql")
    t.Setenv("DB_USER", "")
    t.Setenv("DB_HOST", "db")
    t.Setenv("DB_NAME", "")

    _, err := Load()
    require.Error(t, err)
    assert.Contains(t, err.Error(), "DB_NAME, DB_USER")
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
    noEnvFile(t)
    t.Setenv("DB_DRIVER", "postgres")
    _, err := Load()
    assert.Error(t, err)
}

func TestLoadReadsEnvFile(t *testing.T) {
    path := filepath.Join(t.TempDir(), "test.env")
    require.NoError(t, os.WriteFile(path, []byte("DB_DRIVER=sqlite\nINTEGRITY_POLICY=lenient\n"), 0o600))
    t.Setenv("ENV_FILE", path)
    // godotenv never overrides variables that are already set.
    t.Setenv("DB_DRIVER", "")
    os.Unsetenv("DB_DRIVER")
    t.Setenv("INTEGRITY_POLICY", "")
    os.Unsetenv("INTEGRITY_POLICY")

    cfg, err := Load()
    require.NoError(t, err)
    assert.Equal(t, "sqlite", cfg.DBDriver)
    assert.Equal(t, "lenient", cfg.IntegrityPolicy)
}

func TestAMQPURLFallback(t *testing.T) {
    noEnvFile(t)
    t.Setenv("DB_DRIVER", "sqlite")
    t.Setenv("RABBITMQ_URL", "")
    t.Setenv("AMQP_URL", "amqp://mq:5672/")

    cfg, err := Load()
    require.NoError(t, err)
    assert.Equal(t, "amqp://mq:5672/", cfg.AMQPURL)
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
    t.Setenv("RATE_LIMIT_CAPACITY", "0")
    t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
    t.Setenv("RATE_LIMIT_TTL", "1s")

    cfg := LoadRateLimitConfig()
    assert.Equal(t, 1, cfg.Capacity)
    assert.Equal(t, 10*time.Second, cfg.TTL)
    assert.Equal(t, "ip_route", cfg.KeyStrategy)
}

func TestLoadCacheConfigNeverCachesWrites(t *testing.T) {
    t.Setenv("CACHE_METHODS", "get, head, POST, delete")
    cfg := LoadCacheConfig()
    assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, cfg.Methods)
}

func TestLoadRedisConfigHostPort(t *testing.T) {
    t.Setenv("REDIS_ADDR", "ignored:1")
    t.Setenv("REDIS_HOST", "cache")
    t.Setenv("REDIS_PORT", "6380")
    assert.Equal(t, "cache:6380", LoadRedisConfig().Addr)
}

func TestNewRedisClientDisabled(t *testing.T) {
    assert.Nil(t, NewRedisClient(RedisConfig{Enabled: false}))
}
