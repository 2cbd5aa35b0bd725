package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SNAPSHOT_BACKEND", "SNAPSHOT_PATH", "DATABASE_URL",
		"DATABASE_MAX_OPEN_CONNS", "DATABASE_MAX_IDLE_CONNS", "DATABASE_CONN_MAX_LIFETIME",
		"DATABASE_LOCK_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT", "TOP_SOLD_LIMIT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendJSON, cfg.Snapshot.Backend)
	assert.Equal(t, "db.json", cfg.Snapshot.Path)
	assert.Equal(t, 4, cfg.Database.MaxOpenConns)
	assert.Equal(t, 2, cfg.Database.MaxIdleConns)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 2*time.Second, cfg.Database.LockTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 5, cfg.Reports.TopSoldLimit)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SNAPSHOT_BACKEND", "Postgres")
	t.Setenv("SNAPSHOT_PATH", "/var/lib/coronas/db.json")
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "10")
	t.Setenv("DATABASE_CONN_MAX_LIFETIME", "90s")
	t.Setenv("DATABASE_LOCK_TIMEOUT", "500ms")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("TOP_SOLD_LIMIT", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendPostgres, cfg.Snapshot.Backend)
	assert.Equal(t, "/var/lib/coronas/db.json", cfg.Snapshot.Path)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 90*time.Second, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 500*time.Millisecond, cfg.Database.LockTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Reports.TopSoldLimit)
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_MAX_IDLE_CONNS", "many")
	t.Setenv("DATABASE_CONN_MAX_LIFETIME", "forever")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Database.MaxIdleConns)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("SNAPSHOT_BACKEND", "sqlite")

	_, err := Load()
	assert.ErrorContains(t, err, "sqlite")
}
