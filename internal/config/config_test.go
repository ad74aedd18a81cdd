package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8188), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, "warn", cfg.Database.LogLevel)

	assert.Equal(t, DefaultCatalogBaseURL, cfg.Catalog.BaseURL)
	assert.Zero(t, cfg.Catalog.Timeout)
	assert.Equal(t, time.Second, cfg.Catalog.MinInterval)

	assert.True(t, cfg.Seed.OnStartup)
	assert.False(t, cfg.Seed.RetryEnabled)
	assert.Equal(t, "*/15 * * * *", cfg.Seed.RetrySchedule)

	assert.False(t, cfg.Tasks.Enabled)
	assert.Equal(t, 1, cfg.Tasks.Workers)
	assert.Equal(t, 15*time.Minute, cfg.Tasks.ReleaseAfter)
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_PATH", "/tmp/catalog.db")
	t.Setenv("CATALOG_BASE_URL", "http://localhost:8000")
	t.Setenv("CATALOG_TIMEOUT", "30s")
	t.Setenv("CATALOG_MIN_INTERVAL", "0s")
	t.Setenv("SEED_ON_STARTUP", "false")
	t.Setenv("SEED_RETRY_ENABLED", "true")
	t.Setenv("TASKS_ENABLED", "true")
	t.Setenv("TASK_WORKERS", "3")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, "/tmp/catalog.db", cfg.Database.Path)
	assert.Equal(t, "http://localhost:8000", cfg.Catalog.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Catalog.Timeout)
	assert.Zero(t, cfg.Catalog.MinInterval)
	assert.False(t, cfg.Seed.OnStartup)
	assert.True(t, cfg.Seed.RetryEnabled)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 3, cfg.Tasks.Workers)
}
