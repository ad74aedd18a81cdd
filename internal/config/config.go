package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Catalog
		Seed
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path     string
		LogLevel string // silent, error, warn or info
	}
	Catalog struct {
		BaseURL     string
		Timeout     time.Duration // 0 means no client-side timeout
		MinInterval time.Duration // Minimum spacing between catalog requests, 0 disables it
	}
	Seed struct {
		OnStartup     bool
		RetryEnabled  bool
		RetrySchedule string // Cron format: "*/15 * * * *" = every 15 minutes
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("db_log_level", "warn")

	// Remote catalog defaults
	v.SetDefault("catalog_base_url", DefaultCatalogBaseURL)
	v.SetDefault("catalog_timeout", "0s")
	v.SetDefault("catalog_min_interval", "1s")

	// Seeding defaults
	v.SetDefault("seed_on_startup", true)
	v.SetDefault("seed_retry_enabled", false)
	v.SetDefault("seed_retry_schedule", "*/15 * * * *")

	// Task queue defaults
	v.SetDefault("tasks_enabled", false)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			LogLevel: v.GetString("DB_LOG_LEVEL"),
		},
		Catalog: Catalog{
			BaseURL:     v.GetString("CATALOG_BASE_URL"),
			Timeout:     v.GetDuration("CATALOG_TIMEOUT"),
			MinInterval: v.GetDuration("CATALOG_MIN_INTERVAL"),
		},
		Seed: Seed{
			OnStartup:     v.GetBool("SEED_ON_STARTUP"),
			RetryEnabled:  v.GetBool("SEED_RETRY_ENABLED"),
			RetrySchedule: v.GetString("SEED_RETRY_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}
