package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Log
		Tasks
		Backfill
		Import
		Dictionary
	}

	HTTP struct {
		Port             int32
		Host             string
		CORSAllowOrigins []string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver DatabaseDriver
		Path   string // sqlite file
		DSN    string // postgres connection string
	}
	Log struct {
		Mode string // "dev" or "prod"
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	Backfill struct {
		Enabled  bool
		Schedule string // Cron format: "30 3 * * *" = daily at 03:30
	}
	Import struct {
		Timeout   time.Duration
		MaxBytes  int64
		UserAgent string
	}
	Dictionary struct {
		Enabled  bool
		BaseURL  string
		Language string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("cors_allow_origins", DefaultCORSAllowOrigins)

	v.SetDefault("database_driver", string(DriverSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")

	v.SetDefault("log_mode", "dev")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	v.SetDefault("backfill_enabled", false)
	v.SetDefault("backfill_schedule", "30 3 * * *")

	v.SetDefault("import_timeout", "15s")
	v.SetDefault("import_max_bytes", 5<<20)
	v.SetDefault("import_user_agent", DefaultUserAgent)

	v.SetDefault("dictionary_enabled", false)
	v.SetDefault("dictionary_base_url", DefaultDictionaryBaseURL)
	v.SetDefault("dictionary_language", "de")

	return &Config{
		HTTP: HTTP{
			Port:             v.GetInt32("PORT"),
			Host:             v.GetString("HOST"),
			CORSAllowOrigins: splitList(v.GetString("CORS_ALLOW_ORIGINS")),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver: DatabaseDriver(strings.ToLower(v.GetString("DATABASE_DRIVER"))),
			Path:   v.GetString("DATABASE_PATH"),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		Log: Log{
			Mode: v.GetString("LOG_MODE"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		Backfill: Backfill{
			Enabled:  v.GetBool("BACKFILL_ENABLED"),
			Schedule: v.GetString("BACKFILL_SCHEDULE"),
		},
		Import: Import{
			Timeout:   v.GetDuration("IMPORT_TIMEOUT"),
			MaxBytes:  v.GetInt64("IMPORT_MAX_BYTES"),
			UserAgent: v.GetString("IMPORT_USER_AGENT"),
		},
		Dictionary: Dictionary{
			Enabled:  v.GetBool("DICTIONARY_ENABLED"),
			BaseURL:  v.GetString("DICTIONARY_BASE_URL"),
			Language: v.GetString("DICTIONARY_LANGUAGE"),
		},
	}
}

// splitList parses a comma separated env value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
