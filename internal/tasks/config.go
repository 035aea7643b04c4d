package tasks

import (
	"time"

	"github.com/mrlokans/vokabel/internal/config"
)

// Config holds configuration for the task queue system.
type Config struct {
	// Workers is the number of concurrent task workers. Default: 2
	Workers int

	// ReleaseAfter is when stuck tasks are released back to queue. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often to clean up completed tasks. Default: 1h
	CleanupInterval time.Duration

	// MaxAttempts, Backoff, Timeout and Retention apply to every queue
	// registered through this package.
	MaxAttempts int
	Backoff     time.Duration
	Timeout     time.Duration
	Retention   time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:         2,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: 1 * time.Hour,
		MaxAttempts:     3,
		Backoff:         1 * time.Minute,
		Timeout:         5 * time.Minute,
		Retention:       24 * time.Hour,
	}
}

// FromSettings maps the TASK_* environment settings onto a Config, keeping
// defaults for unset (zero) values.
func FromSettings(s config.Tasks) Config {
	cfg := DefaultConfig()
	if s.Workers > 0 {
		cfg.Workers = s.Workers
	}
	if s.ReleaseAfter > 0 {
		cfg.ReleaseAfter = s.ReleaseAfter
	}
	if s.CleanupInterval > 0 {
		cfg.CleanupInterval = s.CleanupInterval
	}
	if s.MaxRetries > 0 {
		cfg.MaxAttempts = s.MaxRetries
	}
	if s.RetryDelay > 0 {
		cfg.Backoff = s.RetryDelay
	}
	if s.TaskTimeout > 0 {
		cfg.Timeout = s.TaskTimeout
	}
	if s.RetentionDuration > 0 {
		cfg.Retention = s.RetentionDuration
	}
	return cfg
}
