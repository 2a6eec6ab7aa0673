package worker

import (
	"fmt"
	"log/slog"
	"time"

	"amal-cms/internal/pkg/config"
)

// WorkerConfig controls the stats worker: how often content totals are
// recomputed, in which timezone the schedule runs, and where the health
// server listens.
//
// All fields carry defaults and LoadConfigFromEnv never fails: an invalid
// environment value falls back to the default with a warning, so a typo in
// deployment config cannot keep the worker down.
type WorkerConfig struct {
	// CronSchedule is the cron expression for the stats refresh job.
	// Default: "*/5 * * * *" (every five minutes).
	CronSchedule string

	// Timezone is the IANA timezone name for cron scheduling.
	// Default: "Asia/Amman".
	Timezone string

	// StatsTimeout bounds a single refresh run across all content kinds.
	// Default: 2 minutes.
	StatsTimeout time.Duration

	// HealthPort is the port for the health check HTTP server.
	// Range: 1024-65535. Default: 9091.
	HealthPort int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule: "*/5 * * * *",
		Timezone:     "Asia/Amman",
		StatsTimeout: 2 * time.Minute,
		HealthPort:   9091,
	}
}

// Validate checks every field and aggregates the failures.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.StatsTimeout); err != nil {
		errs = append(errs, fmt.Errorf("stats timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads the worker configuration from environment
// variables with a fail-open strategy: each invalid value is replaced by
// its default, logged, and counted in the config metrics. The returned
// configuration is always valid and the error is always nil.
//
// Environment variables:
//   - STATS_CRON_SCHEDULE: cron expression (default "*/5 * * * *")
//   - WORKER_TIMEZONE: IANA timezone name (default "Asia/Amman")
//   - STATS_TIMEOUT: duration string, e.g. "2m" (default 2 minutes)
//   - WORKER_HEALTH_PORT: integer 1024-65535 (default 9091)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	result := config.LoadEnvWithFallback("STATS_CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = result.Value.(string)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("cron_schedule")
		metrics.RecordFallback("cron_schedule", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "CronSchedule"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("timezone")
		metrics.RecordFallback("timezone", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "Timezone"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvDuration("STATS_TIMEOUT", cfg.StatsTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 10*time.Second, 30*time.Minute)
	})
	cfg.StatsTimeout = result.Value.(time.Duration)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("stats_timeout")
		metrics.RecordFallback("stats_timeout", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "StatsTimeout"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("health_port")
		metrics.RecordFallback("health_port", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "HealthPort"),
				slog.String("warning", warning))
		}
	}

	metrics.SetFallbackActive("", fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
