package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ConfigLoadResult is what every loader in this package returns. Value holds
// the loaded setting, or the default when the environment value failed to
// parse or validate. Warnings carries one message per fallback so the worker
// can log exactly what was rejected and what it got instead.
//
// Loaders never return an error. A bad WORKER_TIMEZONE in a deployment
// manifest should degrade to the default schedule, not keep the stats worker
// from starting.
type ConfigLoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

func fallbackResult(envKey, raw string, err error, defaultValue interface{}) ConfigLoadResult {
	return ConfigLoadResult{
		Value:           defaultValue,
		Warnings:        []string{fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'", envKey, raw, err, defaultValue)},
		FallbackApplied: true,
	}
}

// LoadEnvWithFallback reads a string setting such as STATS_CRON_SCHEDULE or
// WORKER_TIMEZONE. An unset or empty variable yields the default silently.
// A set value is run through validator (when non-nil); on failure the
// default wins and the rejection is recorded as a warning.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) ConfigLoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return ConfigLoadResult{Value: defaultValue}
	}
	if validator != nil {
		if err := validator(value); err != nil {
			return fallbackResult(envKey, value, err, defaultValue)
		}
	}
	return ConfigLoadResult{Value: value}
}

// LoadEnvDuration reads a Go duration string such as STATS_TIMEOUT="2m".
// Both parse failures and validator rejections fall back to the default.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return ConfigLoadResult{Value: defaultValue}
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallbackResult(envKey, raw, err, defaultValue)
	}
	if validator != nil {
		if err := validator(d); err != nil {
			return fallbackResult(envKey, raw, err, defaultValue)
		}
	}
	return ConfigLoadResult{Value: d}
}

// LoadEnvInt reads an integer setting such as WORKER_HEALTH_PORT. Both parse
// failures and validator rejections fall back to the default.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return ConfigLoadResult{Value: defaultValue}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallbackResult(envKey, raw, fmt.Errorf("invalid integer format"), defaultValue)
	}
	if validator != nil {
		if err := validator(n); err != nil {
			return fallbackResult(envKey, raw, err, defaultValue)
		}
	}
	return ConfigLoadResult{Value: n}
}
