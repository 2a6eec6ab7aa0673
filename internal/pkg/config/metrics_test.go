package config

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// promauto registers with the default registry, so each test needs a unique
// component prefix.

func TestNewConfigMetricsRegistersAllMetrics(t *testing.T) {
	m := NewConfigMetrics("testcfg_new")

	require.NotNil(t, m.LoadTimestamp)
	require.NotNil(t, m.ValidationErrorsTotal)
	require.NotNil(t, m.FallbacksTotal)
	require.NotNil(t, m.FallbackActive)
	assert.Equal(t, "testcfg_new", m.componentName)
}

func TestConfigMetricsCounters(t *testing.T) {
	m := NewConfigMetrics("testcfg_counters")

	m.RecordValidationError("cron_schedule")
	m.RecordValidationError("cron_schedule")
	m.RecordValidationError("timezone")
	m.RecordFallback("cron_schedule", "default")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ValidationErrorsTotal.WithLabelValues("cron_schedule")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationErrorsTotal.WithLabelValues("timezone")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("cron_schedule")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("timezone")))
}

func TestConfigMetricsFallbackGauge(t *testing.T) {
	m := NewConfigMetrics("testcfg_gauge")

	assert.Equal(t, 0.0, testutil.ToFloat64(m.FallbackActive))

	m.SetFallbackActive("", true)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbackActive))

	m.SetFallbackActive("", false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.FallbackActive))
}

func TestConfigMetricsLoadTimestamp(t *testing.T) {
	m := NewConfigMetrics("testcfg_ts")

	assert.Equal(t, 0.0, testutil.ToFloat64(m.LoadTimestamp))

	m.RecordLoadTimestamp()
	assert.Greater(t, testutil.ToFloat64(m.LoadTimestamp), 0.0)
}
