package worker

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewWorkerMetrics(t *testing.T) {
	metrics := globalTestMetrics

	if metrics.ConfigMetrics == nil {
		t.Error("ConfigMetrics is nil")
	}
	if metrics.CronJobRunsTotal == nil {
		t.Error("CronJobRunsTotal is nil")
	}
	if metrics.CronJobDurationSeconds == nil {
		t.Error("CronJobDurationSeconds is nil")
	}
	if metrics.CronJobKindsRefreshedTotal == nil {
		t.Error("CronJobKindsRefreshedTotal is nil")
	}
	if metrics.CronJobLastSuccessTimestamp == nil {
		t.Error("CronJobLastSuccessTimestamp is nil")
	}

	// MustRegister is a no-op and must not panic.
	metrics.MustRegister()
}

func TestRecordJobRun(t *testing.T) {
	metrics := globalTestMetrics
	metrics.CronJobRunsTotal.Reset()

	metrics.RecordJobRun("success")
	metrics.RecordJobRun("success")
	metrics.RecordJobRun("failure")

	success := testutil.ToFloat64(metrics.CronJobRunsTotal.WithLabelValues("success"))
	failure := testutil.ToFloat64(metrics.CronJobRunsTotal.WithLabelValues("failure"))
	if success != 2 {
		t.Errorf("success runs = %v, want 2", success)
	}
	if failure != 1 {
		t.Errorf("failure runs = %v, want 1", failure)
	}
}

func TestRecordKindsRefreshed(t *testing.T) {
	metrics := globalTestMetrics
	before := testutil.ToFloat64(metrics.CronJobKindsRefreshedTotal)

	metrics.RecordKindsRefreshed(8)
	metrics.RecordKindsRefreshed(8)

	got := testutil.ToFloat64(metrics.CronJobKindsRefreshedTotal)
	if got-before != 16 {
		t.Errorf("kinds refreshed delta = %v, want 16", got-before)
	}
}

func TestRecordLastSuccess(t *testing.T) {
	metrics := globalTestMetrics

	metrics.RecordLastSuccess()

	got := testutil.ToFloat64(metrics.CronJobLastSuccessTimestamp)
	now := float64(time.Now().Unix())
	if got < now-5 || got > now+5 {
		t.Errorf("last success timestamp = %v, want close to %v", got, now)
	}
}

func TestRecordJobDuration(t *testing.T) {
	metrics := globalTestMetrics

	// Histograms have no simple value accessor; just exercise the path.
	metrics.RecordJobDuration(0.25)
	metrics.RecordJobDuration(12.5)
}
