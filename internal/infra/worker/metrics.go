package worker

import (
	"amal-cms/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WorkerMetrics provides Prometheus metrics for the stats worker.
// It embeds the shared ConfigMetrics for configuration monitoring and adds
// job execution tracking:
//
//   - worker_cron_job_runs_total: runs by status (success/failure)
//   - worker_cron_job_duration_seconds: refresh duration histogram
//   - worker_cron_job_kinds_refreshed_total: content kinds refreshed across runs
//   - worker_cron_job_last_success_timestamp: Unix time of the last good run
type WorkerMetrics struct {
	*config.ConfigMetrics

	CronJobRunsTotal            *prometheus.CounterVec
	CronJobDurationSeconds      prometheus.Histogram
	CronJobKindsRefreshedTotal  prometheus.Counter
	CronJobLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates and registers all worker metrics.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		CronJobRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_cron_job_runs_total",
			Help: "Total number of cron job runs by status (success/failure)",
		}, []string{"status"}),

		CronJobDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_cron_job_duration_seconds",
			Help:    "Duration of cron job execution in seconds",
			Buckets: []float64{.1, .5, 1, 5, 15, 30, 60, 120},
		}),

		CronJobKindsRefreshedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_cron_job_kinds_refreshed_total",
			Help: "Total number of content kinds refreshed across all runs",
		}),

		CronJobLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_cron_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful cron job run",
		}),
	}
}

// MustRegister is a no-op kept for call-site symmetry; metrics register
// themselves via promauto at construction.
func (m *WorkerMetrics) MustRegister() {}

// RecordJobRun increments the run counter; status is "success" or "failure".
func (m *WorkerMetrics) RecordJobRun(status string) {
	m.CronJobRunsTotal.WithLabelValues(status).Inc()
}

// RecordJobDuration observes one refresh run, in seconds.
func (m *WorkerMetrics) RecordJobDuration(seconds float64) {
	m.CronJobDurationSeconds.Observe(seconds)
}

// RecordKindsRefreshed adds the number of content kinds covered by a run.
func (m *WorkerMetrics) RecordKindsRefreshed(count int) {
	m.CronJobKindsRefreshedTotal.Add(float64(count))
}

// RecordLastSuccess stamps the current time as the last successful run.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.CronJobLastSuccessTimestamp.SetToCurrentTime()
}
