package slo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Objectives for the content API. The public site reads from this service on
// every page render, so availability and tail latency are the numbers the
// team alerts on.
const (
	AvailabilitySLO = 99.9
	LatencyP95SLO   = 0.200
	LatencyP99SLO   = 0.500
	ErrorRateSLO    = 0.001
)

// Gauges recomputed by the observer loop from the recent request window.
var (
	SLOAvailability = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "amal_slo_availability_ratio",
			Help: "Share of requests that did not end in 5xx, target 0.999",
		},
	)

	SLOLatencyP95 = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "amal_slo_latency_p95_seconds",
			Help: "p95 request latency over the recent window, target 0.200",
		},
	)

	SLOLatencyP99 = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "amal_slo_latency_p99_seconds",
			Help: "p99 request latency over the recent window, target 0.500",
		},
	)

	SLOErrorRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "amal_slo_error_rate_ratio",
			Help: "Share of requests that ended in 5xx, target 0.001",
		},
	)
)

func UpdateAvailability(ratio float64) {
	SLOAvailability.Set(ratio)
}

func UpdateLatencyP95(seconds float64) {
	SLOLatencyP95.Set(seconds)
}

func UpdateLatencyP99(seconds float64) {
	SLOLatencyP99.Set(seconds)
}

func UpdateErrorRate(ratio float64) {
	SLOErrorRate.Set(ratio)
}
