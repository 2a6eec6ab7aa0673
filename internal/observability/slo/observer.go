package slo

import (
	"context"
	"sort"
	"sync"
	"time"
)

// window accumulates request outcomes between recomputations.
// The HTTP metrics middleware feeds it on every request and the server
// runs StartRecomputeLoop to publish the gauges on a fixed schedule.
type window struct {
	mu        sync.Mutex
	total     int64
	errors    int64
	durations []float64
}

// maxSamples caps the per-window latency sample to bound memory on
// traffic spikes. Quantiles over the first N samples of a minute are
// accurate enough for SLO tracking.
const maxSamples = 4096

var current window

// ObserveRequest records one finished HTTP request in the current window.
// statusCode is the response status; durationSeconds the handler latency.
func ObserveRequest(statusCode int, durationSeconds float64) {
	current.mu.Lock()
	defer current.mu.Unlock()

	current.total++
	if statusCode >= 500 {
		current.errors++
	}
	if len(current.durations) < maxSamples {
		current.durations = append(current.durations, durationSeconds)
	}
}

// Recompute publishes SLO gauges from the current window and resets it.
// Windows with no traffic leave the gauges untouched.
func Recompute() {
	current.mu.Lock()
	total := current.total
	errors := current.errors
	durations := current.durations
	current.total = 0
	current.errors = 0
	current.durations = nil
	current.mu.Unlock()

	if total == 0 {
		return
	}

	UpdateAvailability(float64(total-errors) / float64(total))
	UpdateErrorRate(float64(errors) / float64(total))

	if len(durations) > 0 {
		sort.Float64s(durations)
		UpdateLatencyP95(quantile(durations, 0.95))
		UpdateLatencyP99(quantile(durations, 0.99))
	}
}

// StartRecomputeLoop recomputes the SLO gauges every interval until the
// context is cancelled. It blocks; run it in its own goroutine.
func StartRecomputeLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			Recompute()
		}
	}
}

// quantile returns the q-quantile of a sorted sample.
func quantile(sorted []float64, q float64) float64 {
	idx := int(q * float64(len(sorted)))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
