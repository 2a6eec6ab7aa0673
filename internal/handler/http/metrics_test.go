package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"amal-cms/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddlewareRecordsNormalizedPath(t *testing.T) {
	metrics.HTTPRequestsTotal.Reset()

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}))

	// Many distinct IDs must collapse into one label value.
	for _, id := range []string{"1", "2", "123", "456", "789", "999"} {
		req := httptest.NewRequest(http.MethodGet, "/programs/"+id, nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	got := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/programs/:id", "200"))
	if got != 6 {
		t.Errorf("http_requests_total{path=/programs/:id}=%v, want 6", got)
	}
}

func TestMetricsMiddlewareStripsQueryParameters(t *testing.T) {
	metrics.HTTPRequestsTotal.Reset()

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	paths := []string{
		"/publications/123",
		"/publications/123?page=1",
		"/publications/123?page=1&limit=10",
	}
	for _, p := range paths {
		req := httptest.NewRequest(http.MethodGet, p, nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	got := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/publications/:id", "200"))
	if got != 3 {
		t.Errorf("http_requests_total{path=/publications/:id}=%v, want 3", got)
	}
}

func TestMetricsMiddlewareRecordsStatusCode(t *testing.T) {
	metrics.HTTPRequestsTotal.Reset()

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/programs/slug/clean-water", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	got := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/programs/slug/:slug", "404"))
	if got != 1 {
		t.Errorf("http_requests_total{status=404}=%v, want 1", got)
	}
}

func TestMetricsMiddlewareDefaultsToOK(t *testing.T) {
	metrics.HTTPRequestsTotal.Reset()

	// A handler that never calls WriteHeader still counts as 200.
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("implicit 200"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	got := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/healthz", "200"))
	if got != 1 {
		t.Errorf("http_requests_total{status=200}=%v, want 1", got)
	}
}

func TestMetricsHandlerServesPrometheusFormat(t *testing.T) {
	// Record one request so at least one series exists.
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/programs", nil))

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Error("exposition output is missing http_requests_total")
	}
}

func TestResponseWriterTracksSize(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusCreated)
	if _, err := rw.Write([]byte("hello ")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := rw.Write([]byte("world")); err != nil {
		t.Fatalf("write: %v", err)
	}

	if rw.statusCode != http.StatusCreated {
		t.Errorf("statusCode=%d, want 201", rw.statusCode)
	}
	if rw.size != len("hello world") {
		t.Errorf("size=%d, want %d", rw.size, len("hello world"))
	}
}
