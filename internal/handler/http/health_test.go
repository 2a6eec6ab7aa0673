package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLimiterStatus struct{ ips int }

func (f fakeLimiterStatus) ActiveIPs() int { return f.ips }

func healthRequest(t *testing.T, h *HealthHandler) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHealthHandler(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing()

	h := &HealthHandler{
		DB:                 db,
		Version:            "1.2.3",
		RateLimiter:        fakeLimiterStatus{ips: 4},
		RateLimiterEnabled: true,
		CSPEnabled:         true,
	}
	rec, body := healthRequest(t, h)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "1.2.3", body.Version)
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))

	rl, ok := body.Checks["rate_limiter"]
	require.True(t, ok)
	assert.Equal(t, "healthy", rl.Status)
	assert.EqualValues(t, 4, rl.Details["active_ips"])

	csp, ok := body.Checks["csp"]
	require.True(t, ok)
	assert.Equal(t, true, csp.Details["enabled"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthHandlerDatabaseDown(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing().WillReturnError(sql.ErrConnDone)

	rec, body := healthRequest(t, &HealthHandler{DB: db, Version: "dev"})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "unhealthy", body.Checks["database"].Status)
}

func TestHealthHandlerNoDatabase(t *testing.T) {
	rec, body := healthRequest(t, &HealthHandler{Version: "dev"})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "not configured", body.Checks["database"].Message)
}

func TestHealthHandlerUnconfiguredPoolIsDegraded(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing()

	// sqlmock leaves MaxOpenConnections at 0 (unlimited).
	rec, body := healthRequest(t, &HealthHandler{DB: db, Version: "dev"})

	assert.Equal(t, http.StatusOK, rec.Code, "degraded is not a failure")
	assert.Equal(t, "degraded", body.Checks["database"].Status)
}

func TestReadyHandler(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing()

	rec := httptest.NewRecorder()
	(&ReadyHandler{DB: db}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", rec.Body.String())
}

func TestReadyHandlerDatabaseNotReady(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing().WillReturnError(sql.ErrConnDone)

	rec := httptest.NewRecorder()
	(&ReadyHandler{DB: db}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReadyHandlerNoDatabase(t *testing.T) {
	rec := httptest.NewRecorder()
	(&ReadyHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLiveHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	(&LiveHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", rec.Body.String())
}
