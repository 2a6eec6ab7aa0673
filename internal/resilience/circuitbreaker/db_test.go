package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDBBreaker(t *testing.T, minRequests uint32) (*DBCircuitBreaker, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	dcb := NewDBCircuitBreakerWithConfig(db, Config{
		Name:             "test-db",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 1.0,
		MinRequests:      minRequests,
	})
	return dcb, mock
}

func TestDBCircuitBreakerQueryContext(t *testing.T) {
	dcb, mock := newTestDBBreaker(t, 5)

	rows := sqlmock.NewRows([]string{"id", "title_en"}).AddRow(1, "Clean Water")
	mock.ExpectQuery("SELECT id, title_en FROM programs").WillReturnRows(rows)

	got, err := dcb.QueryContext(context.Background(), "SELECT id, title_en FROM programs")
	require.NoError(t, err)
	defer got.Close()

	assert.True(t, got.Next(), "expected one row")
	assert.Equal(t, gobreaker.StateClosed, dcb.State())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBCircuitBreakerExecContext(t *testing.T) {
	dcb, mock := newTestDBBreaker(t, 5)

	mock.ExpectExec("UPDATE programs SET is_published").
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := dcb.ExecContext(context.Background(), "UPDATE programs SET is_published = TRUE WHERE id = 1")
	require.NoError(t, err)

	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBCircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	dcb, mock := newTestDBBreaker(t, 3)
	dbErr := errors.New("connection refused")

	for i := 0; i < 3; i++ {
		mock.ExpectQuery("SELECT").WillReturnError(dbErr)
		_, err := dcb.QueryContext(context.Background(), "SELECT 1")
		require.Error(t, err)
	}

	assert.True(t, dcb.IsOpen(), "breaker should open after the failure threshold")

	// With the circuit open the database is never asked.
	_, err := dcb.QueryContext(context.Background(), "SELECT 1")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBCircuitBreakerQueryRowContextBypassesBreaker(t *testing.T) {
	dcb, mock := newTestDBBreaker(t, 5)

	rows := sqlmock.NewRows([]string{"count"}).AddRow(42)
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(rows)

	var count int
	err := dcb.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM publications").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 42, count)
}

func TestDBCircuitBreakerDBReturnsUnderlyingHandle(t *testing.T) {
	dcb, _ := newTestDBBreaker(t, 5)
	assert.NotNil(t, dcb.DB())
}
