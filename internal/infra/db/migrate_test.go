package db

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectTables(mock sqlmock.Sqlmock) {
	for _, table := range []string{
		"categories", "programs", "projects", "activities",
		"publications", "images", "success_stories", "faqs", "jobs",
	} {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + table).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
}

func expectIndexes(mock sqlmock.Sqlmock) {
	for range indexes {
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS").
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
}

func TestMigrateUp_SQLite(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	expectTables(mock)
	expectIndexes(mock)
	mock.ExpectExec("INSERT INTO categories").
		WillReturnResult(sqlmock.NewResult(0, 4))

	assert.NoError(t, MigrateUp(db, DriverSQLite))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	expectTables(mock)
	expectIndexes(mock)
	// Extension and trigram indexes are best-effort.
	mock.ExpectExec("CREATE EXTENSION IF NOT EXISTS pg_trgm").
		WillReturnError(sql.ErrConnDone)
	for range postgresIndexes {
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS").
			WillReturnError(sql.ErrConnDone)
	}
	mock.ExpectExec("INSERT INTO categories").
		WillReturnResult(sqlmock.NewResult(0, 4))

	assert.NoError(t, MigrateUp(db, DriverPostgres))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_UnsupportedDriver(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	err = MigrateUp(db, "oracle")
	assert.Error(t, err)
}

func TestMigrateUp_TableError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS categories").
		WillReturnError(sql.ErrConnDone)

	err = MigrateUp(db, DriverPostgres)
	assert.Error(t, err)
	assert.Equal(t, sql.ErrConnDone, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateDown(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	for _, table := range []string{
		"jobs", "faqs", "success_stories", "images",
		"publications", "activities", "projects", "programs", "categories",
	} {
		mock.ExpectExec("DROP TABLE IF EXISTS " + table).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	assert.NoError(t, MigrateDown(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDialectTokensResolved(t *testing.T) {
	for driver, tokens := range dialectTokens {
		for _, table := range tables {
			rewritten := tokens.Replace(table)
			if strings.Contains(rewritten, "@") {
				t.Errorf("driver %s left unresolved token in: %s", driver, rewritten)
			}
		}
	}
}
