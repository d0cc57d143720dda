package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/lexicon-srs/internal/platform/migrations"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// DatabaseURLEnv names the variable holding the integration database URL.
const DatabaseURLEnv = "LEXICON_TEST_DATABASE_URL"

// GetTestDatabaseURL returns the PostgreSQL URL for integration tests, or ""
// when none is configured.
func GetTestDatabaseURL() string {
	return os.Getenv(DatabaseURLEnv)
}

// GetSQLiteDBWithT returns a migrated in-memory SQLite database that is
// closed when the test ends.
func GetSQLiteDBWithT(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err, "Failed to open in-memory sqlite database")

	// Every connection to :memory: gets a separate database.
	db.SetMaxOpenConns(1)

	require.NoError(t, migrations.Up(db.DB, migrations.DialectSQLite, nil), "Failed to run migrations")

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close sqlite database: %v", err)
		}
	})
	return db
}

// GetPostgresDBWithT returns a migrated PostgreSQL connection. The test is
// skipped when LEXICON_TEST_DATABASE_URL is not set.
func GetPostgresDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skip(DatabaseURLEnv + " not set - skipping integration test")
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "Failed to open database connection")

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "Database ping failed")

	require.NoError(t, migrations.Up(db, migrations.DialectPostgres, nil), "Failed to run migrations")

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close database connection: %v", err)
		}
	})
	return db
}

// WithTx executes a test function within a transaction, automatically rolling back
// after the test completes. This ensures test isolation and prevents side effects.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		// sql.ErrTxDone is expected if tx is already committed or rolled back
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
