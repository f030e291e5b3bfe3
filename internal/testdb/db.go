//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/todo-api/internal/ciutil"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// GetTestDatabaseURL returns the database URL for tests, or an empty string
// when a container should be started instead.
func GetTestDatabaseURL() string {
	return ciutil.GetTestDatabaseURL(nil)
}

// dockerAvailable checks whether the Docker daemon is reachable.
// testcontainers-go panics rather than returning an error when Docker
// is missing, so probe first.
func dockerAvailable() bool {
	return exec.Command("docker", "info").Run() == nil
}

// startContainer runs a throwaway PostgreSQL container and returns its URL.
func startContainer(t *testing.T) string {
	t.Helper()

	if !dockerAvailable() {
		if ciutil.IsCI() {
			t.Fatal("integration tests in CI need DATABASE_URL or a Docker daemon")
		}
		t.Skip("Skipping integration test - set DATABASE_URL or make Docker available")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("todos_test"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("failed to start PostgreSQL container: %v", err)
	}

	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dbURL, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get container connection string")
	return dbURL
}

// GetTestDBWithT returns a migrated database connection for testing.
// The connection is closed when the test finishes.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		dbURL = startContainer(t)
	}

	db, err := sql.Open(postgres.DriverName, dbURL)
	require.NoError(t, err, "Failed to open database connection")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Error closing database connection: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "Failed to ping test database")

	SetupTestDatabaseSchema(t, db)
	return db
}

// SetupTestDatabaseSchema runs database migrations to set up the test database.
func SetupTestDatabaseSchema(t *testing.T, db *sql.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := postgres.RunMigrations(ctx, db, "up", &testGooseLogger{t: t})
	require.NoError(t, err, "Failed to run migrations")
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

// testGooseLogger implements a minimal logger interface for goose
type testGooseLogger struct {
	t *testing.T
}

// Printf implements the required logging method for goose's SetLogger
func (l *testGooseLogger) Printf(format string, v ...interface{}) {
	l.t.Log("Goose: " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf implements the required logging method for goose's SetLogger
func (l *testGooseLogger) Fatalf(format string, v ...interface{}) {
	l.t.Fatal("Goose fatal error: " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}
