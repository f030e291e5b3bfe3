package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
)

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf forwards goose progress messages at INFO.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf forwards goose failures at ERROR. It does not exit; the error is
// returned to the caller instead.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// handleMigrations runs a single migration command requested on the command
// line and returns without starting the server.
func handleMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	if !slices.Contains(postgres.MigrationCommands, command) {
		return fmt.Errorf("unknown migration command %q", command)
	}

	logger.Info("Using database URL",
		"url", maskDatabaseURL(cfg.Database.URL),
		"command", command)

	pool, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Error("Error closing database connection", "error", err)
		}
	}()

	return runMigrations(ctx, pool.DB(), command, logger)
}

// runMigrations executes a goose command, tagging every log line with a
// correlation ID for the whole operation.
func runMigrations(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	migrationLogger := logger.With(
		"correlation_id", uuid.New().String(),
		"component", "migrations",
		"command", command,
	)

	startTime := time.Now()
	migrationLogger.Info("Starting migration operation",
		"operation", fmt.Sprintf("goose %s", command))

	err := postgres.RunMigrations(ctx, db, command, &slogGooseLogger{logger: migrationLogger})

	migrationLogger.Info("Migration operation completed",
		"operation", fmt.Sprintf("goose %s", command),
		"duration_ms", time.Since(startTime).Milliseconds(),
		"success", err == nil)

	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	return nil
}

// maskDatabaseURL masks the password in a database URL for safe logging.
func maskDatabaseURL(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}

	if parsedURL.User != nil {
		if _, hasPassword := parsedURL.User.Password(); hasPassword {
			parsedURL.User = url.UserPassword(parsedURL.User.Username(), "****")
		}
		return parsedURL.String()
	}

	return dbURL
}
