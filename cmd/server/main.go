// Package main implements the entry point for the todo API server, which
// serves the todo CRUD endpoints on top of a PostgreSQL connection pool.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"Run a database migration command and exit ("+strings.Join(postgres.MigrationCommands, ", ")+")")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateCmd); err != nil {
		stop()
		log.Fatalf("todo-api: %v", err)
	}
}

// run loads configuration and either executes a migration command or starts
// the HTTP server until ctx is canceled.
func run(ctx context.Context, migrateCmd string) error {
	cfg, logger, err := initializeApp()
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		return handleMigrations(ctx, cfg, migrateCmd, logger)
	}

	pool, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if cfg.Database.AutoMigrate {
		if err := runMigrations(ctx, pool.DB(), "up", logger); err != nil {
			_ = pool.Close()
			return err
		}
	}

	app, err := newApplication(ctx, cfg, logger, pool)
	if err != nil {
		_ = pool.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupAppLogger(cfg, os.Stdout)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Server configuration loaded",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"auto_migrate", cfg.Database.AutoMigrate,
		"telemetry_enabled", cfg.Telemetry.Enabled)

	return cfg, logger, nil
}
