package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/phrazzld/todo-api/internal/platform/telemetry"
	"github.com/phrazzld/todo-api/internal/store"
)

// application holds the shared dependencies of the server and ensures they
// are released on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	pool         *postgres.Pool
	provider     store.ConnectionProvider
	storeFactory store.TodoStoreFactory

	telemetry *telemetry.Provider
	metrics   *telemetry.Metrics
}

// newApplication wires the stores and telemetry around an already verified
// connection pool.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, pool *postgres.Pool) (*application, error) {
	app := &application{
		config:       cfg,
		logger:       logger,
		pool:         pool,
		provider:     pool,
		storeFactory: postgres.NewTodoStoreFactory(logger),
	}

	var err error
	app.telemetry, err = telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	app.metrics, err = telemetry.NewMetrics(app.telemetry.Meter)
	if err != nil {
		_ = app.telemetry.Shutdown(ctx)
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	if cfg.Telemetry.Enabled {
		logger.Info("Telemetry initialized",
			"exporter", cfg.Telemetry.Exporter,
			"service_name", cfg.Telemetry.ServiceName)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the HTTP server and blocks until ctx is canceled or the server
// fails. Resources are released before it returns.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup(ctx context.Context) {
	if app.telemetry != nil {
		if err := app.telemetry.Shutdown(ctx); err != nil {
			app.logger.Error("Error shutting down telemetry", "error", err)
		}
	}

	if app.pool != nil {
		if err := app.pool.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
}
