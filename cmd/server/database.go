package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/phrazzld/todo-api/internal/redact"
)

// databasePingTimeout bounds the startup connectivity check.
const databasePingTimeout = 5 * time.Second

// setupAppDatabase opens the connection pool with the configured limits and
// verifies that the database is reachable.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*postgres.Pool, error) {
	pool, err := postgres.Open(cfg.Database.URL, postgres.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, databasePingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established",
		"url", redact.String(cfg.Database.URL),
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
		"conn_max_lifetime", cfg.Database.ConnMaxLifetime.String())
	return pool, nil
}
