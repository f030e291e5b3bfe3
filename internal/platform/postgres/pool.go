package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/todo-api/internal/store"
)

// DriverName is the database/sql driver registered by pgx.
const DriverName = "pgx"

// PoolConfig holds the connection pool limits.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultPoolConfig returns reasonable defaults for a small service.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// Pool implements store.ConnectionProvider on top of a database/sql pool.
type Pool struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ store.ConnectionProvider = (*Pool)(nil)

// Open creates a pool for the given database URL. It does not connect; use
// Ping to verify connectivity.
func Open(databaseURL string, cfg PoolConfig, logger *slog.Logger) (*Pool, error) {
	db, err := sql.Open(DriverName, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return NewPool(db, logger), nil
}

// NewPool wraps an existing *sql.DB. If logger is nil, a default logger will be used.
func NewPool(db *sql.DB, logger *slog.Logger) *Pool {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Pool{
		db:     db,
		logger: logger.With(slog.String("component", "connection_pool")),
	}
}

// Acquire implements store.ConnectionProvider.Acquire.
// It blocks until a connection is free or ctx is done.
func (p *Pool) Acquire(ctx context.Context) (store.Conn, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		stats := p.db.Stats()
		p.logger.Error("failed to acquire connection",
			slog.String("error", err.Error()),
			slog.Int("open_connections", stats.OpenConnections),
			slog.Int("in_use", stats.InUse),
			slog.Int64("wait_count", stats.WaitCount))
		return nil, store.NewPoolError(err)
	}
	return conn, nil
}

// Ping implements store.ConnectionProvider.Ping.
func (p *Pool) Ping(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return store.NewPoolError(err)
	}
	return nil
}

// DB exposes the underlying pool for migrations.
func (p *Pool) DB() *sql.DB {
	return p.db
}

// Stats reports pool usage.
func (p *Pool) Stats() sql.DBStats {
	return p.db.Stats()
}

// Close closes every connection in the pool.
func (p *Pool) Close() error {
	return p.db.Close()
}
