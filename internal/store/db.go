package store

import (
	"context"
	"database/sql"
)

// DBTX is an interface that abstracts the database access layer.
// It is implemented by *sql.DB, *sql.Conn and *sql.Tx, allowing our code
// to work with a pool, a checked-out connection or a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Conn is a single connection checked out of a pool. Close returns it to the
// pool and must be called exactly once.
type Conn interface {
	DBTX
	Close() error
}

// ConnectionProvider hands out pooled database connections.
type ConnectionProvider interface {
	// Acquire checks out a connection. It returns a *PoolError when the pool
	// is closed, exhausted past the context deadline, or cannot reach the
	// database.
	Acquire(ctx context.Context) (Conn, error)

	// Ping verifies that the pool can reach the database.
	Ping(ctx context.Context) error
}
