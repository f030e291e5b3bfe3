package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

// MigrationsDir is the directory inside Migrations holding the goose SQL files.
const MigrationsDir = "migrations"

// MigrationTableName is the name of the table used by goose to track migrations.
const MigrationTableName = "schema_migrations"

// MigrationCommands lists the goose commands accepted by RunMigrations.
var MigrationCommands = []string{"up", "down", "reset", "status", "version"}

// Migrations holds the schema migrations, embedded so the server binary can
// apply them without the source tree.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// goose keeps its settings in package globals.
var gooseMu sync.Mutex

// RunMigrations executes a goose command against db using the embedded
// migrations. A nil logger keeps goose's own output.
func RunMigrations(ctx context.Context, db *sql.DB, command string, logger goose.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if logger != nil {
		goose.SetLogger(logger)
	}
	goose.SetBaseFS(Migrations)
	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	var err error
	switch command {
	case "up":
		err = goose.UpContext(ctx, db, MigrationsDir)
	case "down":
		err = goose.DownContext(ctx, db, MigrationsDir)
	case "reset":
		err = goose.ResetContext(ctx, db, MigrationsDir)
	case "status":
		err = goose.StatusContext(ctx, db, MigrationsDir)
	case "version":
		err = goose.VersionContext(ctx, db, MigrationsDir)
	default:
		return fmt.Errorf(
			"unknown migration command: %s (expected one of %v)",
			command,
			MigrationCommands,
		)
	}
	if err != nil {
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	return nil
}
