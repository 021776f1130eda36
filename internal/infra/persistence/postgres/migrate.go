package postgres

import (
	"context"
	"database/sql"

	"blog/internal/errors"
	"blog/internal/infra/persistence/migrations"

	"github.com/pressly/goose/v3"
)

// Goose commands exposed by cmd/migrate.
const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
)

// gooseRunContext is a seam for tests.
var gooseRunContext = goose.RunContext

// RunMigrations applies a goose command against the embedded migrations.
func RunMigrations(ctx context.Context, db *sql.DB, command string, args ...string) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "failed to set goose dialect")
	}

	if err := gooseRunContext(ctx, command, db, ".", args...); err != nil {
		return errors.Wrapf(err, "goose %s failed", command)
	}

	return nil
}
