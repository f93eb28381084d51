package snapshot

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate применяет встроенные миграции PostgreSQL
func Migrate(ctx context.Context, db *sql.DB, log Logger) error {
	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%w: set dialect: %v", ErrMigrate, err)
	}

	log.Info("Applying database migrations...")
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("%w: %v", ErrMigrate, err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("%w: get version: %v", ErrMigrate, err)
	}
	log.Info("Migrations applied, schema version %d", version)
	return nil
}
