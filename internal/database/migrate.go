package database

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// gooseLogger routes goose output through slog.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) {
	slog.Info("migrate: " + fmt.Sprintf(format, v...))
}

func (gooseLogger) Fatalf(format string, v ...any) {
	slog.Error("migrate: " + fmt.Sprintf(format, v...))
}

// Migrate applies every pending embedded migration.
func (db *DB) Migrate(ctx context.Context) error {
	if db == nil || db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	slog.Info("database schema ensured", "version", version)
	return nil
}
