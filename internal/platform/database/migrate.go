package database

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// EmbeddedDir is the migrations directory inside the embedded filesystem.
const EmbeddedDir = "migrations"

// UseMigrations points goose at the embedded migrations, or at dir on disk
// when dir is non-empty. It returns the directory goose should read from.
func UseMigrations(dir string) (string, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return "", err
	}
	if dir != "" {
		goose.SetBaseFS(nil)
		return dir, nil
	}
	goose.SetBaseFS(embedMigrations)
	return EmbeddedDir, nil
}

// Migrate applies every pending migration through the pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	dir, err := UseMigrations("")
	if err != nil {
		return err
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
