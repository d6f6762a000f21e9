package main

import (
	"libraryapi/internal/config"
)

// sourceTreeMigrations is where `create` writes when MIGRATIONS_DIR is unset.
// Files there are embedded into the binaries on the next build.
const sourceTreeMigrations = "internal/platform/database/migrations"

func createDir(cfg config.Config) string {
	if cfg.MigrationsDir != "" {
		return cfg.MigrationsDir
	}
	return sourceTreeMigrations
}
