package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type direction string

const (
	up   direction = ".up.sql"
	down direction = ".down.sql"
)

func MigrateUp(ctx context.Context, db *sql.DB) error {
	return applyMigrations(ctx, db, up)
}

// MigrateDown reverts migrations newest first.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	return applyMigrations(ctx, db, down)
}

func applyMigrations(ctx context.Context, db *sql.DB, dir direction) error {
	entries, err := fs.Glob(migrationFiles, "migrations/*"+string(dir))
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(entries)
	if dir == down {
		sort.Sort(sort.Reverse(sort.StringSlice(entries)))
	}
	for _, name := range entries {
		sqlBytes, readErr := migrationFiles.ReadFile(name)
		if readErr != nil {
			return fmt.Errorf("read migration %s: %w", name, readErr)
		}
		if _, execErr := db.ExecContext(ctx, string(sqlBytes)); execErr != nil {
			return fmt.Errorf("apply migration %s: %w", name, execErr)
		}
	}
	return nil
}
