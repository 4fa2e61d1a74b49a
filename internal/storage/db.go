package storage

import (
	"context"
	"fmt"
	"errors"
	"io/fs"
	"path"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MigrationPool is the minimal interface required to run migrations.
// *pgxpool.Pool satisfies this interface.
type MigrationPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Connect opens a pgxpool connection and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}
	// The catalog is read once at boot; a small pool is enough.
	if cfg.MaxConns > 4 {
		cfg.MaxConns = 4
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating pgxpool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

// RunMigrations applies the catalog schema and seed scripts found at the root of
// fsys, in file-name order. Each script runs in its own transaction and must be
// idempotent: no applied-version table is kept, so every boot replays them all.
func RunMigrations(ctx context.Context, pool MigrationPool, fsys fs.FS) error {
	names, err := catalogScripts(fsys)
	if err != nil {
		return err
	}

	for _, name := range names {
		script, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading catalog migration %s: %w", name, err)
		}
		if err := applyScript(ctx, pool, string(script)); err != nil {
			return fmt.Errorf("applying catalog migration %s: %w", name, err)
		}
	}
	return nil
}

// catalogScripts lists the *.sql files at the root of fsys, sorted by name.
func catalogScripts(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("listing catalog migrations: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && path.Ext(e.Name()) == ".sql" {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

// applyScript runs one migration script atomically. A failed script leaves the
// catalog tables as they were.
func applyScript(ctx context.Context, pool MigrationPool, script string) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("opening migration tx: %w", err)
	}

	if _, err := tx.Exec(ctx, script); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return errors.Join(fmt.Errorf("running script: %w", err), fmt.Errorf("rolling back: %w", rbErr))
		}
		return fmt.Errorf("running script: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing migration tx: %w", err)
	}
	return nil
}
