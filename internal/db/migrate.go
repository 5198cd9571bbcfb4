package db

import (
	"context"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/gyeh/revshare/internal/sql"
)

// ApplyMigrations executes every embedded .sql file in filename order,
// each in its own transaction, and returns the names applied. The DDL is
// written with IF NOT EXISTS, so reapplying is a no-op.
func ApplyMigrations(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) ([]string, error) {
	names, err := migrationNames()
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		start := time.Now()
		data, err := fs.ReadFile(embedsql.Migrations, "migrations/"+name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		if err := execInTx(ctx, pool, string(data)); err != nil {
			return nil, fmt.Errorf("migration %s: %w", name, err)
		}
		log.Debug().Str("migration", name).Dur("duration", time.Since(start)).Msg("migration applied")
	}

	log.Info().Int("count", len(names)).Msg("schema up to date")
	return names, nil
}

func migrationNames() ([]string, error) {
	entries, err := fs.ReadDir(embedsql.Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

func execInTx(ctx context.Context, pool *pgxpool.Pool, ddl string) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)
	if _, err := tx.Exec(ctx, ddl); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
