package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/revshare/internal/model"
	embedsql "github.com/gyeh/revshare/internal/sql"
)

// Store persists completed runs.
type Store struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewStore wraps an open pool.
func NewStore(pool *pgxpool.Pool, log zerolog.Logger) *Store {
	return &Store{pool: pool, log: log}
}

// SaveCompensationRun records the run and COPYs its per-physician and
// per-peer-group rows in one transaction.
func (s *Store) SaveCompensationRun(ctx context.Context, sum *model.RunSummary, results []model.CompensationRow, groups []model.PeerGroupRow) error {
	return s.saveRun(ctx, sum, func(tx pgx.Tx) error {
		n, err := tx.CopyFrom(ctx,
			pgx.Identifier{"revshare", "compensation_results"},
			model.CompensationColumns(),
			NewSliceSource(withRunID(results, sum.RunID, func(r *model.CompensationRow, id uuid.UUID) { r.RunID = id })),
		)
		if err != nil {
			return fmt.Errorf("copy compensation_results: %w", err)
		}
		s.log.Info().Int64("rows", n).Msg("compensation results stored")

		n, err = tx.CopyFrom(ctx,
			pgx.Identifier{"revshare", "peer_group_averages"},
			model.PeerGroupColumns(),
			NewSliceSource(withRunID(groups, sum.RunID, func(r *model.PeerGroupRow, id uuid.UUID) { r.RunID = id })),
		)
		if err != nil {
			return fmt.Errorf("copy peer_group_averages: %w", err)
		}
		s.log.Info().Int64("rows", n).Msg("peer group averages stored")
		return nil
	})
}

// SaveReconciliationRun records the run and COPYs one row per expected
// service.
func (s *Store) SaveReconciliationRun(ctx context.Context, sum *model.RunSummary, rows []model.ReconciliationRow) error {
	return s.saveRun(ctx, sum, func(tx pgx.Tx) error {
		n, err := tx.CopyFrom(ctx,
			pgx.Identifier{"revshare", "reconciliation_rows"},
			model.ReconciliationColumns(),
			NewSliceSource(withRunID(rows, sum.RunID, func(r *model.ReconciliationRow, id uuid.UUID) { r.RunID = id })),
		)
		if err != nil {
			return fmt.Errorf("copy reconciliation_rows: %w", err)
		}
		s.log.Info().Int64("rows", n).Msg("reconciliation rows stored")
		return nil
	})
}

// saveRun registers the run outside the transaction so a failed save
// leaves a 'failed' row behind instead of nothing.
func (s *Store) saveRun(ctx context.Context, sum *model.RunSummary, copyRows func(pgx.Tx) error) error {
	if _, err := s.pool.Exec(ctx, embedsql.InsertRun,
		sum.RunID, sum.Kind, sum.InputPaths, sum.InputSHA256, sum.FilterFrom, sum.FilterTo,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if err := s.saveRows(ctx, sum, copyRows); err != nil {
		s.markFailed(sum.RunID, err)
		return err
	}

	s.log.Info().
		Str("run_id", sum.RunID.String()).
		Str("kind", sum.Kind).
		Msg("run stored")
	return nil
}

func (s *Store) saveRows(ctx context.Context, sum *model.RunSummary, copyRows func(pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := copyRows(tx); err != nil {
		return err
	}

	q := sum.Quality
	if _, err := tx.Exec(ctx, embedsql.CompleteRun,
		sum.RunID, sum.RowsRead, sum.RowsAnalyzed,
		q.BadDates, q.BadAmounts, q.BadPercentages, q.UnknownPhysicians,
	); err != nil {
		return fmt.Errorf("complete run: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// markFailed runs on a fresh context: the caller's may already be canceled.
func (s *Store) markFailed(runID uuid.UUID, cause error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := s.pool.Exec(ctx, embedsql.FailRun, runID); err != nil {
		s.log.Error().Err(err).Str("run_id", runID.String()).Msg("mark run failed")
		return
	}
	s.log.Warn().Err(cause).Str("run_id", runID.String()).Msg("run marked failed")
}

// RunInfo is one row of the runs listing.
type RunInfo struct {
	RunID        uuid.UUID
	Kind         string
	Status       string
	InputPaths   []string
	RowsRead     int64
	RowsAnalyzed int64
	StartedAt    time.Time
	FinishedAt   *time.Time
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunInfo, error) {
	rows, err := s.pool.Query(ctx, embedsql.ListRuns, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunInfo
	for rows.Next() {
		var r RunInfo
		if err := rows.Scan(&r.RunID, &r.Kind, &r.Status, &r.InputPaths, &r.RowsRead, &r.RowsAnalyzed, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// withRunID returns a copy of rows stamped with id.
func withRunID[T any](rows []T, id uuid.UUID, set func(*T, uuid.UUID)) []T {
	out := make([]T, len(rows))
	copy(out, rows)
	for i := range out {
		set(&out[i], id)
	}
	return out
}
