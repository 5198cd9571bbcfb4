package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/revshare/internal/config"
	"github.com/gyeh/revshare/internal/model"
	"github.com/gyeh/revshare/internal/normalize"
	"github.com/gyeh/revshare/internal/reconcile"
	"github.com/gyeh/revshare/internal/report"
)

// ReconciliationOutcome is the result of a reconciliation run.
type ReconciliationOutcome struct {
	Summary *model.RunSummary
	Result  *model.ReconciliationResult
	// Columns is the expected ledger's column order.
	Columns []string
}

// RunReconciliation executes load → validate → match → export → store
// for the expected and paid ledgers in cfg.
func RunReconciliation(ctx context.Context, log zerolog.Logger, cfg *config.Config, deps Deps) (*ReconciliationOutcome, error) {
	deps = deps.withDefaults()
	totalStart := time.Now()
	sum := &model.RunSummary{RunID: uuid.New(), Kind: model.RunReconciliation}
	log = log.With().Str("run_id", sum.RunID.String()).Logger()

	// Phase 1: Load
	aliases := cfg.Aliases()
	expected, err := loadTable(ctx, log, deps, cfg.ExpectedPath, aliases)
	if err != nil {
		return nil, fail(PhaseLoad, err)
	}
	expected.table.Name = "expected"
	paid, err := loadTable(ctx, log, deps, cfg.PaidPath, aliases)
	if err != nil {
		return nil, fail(PhaseLoad, err)
	}
	paid.table.Name = "paid"
	sum.InputPaths = []string{expected.uri, paid.uri}
	sum.InputSHA256 = []string{expected.sha, paid.sha}
	sum.RowsRead = int64(expected.table.Len() + paid.table.Len())
	sum.RowsAnalyzed = int64(expected.table.Len())
	sum.DurationLoad = time.Since(totalStart)

	// Phase 2: Validate
	if err := reconcile.Validate(expected.table, paid.table); err != nil {
		return nil, fail(PhaseValidate, err)
	}

	// Phase 3: Match
	coreStart := time.Now()
	res, err := reconcile.NewMatcher(log).Match(expected.table, paid.table)
	if err != nil {
		return nil, fail(PhaseMatch, err)
	}
	sum.Quality = model.DataQuality{Rows: expected.table.Len(), BadDates: res.UnparsableDateRows}
	sum.DurationCore = time.Since(coreStart)

	out := &ReconciliationOutcome{Summary: sum, Result: res, Columns: expected.table.Columns}

	// Phase 4: Export
	exportStart := time.Now()
	if err := writeOutput(ctx, log, deps, cfg.WorkbookOut, func(path string) error {
		return report.WriteWorkbook(path, report.ReconciliationSheets(out.Columns, res)...)
	}); err != nil {
		return nil, fail(PhaseExport, err)
	}
	if err := writeOutput(ctx, log, deps, cfg.ParquetOut, func(path string) error {
		return report.WriteReconciliationParquet(path, sum.RunID, res)
	}); err != nil {
		return nil, fail(PhaseExport, err)
	}
	sum.DurationExport = time.Since(exportStart)

	// Phase 5: Store
	if deps.Store != nil {
		storeStart := time.Now()
		if err := deps.Store.SaveReconciliationRun(ctx, sum, normalize.ToReconciliationRows(sum.RunID, res)); err != nil {
			return nil, fail(PhaseStore, err)
		}
		sum.DurationStore = time.Since(storeStart)
	}

	sum.DurationTotal = time.Since(totalStart)
	log.Info().
		Int("expected", res.Total()).
		Int("matched", len(res.Matched)).
		Int("unmatched", len(res.Unmatched)).
		Str("total_duration", sum.DurationTotal.String()).
		Msg("reconciliation pipeline complete")
	return out, nil
}
