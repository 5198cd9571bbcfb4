package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/revshare/internal/compensation"
	"github.com/gyeh/revshare/internal/config"
	"github.com/gyeh/revshare/internal/model"
	"github.com/gyeh/revshare/internal/normalize"
	"github.com/gyeh/revshare/internal/report"
	"github.com/gyeh/revshare/internal/schema"
)

// CompensationOutcome is the result of a compensation run.
type CompensationOutcome struct {
	Summary    *model.RunSummary
	Report     compensation.Report
	Procedures map[string][]model.ProcedureSummary
	// Columns is the billing dataset's column order.
	Columns []string
	// Records is the analysis window after the date filter.
	Records   []model.ServiceRecord
	FirstDate *time.Time
	LastDate  *time.Time
}

// RunCompensation executes load → validate → normalize → filter →
// compute → export → store for the billing dataset in cfg.
//
// Peer averages are computed over the date-filtered window. A physician
// filter narrows the reported results only, so the comparison baseline
// does not change with it.
func RunCompensation(ctx context.Context, log zerolog.Logger, cfg *config.Config, deps Deps) (*CompensationOutcome, error) {
	deps = deps.withDefaults()
	totalStart := time.Now()
	sum := &model.RunSummary{RunID: uuid.New(), Kind: model.RunCompensation}
	log = log.With().Str("run_id", sum.RunID.String()).Logger()

	// Phase 1: Load
	in, err := loadTable(ctx, log, deps, cfg.BillingPath, cfg.Aliases())
	if err != nil {
		return nil, fail(PhaseLoad, err)
	}
	sum.InputPaths = []string{in.uri}
	sum.InputSHA256 = []string{in.sha}
	sum.RowsRead = int64(in.table.Len())
	sum.DurationLoad = time.Since(totalStart)

	// Phase 2: Validate
	if err := schema.Billing.Validate(in.table.Columns); err != nil {
		return nil, fail(PhaseValidate, err)
	}

	// Phase 3: Normalize
	coreStart := time.Now()
	records, quality := normalize.Normalize(in.table, deps.Registry)
	sum.Quality = quality
	logQuality(log, quality)

	filter, err := cfg.Filter()
	if err != nil {
		return nil, fail(PhaseNormalize, err)
	}
	sum.FilterFrom, sum.FilterTo = filter.From, filter.To
	records = filter.Apply(records)
	sum.RowsAnalyzed = int64(len(records))
	if filter.Active() {
		log.Info().
			Int("rows", len(records)).
			Int("excluded", int(sum.RowsRead)-len(records)).
			Msg("date filter applied")
	}

	// Phase 4: Compute
	rates, err := cfg.Rates()
	if err != nil {
		return nil, fail(PhaseCompute, err)
	}
	rep := rates.ComputeAll(records)
	if cfg.Physician != "" {
		res, ok := rep.For(cfg.Physician)
		if !ok {
			return nil, fail(PhaseCompute, fmt.Errorf("physician %q has no records in the selected window", cfg.Physician))
		}
		rep.Results = []model.CompensationResult{res}
	}

	out := &CompensationOutcome{
		Summary:    sum,
		Report:     rep,
		Procedures: make(map[string][]model.ProcedureSummary, len(rep.Results)),
		Columns:    in.table.Columns,
		Records:    records,
	}
	out.FirstDate, out.LastDate = compensation.DateSpan(records)
	for _, res := range rep.Results {
		out.Procedures[res.Physician] = compensation.Procedures(compensation.ForPhysician(records, res.Physician))
	}
	sum.DurationCore = time.Since(coreStart)
	log.Info().
		Int("physicians", len(rep.Results)).
		Int("peer_groups", len(rep.PeerGroups)).
		Dur("duration", sum.DurationCore).
		Msg("compensation computed")

	// Phase 5: Export
	exportStart := time.Now()
	if err := writeOutput(ctx, log, deps, cfg.WorkbookOut, func(path string) error {
		return report.WriteWorkbook(path, report.CompensationSheets(rep, out.Columns, out.Records, out.Procedures)...)
	}); err != nil {
		return nil, fail(PhaseExport, err)
	}
	if err := writeOutput(ctx, log, deps, cfg.ParquetOut, func(path string) error {
		return report.WriteCompensationParquet(path, sum.RunID, rep)
	}); err != nil {
		return nil, fail(PhaseExport, err)
	}
	sum.DurationExport = time.Since(exportStart)

	// Phase 6: Store
	if deps.Store != nil {
		storeStart := time.Now()
		results := make([]model.CompensationRow, len(rep.Results))
		for i, r := range rep.Results {
			results[i] = normalize.ToCompensationRow(sum.RunID, r)
		}
		groups := make([]model.PeerGroupRow, len(rep.PeerGroups))
		for i, g := range rep.PeerGroups {
			groups[i] = normalize.ToPeerGroupRow(sum.RunID, g)
		}
		if err := deps.Store.SaveCompensationRun(ctx, sum, results, groups); err != nil {
			return nil, fail(PhaseStore, err)
		}
		sum.DurationStore = time.Since(storeStart)
	}

	sum.DurationTotal = time.Since(totalStart)
	log.Info().
		Int64("rows_read", sum.RowsRead).
		Int64("rows_analyzed", sum.RowsAnalyzed).
		Str("total_duration", sum.DurationTotal.String()).
		Msg("compensation pipeline complete")
	return out, nil
}
