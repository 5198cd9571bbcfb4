package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/revshare/internal/exitcode"
	"github.com/gyeh/revshare/internal/pipeline"
	"github.com/gyeh/revshare/internal/report"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Match expected services against the paid ledger",
	RunE:  runReconcile,
}

func init() {
	f := reconcileCmd.Flags()
	f.StringVar(&cfg.ExpectedPath, "expected", "", "Expected-services ledger (required)")
	f.StringVar(&cfg.PaidPath, "paid", "", "Paid ledger (required)")
	f.StringVar(&cfg.WorkbookOut, "xlsx", "", "Write matched, unmatched and rollup sheets here")
	f.StringVar(&cfg.ParquetOut, "parquet", "", "Write one row per expected service as Parquet here")
	f.BoolVar(&cfg.Persist, "persist", false, "Store the run in Postgres")
	f.BoolVar(&cfg.Quiet, "quiet", false, "Do not print the summary")
	_ = reconcileCmd.MarkFlagRequired("expected")
	_ = reconcileCmd.MarkFlagRequired("paid")
	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	log := setup()
	ctx := context.Background()

	if err := cfg.ValidateReconciliation(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	d, cleanup := deps(ctx, log)
	defer cleanup()

	out, err := pipeline.RunReconciliation(ctx, log, &cfg, d)
	if err != nil {
		exitForPipeline(log, "reconciliation", err)
	}
	if !cfg.Quiet {
		report.PrintReconciliation(cmd.OutOrStdout(), out.Result)
	}
	return nil
}
