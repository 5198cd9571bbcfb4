package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/revshare/internal/compensation"
	"github.com/gyeh/revshare/internal/exitcode"
	"github.com/gyeh/revshare/internal/normalize"
	"github.com/gyeh/revshare/internal/pipeline"
	"github.com/gyeh/revshare/internal/report"
)

var explain bool

var compensationCmd = &cobra.Command{
	Use:   "compensation",
	Short: "Compute each physician's revenue split against their peer group",
	RunE:  runCompensation,
}

func init() {
	f := compensationCmd.Flags()
	f.StringVar(&cfg.BillingPath, "billing", "", "Billing dataset: .csv, .csv.gz, .xlsx or .parquet, local or s3:// (required)")
	f.StringVar(&cfg.From, "from", "", "First service date to include")
	f.StringVar(&cfg.To, "to", "", "Last service date to include")
	f.StringVar(&cfg.Physician, "physician", "", "Report a single physician")
	f.StringVar(&cfg.WorkbookOut, "xlsx", "", "Write the report workbook here")
	f.StringVar(&cfg.ParquetOut, "parquet", "", "Write per-physician results as Parquet here")
	f.BoolVar(&cfg.Persist, "persist", false, "Store the run in Postgres")
	f.BoolVar(&cfg.Quiet, "quiet", false, "Do not print the summary table")
	f.BoolVar(&explain, "explain", false, "Print how each physician's percentage was reached")
	_ = compensationCmd.MarkFlagRequired("billing")
	rootCmd.AddCommand(compensationCmd)
}

func runCompensation(cmd *cobra.Command, args []string) error {
	log := setup()
	ctx := context.Background()

	if err := cfg.ValidateCompensation(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	d, cleanup := deps(ctx, log)
	defer cleanup()

	out, err := pipeline.RunCompensation(ctx, log, &cfg, d)
	if err != nil {
		exitForPipeline(log, "compensation", err)
	}

	if !cfg.Quiet {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Window: %s .. %s (%d services)\n",
			normalize.FormatDate(out.FirstDate), normalize.FormatDate(out.LastDate), len(out.Records))
		report.PrintCompensation(w, out.Report)
		if explain {
			for _, res := range out.Report.Results {
				avg, _ := out.Report.PeerGroup(res.PeerGroup)
				fmt.Fprintln(w)
				fmt.Fprint(w, compensation.Explain(res, avg))
			}
		}
	}
	if q := out.Summary.Quality; q.Issues() > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Data quality: %d bad dates, %d bad amounts, %d bad percentages, %d unknown physicians\n",
			q.BadDates, q.BadAmounts, q.BadPercentages, q.UnknownPhysicians)
	}
	return nil
}
