package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyeh/revshare/internal/exitcode"
	"github.com/gyeh/revshare/internal/normalize"
	"github.com/gyeh/revshare/internal/pipeline"
)

var (
	inspectPath string
	inspectKind string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Dry-run schema and data-quality check (no writes)",
	RunE:  runInspect,
}

func init() {
	f := inspectCmd.Flags()
	f.StringVar(&inspectPath, "file", "", "Dataset to inspect (required)")
	f.StringVar(&inspectKind, "kind", "billing", "Dataset kind: billing, expected or paid")
	_ = inspectCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	log := setup()
	ctx := context.Background()

	kind, err := pipeline.KindByName(inspectKind)
	if err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	d, cleanup := deps(ctx, log)
	defer cleanup()

	ins, err := pipeline.Inspect(ctx, log, inspectPath, kind, cfg.Aliases(), d)
	if err != nil {
		exitForPipeline(log, "inspect", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "=== revshare inspect ===")
	fmt.Fprintf(w, "File:     %s\n", ins.URI)
	fmt.Fprintf(w, "SHA-256:  %s (%d bytes)\n", ins.SHA256, ins.Bytes)
	fmt.Fprintf(w, "Kind:     %s\n", ins.Kind.Name)
	fmt.Fprintf(w, "Rows:     %d\n", ins.Rows)
	fmt.Fprintf(w, "Columns:  %s\n", strings.Join(ins.Columns, ", "))
	if ins.SchemaErr != nil {
		fmt.Fprintf(w, "Schema validation: FAILED (%v)\n", ins.SchemaErr)
		os.Exit(exitcode.SchemaError)
	}
	if ins.Kind.Name == "billing" {
		q := ins.Quality
		fmt.Fprintf(w, "Window:   %s .. %s\n", normalize.FormatDate(ins.FirstDate), normalize.FormatDate(ins.LastDate))
		fmt.Fprintf(w, "Physicians (%d): %s\n", len(ins.Physicians), strings.Join(ins.Physicians, "; "))
		fmt.Fprintf(w, "Bad dates: %d  bad amounts: %d  bad percentages: %d  unknown physicians: %d\n",
			q.BadDates, q.BadAmounts, q.BadPercentages, q.UnknownPhysicians)
	}
	fmt.Fprintln(w, "Schema validation: OK")
	return nil
}
