package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyeh/revshare/internal/db"
	"github.com/gyeh/revshare/internal/exitcode"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored runs, newest first",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum runs to list")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	log := setup()
	ctx := context.Background()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	runs, err := db.NewStore(pool, log).ListRuns(ctx, runsLimit)
	if err != nil {
		log.Error().Err(err).Msg("list runs failed")
		os.Exit(exitcode.StoreError)
	}

	w := cmd.OutOrStdout()
	for _, r := range runs {
		fmt.Fprintf(w, "%s  %-14s %-9s %s  rows=%d/%d  %s\n",
			r.RunID, r.Kind, r.Status, r.StartedAt.Format(time.RFC3339),
			r.RowsAnalyzed, r.RowsRead, strings.Join(r.InputPaths, ","))
	}
	return nil
}
