package main

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/revshare/internal/config"
	"github.com/gyeh/revshare/internal/db"
	"github.com/gyeh/revshare/internal/exitcode"
	"github.com/gyeh/revshare/internal/logging"
	"github.com/gyeh/revshare/internal/pipeline"
	"github.com/gyeh/revshare/internal/schema"
	"github.com/gyeh/revshare/internal/source"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "revshare",
	Short: "Physician revenue-share analytics and billing reconciliation",
	Long: "Computes each physician's share of billed revenue against their peer group's average " +
		"and reconciles expected services against the paid ledger.",
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv(config.DSNEnv), "Postgres connection string (or set "+config.DSNEnv+")")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn or error")
	pf.StringVar(&cfg.ConfigPath, "config", "", "YAML file with physicians, column_aliases and rates")
	pf.StringVar(&cfg.AWSRegion, "aws-region", os.Getenv("AWS_REGION"), "Region for s3:// inputs and outputs")
}

// setup builds the logger and merges the config file. It exits on failure.
func setup() zerolog.Logger {
	level, err := logging.ParseLevel(cfg.LogLevel)
	log := logging.New(os.Stderr, cfg.LogFormat, level)
	if err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	if cfg.ConfigPath != "" {
		if err := cfg.LoadFromFile(cfg.ConfigPath); err != nil {
			log.Error().Err(err).Str("config", cfg.ConfigPath).Msg("config file invalid")
			os.Exit(exitcode.UsageError)
		}
	}
	return log
}

// deps resolves the registry and, with --persist, the database store.
// The returned cleanup closes the pool.
func deps(ctx context.Context, log zerolog.Logger) (pipeline.Deps, func()) {
	reg, err := cfg.Registry()
	if err != nil {
		log.Error().Err(err).Msg("physician registry invalid")
		os.Exit(exitcode.UsageError)
	}
	d := pipeline.Deps{
		Registry: reg,
		Sources:  &source.Resolver{Region: cfg.AWSRegion},
	}
	if !cfg.Persist {
		return d, func() {}
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	d.Store = db.NewStore(pool, log)
	return d, pool.Close
}

// exitForPipeline logs err and exits with the code for its phase.
func exitForPipeline(log zerolog.Logger, what string, err error) {
	var pe *pipeline.PipelineError
	if !errors.As(err, &pe) {
		log.Error().Err(err).Msg(what + " failed")
		os.Exit(exitcode.ValidationError)
	}

	evt := log.Error().Err(pe.Err).Str("phase", pe.Phase)
	var se *schema.Error
	if errors.As(err, &se) {
		evt = evt.Str("dataset", se.Dataset).Strs("missing", se.Missing)
	}
	evt.Msg(what + " failed")

	switch {
	case errors.Is(err, schema.ErrSchema):
		os.Exit(exitcode.SchemaError)
	case pe.Phase == pipeline.PhaseExport:
		os.Exit(exitcode.ExportError)
	case pe.Phase == pipeline.PhaseStore:
		os.Exit(exitcode.StoreError)
	default:
		os.Exit(exitcode.ValidationError)
	}
}
