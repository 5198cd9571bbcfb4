package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyeh/revshare/internal/api"
	"github.com/gyeh/revshare/internal/exitcode"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the compensation and reconciliation endpoints over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&cfg.ListenAddr, "addr", ":8080", "Listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := setup()

	reg, err := cfg.Registry()
	if err != nil {
		log.Error().Err(err).Msg("physician registry invalid")
		os.Exit(exitcode.UsageError)
	}
	rates, err := cfg.Rates()
	if err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	e := api.NewServer(api.NewHandler(reg, cfg.Aliases(), rates, log), log)

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Int("physicians", reg.Len()).Msg("starting server")
		if err := e.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			os.Exit(exitcode.ServeError)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		os.Exit(exitcode.ServeError)
	}
	log.Info().Msg("server stopped")
	return nil
}
