package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gyeh/revshare/internal/source"
)

// writeOutput writes an output through write to a local path for uri and
// publishes it when uri is remote. An empty uri is skipped.
func writeOutput(ctx context.Context, log zerolog.Logger, deps Deps, uri string, write func(path string) error) error {
	if uri == "" {
		return nil
	}
	local, cleanup, err := source.LocalTarget(uri)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := write(local); err != nil {
		return fmt.Errorf("write %s: %w", uri, err)
	}
	if err := deps.Sources.Publish(ctx, local, uri); err != nil {
		return err
	}
	log.Info().Str("output", uri).Msg("output written")
	return nil
}
