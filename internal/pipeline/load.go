package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gyeh/revshare/internal/model"
	"github.com/gyeh/revshare/internal/normalize"
	"github.com/gyeh/revshare/internal/schema"
	"github.com/gyeh/revshare/internal/tabular"
)

type loaded struct {
	uri   string
	sha   string
	bytes int64
	table *model.Table
}

// loadTable fetches uri, hashes it and reads it into a table.
func loadTable(ctx context.Context, log zerolog.Logger, deps Deps, uri string, aliases schema.Aliases) (*loaded, error) {
	path, cleanup, err := deps.Sources.Fetch(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	fp, err := normalize.FingerprintFile(path)
	if err != nil {
		return nil, err
	}
	tbl, err := tabular.Open(path, aliases)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", uri, err)
	}
	log.Info().
		Str("input", uri).
		Str("sha256", fp.SHA256).
		Int64("bytes", fp.Bytes).
		Int("rows", tbl.Len()).
		Strs("columns", tbl.Columns).
		Msg("dataset loaded")
	return &loaded{uri: uri, sha: fp.SHA256, bytes: fp.Bytes, table: tbl}, nil
}

func logQuality(log zerolog.Logger, q model.DataQuality) {
	if q.Issues() == 0 {
		return
	}
	log.Warn().
		Int("rows", q.Rows).
		Int("bad_dates", q.BadDates).
		Int("bad_amounts", q.BadAmounts).
		Int("bad_percentages", q.BadPercentages).
		Int("unknown_physicians", q.UnknownPhysicians).
		Msg("data quality issues absorbed")
}
