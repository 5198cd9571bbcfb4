package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/revshare/internal/compensation"
	"github.com/gyeh/revshare/internal/model"
	"github.com/gyeh/revshare/internal/normalize"
	"github.com/gyeh/revshare/internal/schema"
)

// Inspection is a dry-run report on one dataset: nothing is computed,
// written or stored.
type Inspection struct {
	URI     string
	SHA256  string
	Bytes   int64
	Kind    schema.Kind
	Rows    int
	Columns []string
	// SchemaErr is the *schema.Error when required columns are missing.
	SchemaErr error
	// Quality and the date span are filled for billing datasets only.
	Quality    model.DataQuality
	Physicians []string
	FirstDate  *time.Time
	LastDate   *time.Time
}

// KindByName resolves "billing", "expected" or "paid".
func KindByName(name string) (schema.Kind, error) {
	for _, k := range []schema.Kind{schema.Billing, schema.Expected, schema.Paid} {
		if k.Name == name {
			return k, nil
		}
	}
	return schema.Kind{}, fmt.Errorf("unknown dataset kind %q (want billing, expected or paid)", name)
}

// Inspect loads uri and reports its schema and, for billing data, its
// data-quality counts. A schema mismatch is reported in the result, not
// returned as an error.
func Inspect(ctx context.Context, log zerolog.Logger, uri string, kind schema.Kind, aliases schema.Aliases, deps Deps) (*Inspection, error) {
	deps = deps.withDefaults()
	in, err := loadTable(ctx, log, deps, uri, aliases)
	if err != nil {
		return nil, fail(PhaseLoad, err)
	}
	out := &Inspection{
		URI:     uri,
		SHA256:  in.sha,
		Bytes:   in.bytes,
		Kind:    kind,
		Rows:    in.table.Len(),
		Columns: in.table.Columns,
	}
	if err := kind.Validate(in.table.Columns); err != nil {
		var se *schema.Error
		if !errors.As(err, &se) {
			return nil, fail(PhaseValidate, err)
		}
		out.SchemaErr = err
		return out, nil
	}
	if kind.Name == schema.Billing.Name {
		records, quality := normalize.Normalize(in.table, deps.Registry)
		out.Quality = quality
		out.Physicians = compensation.Physicians(records)
		out.FirstDate, out.LastDate = compensation.DateSpan(records)
		logQuality(log, quality)
	}
	return out, nil
}
