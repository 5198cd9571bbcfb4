// Package pipeline wires loading, validation, the core engines, export
// and persistence into the two end-to-end runs.
package pipeline

import (
	"context"
	"fmt"

	"github.com/gyeh/revshare/internal/model"
	"github.com/gyeh/revshare/internal/registry"
	"github.com/gyeh/revshare/internal/source"
)

// Pipeline phases.
const (
	PhaseLoad      = "load"
	PhaseValidate  = "validate"
	PhaseNormalize = "normalize"
	PhaseCompute   = "compute"
	PhaseMatch     = "match"
	PhaseExport    = "export"
	PhaseStore     = "store"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func fail(phase string, err error) error {
	return &PipelineError{Phase: phase, Err: err}
}

// RunStore persists finished runs. *db.Store satisfies it.
type RunStore interface {
	SaveCompensationRun(ctx context.Context, sum *model.RunSummary, results []model.CompensationRow, groups []model.PeerGroupRow) error
	SaveReconciliationRun(ctx context.Context, sum *model.RunSummary, rows []model.ReconciliationRow) error
}

// Deps are the collaborators a run needs. Registry defaults to the
// built-in one, Sources to a zero Resolver; a nil Store skips persistence.
type Deps struct {
	Registry *registry.Registry
	Sources  *source.Resolver
	Store    RunStore
}

func (d Deps) withDefaults() Deps {
	if d.Registry == nil {
		d.Registry = registry.Default()
	}
	if d.Sources == nil {
		d.Sources = &source.Resolver{}
	}
	return d
}
