package model

import (
	"time"

	"github.com/google/uuid"
)

// DataQuality counts row-scoped problems absorbed during normalization.
// None of them abort a batch.
type DataQuality struct {
	Rows              int `json:"rows"`
	BadDates          int `json:"bad_dates"`
	BadAmounts        int `json:"bad_amounts"`
	BadPercentages    int `json:"bad_percentages"`
	UnknownPhysicians int `json:"unknown_physicians"`
}

// Issues returns the total number of degraded fields and lookup misses.
func (q DataQuality) Issues() int {
	return q.BadDates + q.BadAmounts + q.BadPercentages + q.UnknownPhysicians
}

// RunSummary captures metrics from a single compensation or reconciliation run.
type RunSummary struct {
	RunID          uuid.UUID
	Kind           string
	InputPaths     []string
	InputSHA256    []string
	FilterFrom     *time.Time
	FilterTo       *time.Time
	RowsRead       int64
	RowsAnalyzed   int64
	Quality        DataQuality
	DurationLoad   time.Duration
	DurationCore   time.Duration
	DurationExport time.Duration
	DurationStore  time.Duration
	DurationTotal  time.Duration
}

// Run kinds.
const (
	RunCompensation   = "compensation"
	RunReconciliation = "reconciliation"
)
