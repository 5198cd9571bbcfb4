package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// KeyDelimiter separates the fields of a composite match key.
const KeyDelimiter = "|"

// NaT is the date fragment used when a service date cannot be parsed.
const NaT = "NaT"

// MatchKey is the normalized identity of a service across ledgers.
type MatchKey struct {
	ServiceDate string
	PatientID   string
	Procedure   string
	Physician   string
}

func (k MatchKey) String() string {
	return strings.Join([]string{k.ServiceDate, k.PatientID, k.Procedure, k.Physician}, KeyDelimiter)
}

// ReconciledRow is an expected service found in the paid ledger.
type ReconciledRow struct {
	SourceRow  int              `json:"source_row"`
	Row        Row              `json:"row"`
	Key        string           `json:"key"`
	PaidAmount *decimal.Decimal `json:"paid_amount"`
}

// PendingRow is an expected service absent from the paid ledger.
// PendingAmount is always zero.
type PendingRow struct {
	SourceRow     int             `json:"source_row"`
	Row           Row             `json:"row"`
	Key           string          `json:"key"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
}

// Rollup summarizes match status for one physician or insurer.
type Rollup struct {
	Name           string          `json:"name"`
	TotalExpected  int             `json:"total_expected"`
	TotalMatched   int             `json:"total_matched"`
	TotalUnmatched int             `json:"total_unmatched"`
	MatchRate      float64         `json:"match_rate"`
	PaidTotal      decimal.Decimal `json:"paid_total"`
}

// DuplicateKey records a paid-side key shared by more than one paid row.
// The first row (by source order) supplies the paid amount.
type DuplicateKey struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// ReconciliationResult partitions the expected ledger into paid and pending.
type ReconciliationResult struct {
	Matched            []ReconciledRow `json:"matched"`
	Unmatched          []PendingRow    `json:"unmatched"`
	ByPhysician        []Rollup        `json:"by_physician"`
	ByInsurer          []Rollup        `json:"by_insurer"`
	DuplicatePaidKeys  []DuplicateKey  `json:"duplicate_paid_keys,omitempty"`
	UnparsableDateRows int             `json:"unparsable_date_rows"`
}

// Total returns the number of classified expected rows.
func (r *ReconciliationResult) Total() int {
	return len(r.Matched) + len(r.Unmatched)
}
