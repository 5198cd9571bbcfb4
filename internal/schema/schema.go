// Package schema declares the canonical column names of every input
// dataset and validates their presence up front.
package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Canonical column names.
const (
	ServiceDate          = "service_date"
	PhysicianName        = "physician_name"
	PatientID            = "patient_id"
	ProcedureDescription = "procedure_description"
	Insurer              = "insurer"
	NetAmount            = "net_amount"
	SettlementPct        = "settlement_pct"
)

// Derived columns added to output rows.
const (
	GrossAmount   = "gross_amount"
	PeerGroup     = "peer_group"
	Tier          = "tier"
	PaidAmount    = "paid_amount"
	PendingAmount = "pending_amount"
)

// ErrSchema is wrapped by every *Error.
var ErrSchema = errors.New("schema error")

// Error reports the required columns missing from a dataset.
type Error struct {
	Dataset string
	Missing []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s dataset: missing required columns: %s", e.Dataset, strings.Join(e.Missing, ", "))
}

func (e *Error) Unwrap() error {
	return ErrSchema
}

// Kind describes one dataset contract.
type Kind struct {
	Name     string
	Required []string
	Optional []string
}

var (
	// Billing is the per-service billing dataset fed to the compensation engine.
	Billing = Kind{
		Name:     "billing",
		Required: []string{ServiceDate, PhysicianName, NetAmount, SettlementPct},
		Optional: []string{Insurer, ProcedureDescription, PatientID},
	}

	// Expected is the ledger of services that should have been paid.
	Expected = Kind{
		Name:     "expected",
		Required: []string{ServiceDate, PatientID, ProcedureDescription, PhysicianName},
		Optional: []string{Insurer, NetAmount},
	}

	// Paid is the ledger of services actually paid.
	Paid = Kind{
		Name:     "paid",
		Required: []string{ServiceDate, PatientID, ProcedureDescription, PhysicianName, NetAmount},
		Optional: []string{Insurer},
	}
)

// Validate returns an *Error naming every required column of k absent
// from columns, or nil.
func (k Kind) Validate(columns []string) error {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	var missing []string
	for _, c := range k.Required {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &Error{Dataset: k.Name, Missing: missing}
	}
	return nil
}

// Has reports whether col is either required or optional for k.
func (k Kind) Has(col string) bool {
	for _, c := range k.Required {
		if c == col {
			return true
		}
	}
	for _, c := range k.Optional {
		if c == col {
			return true
		}
	}
	return false
}
