package reconcile

import (
	"github.com/gyeh/revshare/internal/model"
	"github.com/gyeh/revshare/internal/normalize"
	"github.com/gyeh/revshare/internal/schema"
)

// Canonicalize normalizes a physician name so that "FALLONE, JAN",
// "JAN FALLONE" and "fallone jan" compare equal.
func Canonicalize(name string) string {
	return normalize.CanonicalName(name)
}

// KeyFor builds the composite identity of a row. A service date that does
// not parse becomes the NaT fragment, so two unparsable dates with equal
// remaining fields produce equal keys.
func KeyFor(row model.Row) model.MatchKey {
	return model.MatchKey{
		ServiceDate: normalize.FormatDate(normalize.ParseDate(row.Get(schema.ServiceDate))),
		PatientID:   normalize.KeyField(row.Get(schema.PatientID)),
		Procedure:   normalize.KeyField(row.Get(schema.ProcedureDescription)),
		Physician:   Canonicalize(row.Get(schema.PhysicianName)),
	}
}
