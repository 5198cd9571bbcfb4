package normalize

import (
	"github.com/google/uuid"

	"github.com/gyeh/revshare/internal/model"
	"github.com/gyeh/revshare/internal/schema"
)

// ToCompensationRow converts a CompensationResult into its fixed-point row.
// The facility side is derived from the physician side so both pairs still
// sum exactly after rounding.
func ToCompensationRow(runID uuid.UUID, r model.CompensationResult) model.CompensationRow {
	net := Cents(r.NetTotal)
	share := Cents(r.PhysicianShare)
	bps := PercentToBasisPoints(r.PhysicianPct)
	return model.CompensationRow{
		RunID:               runID,
		Physician:           r.Physician,
		PeerGroup:           r.PeerGroup,
		Tier:                string(r.Tier),
		RecordCount:         int64(r.RecordCount),
		GrossTotalCents:     Cents(r.GrossTotal),
		NetTotalCents:       net,
		PeerAverageCents:    Cents(r.PeerAverage),
		AboveAverage:        r.AboveAverage,
		PhysicianPctBPS:     bps,
		PhysicianShareCents: share,
		FacilityPctBPS:      10000 - bps,
		FacilityShareCents:  net - share,
	}
}

// ToPeerGroupRow converts a PeerGroupAverage into its fixed-point row.
func ToPeerGroupRow(runID uuid.UUID, a model.PeerGroupAverage) model.PeerGroupRow {
	return model.PeerGroupRow{
		RunID:            runID,
		PeerGroup:        a.PeerGroup,
		TotalBilledCents: Cents(a.TotalBilled),
		PhysicianCount:   int64(a.PhysicianCount),
		AverageCents:     Cents(a.Average),
	}
}

// ToReconciliationRows flattens a ReconciliationResult, matched rows first,
// each group in expected-ledger order.
func ToReconciliationRows(runID uuid.UUID, res *model.ReconciliationResult) []model.ReconciliationRow {
	out := make([]model.ReconciliationRow, 0, res.Total())
	for _, m := range res.Matched {
		out = append(out, model.ReconciliationRow{
			RunID:           runID,
			SourceRow:       int64(m.SourceRow),
			MatchKey:        m.Key,
			Status:          model.StatusPaid,
			Physician:       DisplayName(m.Row.Get(schema.PhysicianName)),
			Insurer:         optStr(DisplayName(m.Row.Get(schema.Insurer))),
			PaidAmountCents: DecimalToCents(m.PaidAmount),
		})
	}
	for _, u := range res.Unmatched {
		out = append(out, model.ReconciliationRow{
			RunID:     runID,
			SourceRow: int64(u.SourceRow),
			MatchKey:  u.Key,
			Status:    model.StatusPending,
			Physician: DisplayName(u.Row.Get(schema.PhysicianName)),
			Insurer:   optStr(DisplayName(u.Row.Get(schema.Insurer))),
		})
	}
	return out
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
