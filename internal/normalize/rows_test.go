package normalize

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gyeh/revshare/internal/model"
	"github.com/gyeh/revshare/internal/schema"
)

func TestToCompensationRow_SumsSurviveRounding(t *testing.T) {
	net := decimal.RequireFromString("2.01")
	share := decimal.RequireFromString("1.005")
	res := model.CompensationResult{
		Physician:      "FALLONE, JAN",
		NetTotal:       net,
		PhysicianPct:   decimal.RequireFromString("50"),
		PhysicianShare: share,
		FacilityPct:    decimal.RequireFromString("50"),
		FacilityShare:  net.Sub(share),
	}
	row := ToCompensationRow(uuid.New(), res)
	if row.PhysicianShareCents+row.FacilityShareCents != row.NetTotalCents {
		t.Errorf("shares %d + %d != net %d", row.PhysicianShareCents, row.FacilityShareCents, row.NetTotalCents)
	}
	if row.PhysicianPctBPS+row.FacilityPctBPS != 10000 {
		t.Errorf("pct bps %d + %d != 10000", row.PhysicianPctBPS, row.FacilityPctBPS)
	}
}

func TestToReconciliationRows(t *testing.T) {
	paid := decimal.RequireFromString("19.6")
	res := &model.ReconciliationResult{
		Matched: []model.ReconciledRow{{
			SourceRow:  2,
			Row:        model.Row{schema.PhysicianName: " FALLONE,  JAN ", schema.Insurer: "AXA"},
			Key:        "k2",
			PaidAmount: &paid,
		}},
		Unmatched: []model.PendingRow{{
			SourceRow: 1,
			Row:       model.Row{schema.PhysicianName: "FALLONE, JAN"},
			Key:       "k1",
		}},
	}
	rows := ToReconciliationRows(uuid.Nil, res)
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0].Status != model.StatusPaid || rows[0].Physician != "FALLONE, JAN" || *rows[0].PaidAmountCents != 1960 {
		t.Errorf("paid row = %+v", rows[0])
	}
	if rows[1].Status != model.StatusPending || rows[1].Insurer != nil || rows[1].PaidAmountCents != nil {
		t.Errorf("pending row = %+v", rows[1])
	}
}
