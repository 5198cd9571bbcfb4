package normalize

import (
	"strings"

	"github.com/gyeh/revshare/internal/model"
	"github.com/gyeh/revshare/internal/schema"
)

// ProfileLookup resolves a trimmed physician name to its registry profile.
type ProfileLookup interface {
	Lookup(name string) (model.PhysicianProfile, bool)
}

// Normalize converts raw billing rows into typed ServiceRecords.
// Malformed fields degrade to nil and unknown physicians receive the
// sentinel peer group and tier; no row is ever dropped. The returned
// DataQuality counts each degradation.
func Normalize(t *model.Table, reg ProfileLookup) ([]model.ServiceRecord, model.DataQuality) {
	q := model.DataQuality{Rows: t.Len()}
	if t == nil {
		return nil, q
	}
	records := make([]model.ServiceRecord, 0, len(t.Rows))
	for i, row := range t.Rows {
		rec, known := toServiceRecord(row, i+1, reg)
		if rec.ServiceDate == nil {
			q.BadDates++
		}
		if rec.NetAmount == nil {
			q.BadAmounts++
		}
		if rec.SettlementPct == nil {
			q.BadPercentages++
		}
		if !known {
			q.UnknownPhysicians++
		}
		records = append(records, rec)
	}
	return records, q
}

// ToServiceRecord converts one raw row. rowNum is the 1-based data row.
func ToServiceRecord(row model.Row, rowNum int, reg ProfileLookup) model.ServiceRecord {
	rec, _ := toServiceRecord(row, rowNum, reg)
	return rec
}

func toServiceRecord(row model.Row, rowNum int, reg ProfileLookup) (model.ServiceRecord, bool) {
	physician := strings.TrimSpace(row.Get(schema.PhysicianName))
	net := ParseDecimal(row.Get(schema.NetAmount))
	pct := ParseDecimal(row.Get(schema.SettlementPct))

	rec := model.ServiceRecord{
		SourceRow:            rowNum,
		ServiceDate:          ParseDate(row.Get(schema.ServiceDate)),
		Physician:            physician,
		PatientID:            strings.TrimSpace(row.Get(schema.PatientID)),
		ProcedureDescription: strings.TrimSpace(row.Get(schema.ProcedureDescription)),
		Insurer:              strings.TrimSpace(row.Get(schema.Insurer)),
		NetAmount:            net,
		SettlementPct:        pct,
		GrossAmount:          GrossAmount(net, pct),
		Source:               row,
	}

	profile, ok := reg.Lookup(physician)
	if !ok {
		profile = model.UnknownProfile(physician)
	}
	rec.PeerGroup = profile.PeerGroup
	rec.Tier = profile.Tier
	return rec, ok
}
