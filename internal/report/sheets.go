package report

import (
	"slices"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/gyeh/revshare/internal/compensation"
	"github.com/gyeh/revshare/internal/model"
	"github.com/gyeh/revshare/internal/schema"
)

// Sheet names.
const (
	SheetCompensation = "Compensation"
	SheetPeerGroups   = "PeerGroups"
	SheetRecords      = "Records"
	SheetProcedures   = "Procedures"
	SheetMatched      = "Matched"
	SheetUnmatched    = "Unmatched"
	SheetByPhysician  = "ByPhysician"
	SheetByInsurer    = "ByInsurer"
)

// money renders an amount as a spreadsheet number rounded to cents.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// CompensationSheets lays out a compensation report. columns is the
// billing dataset's column order and records its analysis window; the
// Records sheet lists the records of the reported physicians only.
// procedures maps a physician to their procedure breakdown; physicians
// without one are left out of the Procedures sheet. Empty Records and
// Procedures sheets are omitted.
func CompensationSheets(rep compensation.Report, columns []string, records []model.ServiceRecord, procedures map[string][]model.ProcedureSummary) []Sheet {
	comp := Sheet{
		Name: SheetCompensation,
		Header: []string{
			"physician", "peer_group", "tier", "records",
			"gross_total", "net_total", "peer_average", "above_average",
			"physician_pct", "physician_share", "facility_pct", "facility_share",
		},
	}
	for _, r := range rep.Results {
		comp.Rows = append(comp.Rows, []any{
			r.Physician, r.PeerGroup, string(r.Tier), r.RecordCount,
			money(r.GrossTotal), money(r.NetTotal), money(r.PeerAverage), r.AboveAverage,
			r.PhysicianPct.InexactFloat64(), money(r.PhysicianShare),
			r.FacilityPct.InexactFloat64(), money(r.FacilityShare),
		})
	}

	groups := Sheet{
		Name:   SheetPeerGroups,
		Header: []string{"peer_group", "total_billed", "physicians", "average"},
	}
	for _, g := range rep.PeerGroups {
		groups.Rows = append(groups.Rows, []any{g.PeerGroup, money(g.TotalBilled), g.PhysicianCount, money(g.Average)})
	}

	sheets := []Sheet{comp, groups}
	if recs := recordsSheet(rep, columns, records); len(recs.Rows) > 0 {
		sheets = append(sheets, recs)
	}

	names := make([]string, 0, len(procedures))
	for name := range procedures {
		names = append(names, name)
	}
	sort.Strings(names)
	procs := Sheet{
		Name:   SheetProcedures,
		Header: []string{"physician", "procedure", "units", "net_total", "net_mean", "gross_total"},
	}
	for _, name := range names {
		for _, p := range procedures[name] {
			procs.Rows = append(procs.Rows, []any{name, p.Procedure, p.Units, money(p.NetTotal), money(p.NetMean), money(p.GrossTotal)})
		}
	}
	if len(procs.Rows) > 0 {
		sheets = append(sheets, procs)
	}
	return sheets
}

var derivedRecordColumns = []string{schema.GrossAmount, schema.PeerGroup, schema.Tier}

func recordsSheet(rep compensation.Report, columns []string, records []model.ServiceRecord) Sheet {
	reported := make(map[string]bool, len(rep.Results))
	for _, r := range rep.Results {
		reported[r.Physician] = true
	}

	var source []string
	for _, c := range columns {
		if !slices.Contains(derivedRecordColumns, c) {
			source = append(source, c)
		}
	}
	s := Sheet{Name: SheetRecords}
	s.Header = append(append([]string{"source_row"}, source...), derivedRecordColumns...)

	for _, rec := range records {
		if !reported[rec.Physician] {
			continue
		}
		row := make([]any, 0, len(s.Header))
		row = append(row, rec.SourceRow)
		for _, c := range source {
			row = append(row, rec.Source.Get(c))
		}
		var gross any = ""
		if rec.GrossAmount != nil {
			gross = money(*rec.GrossAmount)
		}
		row = append(row, gross, rec.PeerGroup, string(rec.Tier))
		s.Rows = append(s.Rows, row)
	}
	return s
}

// ReconciliationSheets lays out a reconciliation result. columns is the
// expected ledger's column order; matched rows gain paid_amount and
// unmatched rows gain pending_amount.
func ReconciliationSheets(columns []string, res *model.ReconciliationResult) []Sheet {
	matched := Sheet{Name: SheetMatched, Header: ledgerHeader(columns, schema.PaidAmount)}
	for _, m := range res.Matched {
		matched.Rows = append(matched.Rows, ledgerRow(m.SourceRow, columns, m.Row, schema.PaidAmount))
	}

	unmatched := Sheet{Name: SheetUnmatched, Header: ledgerHeader(columns, schema.PendingAmount)}
	for _, u := range res.Unmatched {
		unmatched.Rows = append(unmatched.Rows, ledgerRow(u.SourceRow, columns, u.Row, schema.PendingAmount))
	}

	return []Sheet{
		matched,
		unmatched,
		rollupSheet(SheetByPhysician, "physician", res.ByPhysician),
		rollupSheet(SheetByInsurer, "insurer", res.ByInsurer),
	}
}

func ledgerHeader(columns []string, extra string) []string {
	h := make([]string, 0, len(columns)+2)
	h = append(h, "source_row")
	for _, c := range columns {
		if c != extra {
			h = append(h, c)
		}
	}
	return append(h, extra)
}

func ledgerRow(sourceRow int, columns []string, row model.Row, extra string) []any {
	out := make([]any, 0, len(columns)+2)
	out = append(out, sourceRow)
	for _, c := range columns {
		if c != extra {
			out = append(out, row.Get(c))
		}
	}
	return append(out, row.Get(extra))
}

func rollupSheet(name, label string, rollups []model.Rollup) Sheet {
	s := Sheet{
		Name:   name,
		Header: []string{label, "total_expected", "total_matched", "total_unmatched", "match_rate", "paid_total"},
	}
	for _, r := range rollups {
		s.Rows = append(s.Rows, []any{r.Name, r.TotalExpected, r.TotalMatched, r.TotalUnmatched, r.MatchRate, money(r.PaidTotal)})
	}
	return s
}
