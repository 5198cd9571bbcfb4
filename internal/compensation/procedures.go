package compensation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/gyeh/revshare/internal/model"
)

// Procedures breaks records down by procedure description: units billed,
// net and gross totals, and the mean net amount over rows with a net
// amount. Blank descriptions are grouped under "UNSPECIFIED".
func Procedures(records []model.ServiceRecord) []model.ProcedureSummary {
	type acc struct {
		units  int
		priced int
		net    decimal.Decimal
		gross  decimal.Decimal
	}
	groups := make(map[string]*acc)
	for _, r := range records {
		name := r.ProcedureDescription
		if name == "" {
			name = model.UnspecifiedPeerGroup
		}
		a, ok := groups[name]
		if !ok {
			a = &acc{net: decimal.Zero, gross: decimal.Zero}
			groups[name] = a
		}
		a.units++
		if r.NetAmount != nil {
			a.priced++
			a.net = a.net.Add(*r.NetAmount)
		}
		if r.GrossAmount != nil {
			a.gross = a.gross.Add(*r.GrossAmount)
		}
	}

	out := make([]model.ProcedureSummary, 0, len(groups))
	for name, a := range groups {
		mean := decimal.Zero
		if a.priced > 0 {
			mean = a.net.Div(decimal.NewFromInt(int64(a.priced)))
		}
		out = append(out, model.ProcedureSummary{
			Procedure:  name,
			Units:      a.units,
			NetTotal:   a.net,
			NetMean:    mean,
			GrossTotal: a.gross,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Procedure < out[j].Procedure })
	return out
}
