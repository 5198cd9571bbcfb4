// Package compensation computes peer-group averages and the tiered
// revenue split between each physician and the facility.
package compensation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/gyeh/revshare/internal/model"
)

var hundred = decimal.NewFromInt(100)

// PeerAverages groups records by peer group and divides each group's
// total net billing by its number of distinct physicians. Records with a
// nil net amount count toward the physician count but add nothing to the
// total. Records without a physician name add to the total but are not a
// member.
func PeerAverages(records []model.ServiceRecord) map[string]model.PeerGroupAverage {
	totals := make(map[string]decimal.Decimal)
	members := make(map[string]map[string]struct{})
	for _, r := range records {
		if _, ok := members[r.PeerGroup]; !ok {
			members[r.PeerGroup] = make(map[string]struct{})
			totals[r.PeerGroup] = decimal.Zero
		}
		if r.Physician != "" {
			members[r.PeerGroup][r.Physician] = struct{}{}
		}
		if r.NetAmount != nil {
			totals[r.PeerGroup] = totals[r.PeerGroup].Add(*r.NetAmount)
		}
	}

	out := make(map[string]model.PeerGroupAverage, len(totals))
	for group, total := range totals {
		count := len(members[group])
		avg := decimal.Zero
		if count > 0 {
			avg = total.Div(decimal.NewFromInt(int64(count)))
		}
		out[group] = model.PeerGroupAverage{
			PeerGroup:      group,
			TotalBilled:    total,
			PhysicianCount: count,
			Average:        avg,
		}
	}
	return out
}

// Compute applies the default split table to one physician's records.
func Compute(records []model.ServiceRecord, peerAverage decimal.Decimal) model.CompensationResult {
	return DefaultRates().Compute(records, peerAverage)
}

// Compute derives one physician's totals and split. Identity fields
// (name, peer group, tier) come from the first record. An empty input
// yields zero amounts under the fallback split.
func (r Rates) Compute(records []model.ServiceRecord, peerAverage decimal.Decimal) model.CompensationResult {
	res := model.CompensationResult{
		Tier:        model.TierUnspecified,
		PeerGroup:   model.UnspecifiedPeerGroup,
		GrossTotal:  decimal.Zero,
		NetTotal:    decimal.Zero,
		PeerAverage: peerAverage,
	}
	if len(records) > 0 {
		res.Physician = records[0].Physician
		res.PeerGroup = records[0].PeerGroup
		res.Tier = records[0].Tier
	}
	res.RecordCount = len(records)
	for _, rec := range records {
		if rec.NetAmount != nil {
			res.NetTotal = res.NetTotal.Add(*rec.NetAmount)
		}
		if rec.GrossAmount != nil {
			res.GrossTotal = res.GrossTotal.Add(*rec.GrossAmount)
		}
	}

	// A tie counts as above average.
	res.AboveAverage = res.NetTotal.GreaterThanOrEqual(peerAverage)
	res.PhysicianPct = r.Percent(res.Tier, res.AboveAverage)
	res.FacilityPct = hundred.Sub(res.PhysicianPct)
	res.PhysicianShare = res.NetTotal.Mul(res.PhysicianPct).Div(hundred)
	res.FacilityShare = res.NetTotal.Sub(res.PhysicianShare)
	return res
}

// Report is the result of one full compensation computation.
type Report struct {
	Results    []model.CompensationResult
	PeerGroups []model.PeerGroupAverage
}

// ComputeAll computes every physician's result against its peer group's
// average over the same record set. Results are sorted by physician and
// peer groups by name. Unnamed records get no result of their own.
func (r Rates) ComputeAll(records []model.ServiceRecord) Report {
	averages := PeerAverages(records)

	byPhysician := make(map[string][]model.ServiceRecord)
	var order []string
	for _, rec := range records {
		if rec.Physician == "" {
			continue
		}
		if _, ok := byPhysician[rec.Physician]; !ok {
			order = append(order, rec.Physician)
		}
		byPhysician[rec.Physician] = append(byPhysician[rec.Physician], rec)
	}
	sort.Strings(order)

	rep := Report{Results: make([]model.CompensationResult, 0, len(order))}
	for _, name := range order {
		recs := byPhysician[name]
		avg := averages[recs[0].PeerGroup].Average
		rep.Results = append(rep.Results, r.Compute(recs, avg))
	}

	for _, a := range averages {
		rep.PeerGroups = append(rep.PeerGroups, a)
	}
	sort.Slice(rep.PeerGroups, func(i, j int) bool {
		return rep.PeerGroups[i].PeerGroup < rep.PeerGroups[j].PeerGroup
	})
	return rep
}

// For returns the result for one physician.
func (rep Report) For(physician string) (model.CompensationResult, bool) {
	for _, res := range rep.Results {
		if res.Physician == physician {
			return res, true
		}
	}
	return model.CompensationResult{}, false
}

// PeerGroup returns the average for one peer group.
func (rep Report) PeerGroup(name string) (model.PeerGroupAverage, bool) {
	for _, a := range rep.PeerGroups {
		if a.PeerGroup == name {
			return a, true
		}
	}
	return model.PeerGroupAverage{}, false
}

// Physicians returns the distinct physician names of records, sorted.
func Physicians(records []model.ServiceRecord) []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range records {
		if r.Physician == "" || seen[r.Physician] {
			continue
		}
		seen[r.Physician] = true
		names = append(names, r.Physician)
	}
	sort.Strings(names)
	return names
}
