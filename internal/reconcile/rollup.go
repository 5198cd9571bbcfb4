package reconcile

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/gyeh/revshare/internal/model"
)

type rollupAcc struct {
	model.Rollup
}

func (a *rollupAcc) matched(amount *decimal.Decimal) {
	a.TotalExpected++
	a.TotalMatched++
	if amount != nil {
		a.PaidTotal = a.PaidTotal.Add(*amount)
	}
}

func (a *rollupAcc) unmatched() {
	a.TotalExpected++
	a.TotalUnmatched++
}

// rollups accumulates per-group counts keyed by a normalized group key.
// The display name is the first one seen for the key.
type rollups struct {
	byKey map[string]*rollupAcc
}

func newRollups() *rollups {
	return &rollups{byKey: make(map[string]*rollupAcc)}
}

func (r *rollups) get(key, display string) *rollupAcc {
	if a, ok := r.byKey[key]; ok {
		return a
	}
	if display == "" {
		display = key
	}
	a := &rollupAcc{Rollup: model.Rollup{Name: display, PaidTotal: decimal.Zero}}
	r.byKey[key] = a
	return a
}

// list returns the rollups sorted by name with match rates filled in.
func (r *rollups) list() []model.Rollup {
	out := make([]model.Rollup, 0, len(r.byKey))
	for _, a := range r.byKey {
		ru := a.Rollup
		ru.MatchRate = MatchRate(ru.TotalMatched, ru.TotalExpected)
		out = append(out, ru)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// MatchRate returns matched/expected, or 0 when expected is 0.
func MatchRate(matched, expected int) float64 {
	if expected == 0 {
		return 0
	}
	return float64(matched) / float64(expected)
}
