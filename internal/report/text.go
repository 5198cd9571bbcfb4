package report

import (
	"fmt"
	"io"

	"github.com/gyeh/revshare/internal/compensation"
	"github.com/gyeh/revshare/internal/model"
)

// PrintCompensation writes a fixed-width summary of rep to w.
func PrintCompensation(w io.Writer, rep compensation.Report) {
	fmt.Fprintln(w, "=== revshare compensation ===")
	fmt.Fprintf(w, "%-34s %-20s %-11s %7s %12s %12s %7s %12s %12s\n",
		"Physician", "Peer group", "Tier", "Records", "Net", "Peer avg", "Pct", "Physician", "Facility")
	for _, r := range rep.Results {
		marker := " "
		if r.AboveAverage {
			marker = "+"
		}
		fmt.Fprintf(w, "%-34s %-20s %-11s %7d %12s %12s %6s%s %12s %12s\n",
			truncate(r.Physician, 34), truncate(r.PeerGroup, 20), r.Tier, r.RecordCount,
			r.NetTotal.StringFixed(2), r.PeerAverage.StringFixed(2),
			r.PhysicianPct.String(), marker,
			r.PhysicianShare.StringFixed(2), r.FacilityShare.StringFixed(2))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Peer groups:")
	for _, g := range rep.PeerGroups {
		fmt.Fprintf(w, "  %-20s %2d physicians  total %12s  average %12s\n",
			g.PeerGroup, g.PhysicianCount, g.TotalBilled.StringFixed(2), g.Average.StringFixed(2))
	}
}

// PrintReconciliation writes match counts and rollups of res to w.
func PrintReconciliation(w io.Writer, res *model.ReconciliationResult) {
	fmt.Fprintln(w, "=== revshare reconciliation ===")
	fmt.Fprintf(w, "Expected:   %d\n", res.Total())
	fmt.Fprintf(w, "Matched:    %d\n", len(res.Matched))
	fmt.Fprintf(w, "Unmatched:  %d\n", len(res.Unmatched))
	if len(res.DuplicatePaidKeys) > 0 {
		fmt.Fprintf(w, "Duplicate paid keys: %d\n", len(res.DuplicatePaidKeys))
	}
	if res.UnparsableDateRows > 0 {
		fmt.Fprintf(w, "Unparsable dates:    %d\n", res.UnparsableDateRows)
	}
	printRollups(w, "By physician:", res.ByPhysician)
	printRollups(w, "By insurer:", res.ByInsurer)
}

func printRollups(w io.Writer, title string, rollups []model.Rollup) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	for _, r := range rollups {
		fmt.Fprintf(w, "  %-34s %5d expected %5d matched %5d pending %6.1f%%  paid %12s\n",
			truncate(r.Name, 34), r.TotalExpected, r.TotalMatched, r.TotalUnmatched,
			r.MatchRate*100, r.PaidTotal.StringFixed(2))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
