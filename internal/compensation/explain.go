package compensation

import (
	"fmt"
	"strings"

	"github.com/gyeh/revshare/internal/model"
)

// Explain renders how a physician's percentage was reached.
func Explain(res model.CompensationResult, avg model.PeerGroupAverage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Peer group %s: %s total billed / %d physicians = %s average\n",
		avg.PeerGroup, avg.TotalBilled.StringFixed(2), avg.PhysicianCount, avg.Average.StringFixed(2))
	position := "BELOW"
	if res.AboveAverage {
		position = "ABOVE"
	}
	fmt.Fprintf(&b, "%s billed %s: %s average\n", res.Physician, res.NetTotal.StringFixed(2), position)
	fmt.Fprintf(&b, "Tier %s -> physician %s%%, facility %s%%\n",
		res.Tier, res.PhysicianPct.StringFixed(1), res.FacilityPct.StringFixed(1))
	fmt.Fprintf(&b, "Physician share: %s x %s%% = %s; facility share: %s\n",
		res.NetTotal.StringFixed(2), res.PhysicianPct.StringFixed(1),
		res.PhysicianShare.StringFixed(2), res.FacilityShare.StringFixed(2))
	return b.String()
}
