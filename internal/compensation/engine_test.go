package compensation

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gyeh/revshare/internal/model"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// makeRecord builds a minimal ServiceRecord with optional overrides.
func makeRecord(physician, group string, tier model.Tier, net string, opts ...func(*model.ServiceRecord)) model.ServiceRecord {
	r := model.ServiceRecord{
		Physician: physician,
		PeerGroup: group,
		Tier:      tier,
	}
	if net != "" {
		r.NetAmount = dec(net)
		r.GrossAmount = dec(net)
	}
	for _, o := range opts {
		o(&r)
	}
	return r
}

func onDate(y int, m time.Month, d int) func(*model.ServiceRecord) {
	return func(r *model.ServiceRecord) {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		r.ServiceDate = &t
	}
}

func withProcedure(p string) func(*model.ServiceRecord) {
	return func(r *model.ServiceRecord) { r.ProcedureDescription = p }
}

func assertInvariants(t *testing.T, res model.CompensationResult) {
	t.Helper()
	if !res.PhysicianPct.Add(res.FacilityPct).Equal(decimal.NewFromInt(100)) {
		t.Errorf("%s: pct sum = %s", res.Physician, res.PhysicianPct.Add(res.FacilityPct))
	}
	if diff := res.PhysicianShare.Add(res.FacilityShare).Sub(res.NetTotal).Abs(); diff.GreaterThan(decimal.RequireFromString("0.000001")) {
		t.Errorf("%s: share sum off by %s", res.Physician, diff)
	}
	if res.AboveAverage != res.NetTotal.GreaterThanOrEqual(res.PeerAverage) {
		t.Errorf("%s: above_average inconsistent", res.Physician)
	}
}

func TestPeerAverages(t *testing.T) {
	records := []model.ServiceRecord{
		makeRecord("A", "G", model.TierSenior, "700"),
		makeRecord("A", "G", model.TierSenior, "500"),
		makeRecord("B", "G", model.TierSenior, "1800"),
		makeRecord("C", "H", model.TierSpecialist, ""),
	}
	avgs := PeerAverages(records)

	g := avgs["G"]
	if g.PhysicianCount != 2 || !g.TotalBilled.Equal(decimal.NewFromInt(3000)) || !g.Average.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("group G = %+v", g)
	}
	h := avgs["H"]
	if h.PhysicianCount != 1 || !h.TotalBilled.IsZero() || !h.Average.IsZero() {
		t.Errorf("group H = %+v", h)
	}
	if _, ok := avgs["missing"]; ok {
		t.Error("unexpected group")
	}
}

func TestCompute_TieredRuleExample(t *testing.T) {
	recs := []model.ServiceRecord{makeRecord("S", "G", model.TierSenior, "2000")}
	res := Compute(recs, decimal.NewFromInt(1800))

	if !res.AboveAverage {
		t.Error("expected above average")
	}
	if !res.PhysicianPct.Equal(decimal.NewFromInt(92)) {
		t.Errorf("PhysicianPct = %s", res.PhysicianPct)
	}
	if !res.PhysicianShare.Equal(decimal.NewFromInt(1840)) {
		t.Errorf("PhysicianShare = %s", res.PhysicianShare)
	}
	if !res.FacilityShare.Equal(decimal.NewFromInt(160)) {
		t.Errorf("FacilityShare = %s", res.FacilityShare)
	}
	assertInvariants(t, res)
}

func TestCompute_TieIsAboveAverage(t *testing.T) {
	recs := []model.ServiceRecord{makeRecord("S", "G", model.TierSenior, "2000")}
	res := Compute(recs, decimal.NewFromInt(2000))
	if !res.AboveAverage {
		t.Fatal("net equal to average must count as above")
	}
	if !res.PhysicianShare.Equal(decimal.NewFromInt(1840)) {
		t.Errorf("PhysicianShare = %s", res.PhysicianShare)
	}
}

func TestCompute_PercentageTable(t *testing.T) {
	tests := []struct {
		tier  model.Tier
		net   string
		above bool
		pct   int64
	}{
		{model.TierSenior, "2000", true, 92},
		{model.TierSenior, "1000", false, 88},
		{model.TierSpecialist, "2000", true, 90},
		{model.TierSpecialist, "1000", false, 85},
		{model.TierUnspecified, "2000", true, 90},
		{model.TierUnspecified, "1000", false, 90},
		{model.Tier("RESIDENT"), "1000", false, 90},
	}
	for _, tt := range tests {
		res := Compute([]model.ServiceRecord{makeRecord("X", "G", tt.tier, tt.net)}, decimal.NewFromInt(1500))
		if res.AboveAverage != tt.above {
			t.Errorf("%s/%s: above = %v", tt.tier, tt.net, res.AboveAverage)
		}
		if !res.PhysicianPct.Equal(decimal.NewFromInt(tt.pct)) {
			t.Errorf("%s/%s: pct = %s, want %d", tt.tier, tt.net, res.PhysicianPct, tt.pct)
		}
		assertInvariants(t, res)
	}
}

func TestCompute_Empty(t *testing.T) {
	res := Compute(nil, decimal.NewFromInt(100))
	if res.RecordCount != 0 || !res.NetTotal.IsZero() || !res.PhysicianShare.IsZero() || !res.FacilityShare.IsZero() {
		t.Errorf("empty input should give a zero-valued result, got %+v", res)
	}
	assertInvariants(t, res)
}

func TestCompute_SkipsNilAmounts(t *testing.T) {
	recs := []model.ServiceRecord{
		makeRecord("S", "G", model.TierSenior, "19.6"),
		makeRecord("S", "G", model.TierSenior, ""),
	}
	res := Compute(recs, decimal.Zero)
	if res.RecordCount != 2 {
		t.Errorf("RecordCount = %d", res.RecordCount)
	}
	if !res.NetTotal.Equal(decimal.RequireFromString("19.6")) {
		t.Errorf("NetTotal = %s", res.NetTotal)
	}
	assertInvariants(t, res)
}

func TestComputeAll_PeerAverageExample(t *testing.T) {
	records := []model.ServiceRecord{
		makeRecord("B", "G", model.TierSenior, "1800"),
		makeRecord("A", "G", model.TierSenior, "1200"),
		makeRecord("C", "H", model.TierSpecialist, "333.33"),
		makeRecord("D", "H", model.TierSpecialist, "100.01"),
		makeRecord("E", "H", model.TierSenior, "17.77"),
	}
	rep := DefaultRates().ComputeAll(records)

	if len(rep.Results) != 5 || rep.Results[0].Physician != "A" {
		t.Fatalf("results should be sorted by physician: %+v", rep.Results)
	}
	g, ok := rep.PeerGroup("G")
	if !ok || !g.Average.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("average(G) = %+v", g)
	}

	a, _ := rep.For("A")
	if a.AboveAverage || !a.PhysicianPct.Equal(decimal.NewFromInt(88)) {
		t.Errorf("A should be below average at 88%%, got %+v", a)
	}
	b, _ := rep.For("B")
	if !b.AboveAverage || !b.PhysicianPct.Equal(decimal.NewFromInt(92)) {
		t.Errorf("B should be above average at 92%%, got %+v", b)
	}
	for _, res := range rep.Results {
		assertInvariants(t, res)
	}
	if rep.PeerGroups[0].PeerGroup != "G" || rep.PeerGroups[1].PeerGroup != "H" {
		t.Errorf("peer groups should be sorted: %+v", rep.PeerGroups)
	}
	if _, ok := rep.For("nobody"); ok {
		t.Error("unexpected result for unknown physician")
	}
}

func TestComputeAll_BlankPhysician(t *testing.T) {
	records := []model.ServiceRecord{
		makeRecord("", model.UnspecifiedPeerGroup, model.TierUnspecified, "300"),
		makeRecord("X", model.UnspecifiedPeerGroup, model.TierUnspecified, "100"),
	}
	rep := DefaultRates().ComputeAll(records)

	avg, ok := rep.PeerGroup(model.UnspecifiedPeerGroup)
	if !ok {
		t.Fatal("missing UNSPECIFIED peer group")
	}
	if avg.PhysicianCount != 1 {
		t.Errorf("PhysicianCount = %d, want 1", avg.PhysicianCount)
	}
	if !avg.TotalBilled.Equal(decimal.NewFromInt(400)) || !avg.Average.Equal(decimal.NewFromInt(400)) {
		t.Errorf("total = %s average = %s, want 400/400", avg.TotalBilled, avg.Average)
	}
	if len(rep.Results) != 1 || rep.Results[0].Physician != "X" {
		t.Fatalf("results = %+v, want only X", rep.Results)
	}
}

func TestRates_WithAndValidate(t *testing.T) {
	r := DefaultRates().With(model.TierSenior, Split{Above: decimal.NewFromInt(95), Below: decimal.NewFromInt(80)})
	if !r.Percent(model.TierSenior, true).Equal(decimal.NewFromInt(95)) {
		t.Error("override not applied")
	}
	if !DefaultRates().Percent(model.TierSenior, true).Equal(decimal.NewFromInt(92)) {
		t.Error("With must not mutate the receiver")
	}
	if err := r.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	bad := r.With(model.TierUnspecified, Split{Above: decimal.NewFromInt(101), Below: decimal.NewFromInt(90)})
	if err := bad.Validate(); err == nil {
		t.Error("expected out-of-range error")
	}
}

func TestFilter_Apply(t *testing.T) {
	records := []model.ServiceRecord{
		makeRecord("A", "G", model.TierSenior, "1", onDate(2025, 12, 10)),
		makeRecord("A", "G", model.TierSenior, "2", onDate(2025, 12, 20)),
		makeRecord("A", "G", model.TierSenior, "3"),
	}
	from := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)
	got := Filter{From: &from}.Apply(records)
	if len(got) != 1 || !got[0].NetAmount.Equal(decimal.NewFromInt(2)) {
		t.Errorf("filtered = %+v", got)
	}
	if len(Filter{}.Apply(records)) != 3 {
		t.Error("inactive filter should keep every record")
	}

	first, last := DateSpan(records)
	if first.Day() != 10 || last.Day() != 20 {
		t.Errorf("DateSpan = %v..%v", first, last)
	}
}

func TestProcedures(t *testing.T) {
	records := []model.ServiceRecord{
		makeRecord("A", "G", model.TierSenior, "19.6", withProcedure("CONSULTA")),
		makeRecord("A", "G", model.TierSenior, "21.6", withProcedure("CONSULTA")),
		makeRecord("A", "G", model.TierSenior, "20.6", withProcedure("REVISION")),
		makeRecord("A", "G", model.TierSenior, "", withProcedure("REVISION")),
	}
	got := Procedures(records)
	if len(got) != 2 || got[0].Procedure != "CONSULTA" {
		t.Fatalf("procedures = %+v", got)
	}
	if got[0].Units != 2 || !got[0].NetTotal.Equal(decimal.RequireFromString("41.2")) || !got[0].NetMean.Equal(decimal.RequireFromString("20.6")) {
		t.Errorf("CONSULTA = %+v", got[0])
	}
	if got[1].Units != 2 || !got[1].NetMean.Equal(decimal.RequireFromString("20.6")) {
		t.Errorf("REVISION = %+v", got[1])
	}
}

func TestExplain(t *testing.T) {
	recs := []model.ServiceRecord{makeRecord("FALLONE, JAN", "SHOULDER AND ELBOW", model.TierSenior, "2000")}
	avg := model.PeerGroupAverage{PeerGroup: "SHOULDER AND ELBOW", TotalBilled: decimal.NewFromInt(6000), PhysicianCount: 3, Average: decimal.NewFromInt(2000)}
	out := Explain(Compute(recs, avg.Average), avg)
	for _, want := range []string{"6000.00 total billed / 3 physicians", "ABOVE average", "1840.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("Explain output missing %q:\n%s", want, out)
		}
	}
}

func TestPhysicians(t *testing.T) {
	records := []model.ServiceRecord{
		makeRecord("B", "G", model.TierSenior, "1"),
		makeRecord("A", "G", model.TierSenior, "1"),
		makeRecord("B", "G", model.TierSenior, "1"),
		makeRecord("", "G", model.TierSenior, "1"),
	}
	got := Physicians(records)
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("Physicians = %v", got)
	}
}
