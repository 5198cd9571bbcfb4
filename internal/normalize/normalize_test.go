package normalize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gyeh/revshare/internal/model"
	"github.com/gyeh/revshare/internal/schema"
)

type fakeRegistry map[string]model.PhysicianProfile

func (f fakeRegistry) Lookup(name string) (model.PhysicianProfile, bool) {
	p, ok := f[name]
	return p, ok
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2025-12-20",
		"2025-12-20 00:00:00",
		"2025-12-20T09:30:00",
		"20/12/2025",
		"2025/12/20",
		"20-12-25",
	} {
		got := ParseDate(in)
		if got == nil {
			t.Errorf("ParseDate(%q) = nil", in)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}
	for _, in := range []string{"", "  ", "not a date", "2025-13-45", "2024", "7", "46011"} {
		if got := ParseDate(in); got != nil {
			t.Errorf("ParseDate(%q) = %v, want nil", in, got)
		}
	}
}

func TestParseDate_DayFirst(t *testing.T) {
	want := time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"03/04/2025", "03-04-2025", "03-04-25"} {
		if got := ParseDate(in); got == nil || !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseExcelSerial(t *testing.T) {
	want := time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"46011", "46011.5", " 46011 "} {
		if got := ParseExcelSerial(in); got == nil || !got.Equal(want) {
			t.Errorf("ParseExcelSerial(%q) = %v, want %v", in, got, want)
		}
	}
	for _, in := range []string{"", "0", "-3", "2025-12-20", "99999999"} {
		if got := ParseExcelSerial(in); got != nil {
			t.Errorf("ParseExcelSerial(%q) = %v, want nil", in, got)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(nil); got != "NaT" {
		t.Errorf("FormatDate(nil) = %q", got)
	}
	d := time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(&d); got != "2026-01-30" {
		t.Errorf("FormatDate = %q", got)
	}
}

func TestInRange(t *testing.T) {
	from := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	in := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	out := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if !InRange(&in, &from, &to) {
		t.Error("upper bound should be inclusive")
	}
	if InRange(&out, &from, &to) {
		t.Error("date after upper bound should be excluded")
	}
	if InRange(nil, &from, nil) {
		t.Error("nil date must be excluded from a bounded range")
	}
	if !InRange(nil, nil, nil) {
		t.Error("unbounded range should admit nil dates")
	}
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"19.6", "19.6"},
		{" 19,6 ", "19.6"},
		{"€1.234,56", "1234.56"},
		{"$1,234.56", "1234.56"},
		{"1,234,567", "1234567"},
		{"70%", "70"},
		{"-5", "-5"},
	}
	for _, tt := range tests {
		got := ParseDecimal(tt.in)
		if got == nil {
			t.Errorf("ParseDecimal(%q) = nil", tt.in)
			continue
		}
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("ParseDecimal(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	for _, in := range []string{"", "abc", "N/A", "12..3"} {
		if got := ParseDecimal(in); got != nil {
			t.Errorf("ParseDecimal(%q) = %s, want nil", in, got)
		}
	}
}

func TestGrossAmount(t *testing.T) {
	if g := GrossAmount(dec("19.6"), dec("70")); g == nil || !g.Equal(decimal.NewFromInt(28)) {
		t.Errorf("gross for 19.6 @ 70%% = %v, want 28", g)
	}
	if g := GrossAmount(dec("19.6"), dec("0")); g == nil || !g.Equal(decimal.RequireFromString("19.6")) {
		t.Errorf("zero pct should fall back to net, got %v", g)
	}
	if g := GrossAmount(dec("19.6"), nil); g == nil || !g.Equal(decimal.RequireFromString("19.6")) {
		t.Errorf("nil pct should fall back to net, got %v", g)
	}
	if g := GrossAmount(nil, dec("70")); g != nil {
		t.Errorf("nil net should yield nil, got %v", g)
	}
	for _, pct := range []string{"0.5", "33", "99.99", "100"} {
		net := dec("123.45")
		if g := GrossAmount(net, dec(pct)); g.LessThan(*net) {
			t.Errorf("gross %s < net %s at pct %s", g, net, pct)
		}
	}
}

func TestCents(t *testing.T) {
	if c := Cents(decimal.RequireFromString("12.345")); c != 1235 {
		t.Errorf("Cents(12.345) = %d, want 1235", c)
	}
	if DecimalToCents(nil) != nil {
		t.Error("DecimalToCents(nil) should be nil")
	}
	if bp := PercentToBasisPoints(decimal.RequireFromString("92")); bp != 9200 {
		t.Errorf("PercentToBasisPoints(92) = %d", bp)
	}
}

func TestCanonicalName(t *testing.T) {
	a := CanonicalName("FALLONE, JAN")
	b := CanonicalName("JAN FALLONE")
	c := CanonicalName("fallone jan")
	if a != b || b != c {
		t.Errorf("canonical forms differ: %q %q %q", a, b, c)
	}
	if a != "FALLONE JAN" {
		t.Errorf("CanonicalName = %q", a)
	}
	if got := CanonicalName("  ortega   rodriguez,juan  pablo "); got != "JUAN ORTEGA PABLO RODRIGUEZ" {
		t.Errorf("CanonicalName = %q", got)
	}
	if CanonicalName(CanonicalName("Rius Moreno, Xavier")) != CanonicalName("Rius Moreno, Xavier") {
		t.Error("CanonicalName should be idempotent")
	}
	if CanonicalName("   ") != "" {
		t.Error("blank name should canonicalize to empty string")
	}
}

func TestNormalize(t *testing.T) {
	reg := fakeRegistry{
		"FALLONE, JAN": {Name: "FALLONE, JAN", PeerGroup: "SHOULDER AND ELBOW", Tier: model.TierSenior},
	}
	tbl := model.NewTable("billing",
		schema.ServiceDate, schema.PhysicianName, schema.NetAmount, schema.SettlementPct, "Nº Autofactura")
	tbl.Append("2025-12-20", " FALLONE, JAN ", "19.6", "70", "26VBEF0000049200")
	tbl.Append("garbage", "UNKNOWN, DOC", "n/a", "", "x")

	records, q := Normalize(tbl, reg)
	if len(records) != 2 {
		t.Fatalf("expected 2 records (no rows dropped), got %d", len(records))
	}

	r0 := records[0]
	if r0.Physician != "FALLONE, JAN" || r0.PeerGroup != "SHOULDER AND ELBOW" || r0.Tier != model.TierSenior {
		t.Errorf("registry attach failed: %+v", r0)
	}
	if r0.GrossAmount == nil || !r0.GrossAmount.Equal(decimal.NewFromInt(28)) {
		t.Errorf("gross = %v, want 28", r0.GrossAmount)
	}
	if r0.Source.Get("Nº Autofactura") != "26VBEF0000049200" {
		t.Error("pass-through column lost")
	}
	if r0.SourceRow != 1 {
		t.Errorf("SourceRow = %d", r0.SourceRow)
	}

	r1 := records[1]
	if r1.ServiceDate != nil || r1.NetAmount != nil || r1.GrossAmount != nil {
		t.Errorf("malformed fields should be nil: %+v", r1)
	}
	if r1.PeerGroup != model.UnspecifiedPeerGroup || r1.Tier != model.TierUnspecified {
		t.Errorf("unknown physician should get sentinels: %+v", r1)
	}

	want := model.DataQuality{Rows: 2, BadDates: 1, BadAmounts: 1, BadPercentages: 1, UnknownPhysicians: 1}
	if q != want {
		t.Errorf("quality = %+v, want %+v", q, want)
	}
}
