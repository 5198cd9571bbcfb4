package reconcile

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/gyeh/revshare/internal/model"
	"github.com/gyeh/revshare/internal/schema"
)

var expectedCols = []string{schema.ServiceDate, schema.PatientID, schema.ProcedureDescription, schema.PhysicianName, schema.Insurer}
var paidCols = []string{schema.ServiceDate, schema.PatientID, schema.ProcedureDescription, schema.PhysicianName, schema.NetAmount}

func expectedTable(rows ...[]string) *model.Table {
	t := model.NewTable("expected", expectedCols...)
	for _, r := range rows {
		t.Append(r...)
	}
	return t
}

func paidTable(rows ...[]string) *model.Table {
	t := model.NewTable("paid", paidCols...)
	for _, r := range rows {
		t.Append(r...)
	}
	return t
}

func TestCanonicalize(t *testing.T) {
	a := Canonicalize("FALLONE, JAN")
	if a != Canonicalize("JAN FALLONE") || a != Canonicalize("fallone jan") {
		t.Errorf("canonical forms differ for FALLONE JAN")
	}
	if Canonicalize("") != "" {
		t.Error("empty input should canonicalize to empty string")
	}
}

func TestKeyFor(t *testing.T) {
	row := model.Row{
		schema.ServiceDate:          "20/12/2025",
		schema.PatientID:            " paciente 1 ",
		schema.ProcedureDescription: "consulta",
		schema.PhysicianName:        "Fallone, Jan",
	}
	if got := KeyFor(row).String(); got != "2025-12-20|PACIENTE 1|CONSULTA|FALLONE JAN" {
		t.Errorf("KeyFor = %q", got)
	}
	row[schema.ServiceDate] = "not a date"
	if got := KeyFor(row).ServiceDate; got != model.NaT {
		t.Errorf("unparsable date fragment = %q", got)
	}
}

func TestMatch_ClassifiesEveryRow(t *testing.T) {
	expected := expectedTable(
		[]string{"2025-12-20", "P1", "CONSULTA", "FALLONE, JAN", "AXA SALUD"},
		[]string{"2025-12-21", "P2", "REVISION", "FALLONE, JAN", "AXA SALUD"},
		[]string{"2025-12-15", "P11", "CONSULTA", "ORTEGA RODRIGUEZ, JUAN PABLO", "CIGNA SALUD"},
		[]string{"2025-12-16", "P12", "REVISION", "ORTEGA RODRIGUEZ, JUAN PABLO", ""},
	)
	paid := paidTable(
		[]string{"20/12/2025", "p1", "consulta", "JAN FALLONE", "19.6"},
		[]string{"2025-12-15", "P11", "CONSULTA", "juan pablo ortega rodriguez", "21,0"},
		[]string{"2025-12-30", "P99", "CONSULTA", "NOBODY", "5"},
	)

	res, err := Match(expected, paid)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if res.Total() != expected.Len() {
		t.Fatalf("matched+unmatched = %d, want %d", res.Total(), expected.Len())
	}
	if len(res.Matched) != 2 || len(res.Unmatched) != 2 {
		t.Fatalf("matched=%d unmatched=%d", len(res.Matched), len(res.Unmatched))
	}

	m0 := res.Matched[0]
	if m0.SourceRow != 1 || m0.PaidAmount == nil || !m0.PaidAmount.Equal(decimal.RequireFromString("19.6")) {
		t.Errorf("first match = %+v", m0)
	}
	if m0.Row.Get(schema.PaidAmount) != "19.6" {
		t.Errorf("paid_amount field = %q", m0.Row.Get(schema.PaidAmount))
	}
	if _, ok := expected.Rows[0][schema.PaidAmount]; ok {
		t.Error("Match must not mutate the input rows")
	}
	if !res.Matched[1].PaidAmount.Equal(decimal.NewFromInt(21)) {
		t.Errorf("second paid amount = %s", res.Matched[1].PaidAmount)
	}

	for _, u := range res.Unmatched {
		if !u.PendingAmount.IsZero() {
			t.Errorf("pending amount must be zero, got %s", u.PendingAmount)
		}
		if u.Row.Get(schema.PendingAmount) != "0" {
			t.Errorf("pending_amount field = %q", u.Row.Get(schema.PendingAmount))
		}
	}
	if res.Unmatched[0].SourceRow != 2 || res.Unmatched[1].SourceRow != 4 {
		t.Errorf("unmatched source rows = %d, %d", res.Unmatched[0].SourceRow, res.Unmatched[1].SourceRow)
	}
}

func TestMatch_Rollups(t *testing.T) {
	expected := expectedTable(
		[]string{"2025-12-20", "P1", "CONSULTA", "FALLONE, JAN", "AXA SALUD"},
		[]string{"2025-12-21", "P2", "REVISION", "JAN FALLONE", "axa salud"},
		[]string{"2025-12-15", "P11", "CONSULTA", "ORTEGA RODRIGUEZ, JUAN PABLO", ""},
	)
	paid := paidTable(
		[]string{"2025-12-20", "P1", "CONSULTA", "FALLONE, JAN", "19.6"},
	)
	res, err := Match(expected, paid)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}

	if len(res.ByPhysician) != 2 {
		t.Fatalf("by physician = %+v", res.ByPhysician)
	}
	f := res.ByPhysician[0]
	if f.Name != "FALLONE, JAN" || f.TotalExpected != 2 || f.TotalMatched != 1 || f.TotalUnmatched != 1 || f.MatchRate != 0.5 {
		t.Errorf("FALLONE rollup = %+v", f)
	}
	if !f.PaidTotal.Equal(decimal.RequireFromString("19.6")) {
		t.Errorf("FALLONE paid total = %s", f.PaidTotal)
	}

	if len(res.ByInsurer) != 2 {
		t.Fatalf("by insurer = %+v", res.ByInsurer)
	}
	if res.ByInsurer[0].Name != "AXA SALUD" || res.ByInsurer[0].TotalExpected != 2 {
		t.Errorf("AXA rollup = %+v", res.ByInsurer[0])
	}
	if res.ByInsurer[1].Name != model.UnspecifiedPeerGroup || res.ByInsurer[1].MatchRate != 0 {
		t.Errorf("blank insurer rollup = %+v", res.ByInsurer[1])
	}
}

func TestMatch_DuplicatePaidKeysFirstWins(t *testing.T) {
	expected := expectedTable([]string{"2025-12-20", "P1", "CONSULTA", "FALLONE, JAN", ""})
	paid := paidTable(
		[]string{"2025-12-20", "P1", "CONSULTA", "FALLONE, JAN", "10"},
		[]string{"2025-12-20", "P1", "CONSULTA", "JAN FALLONE", "99"},
	)
	res, err := Match(expected, paid)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if !res.Matched[0].PaidAmount.Equal(decimal.NewFromInt(10)) {
		t.Errorf("paid amount should come from the first paid row, got %s", res.Matched[0].PaidAmount)
	}
	if len(res.DuplicatePaidKeys) != 1 || res.DuplicatePaidKeys[0].Count != 2 {
		t.Errorf("duplicates = %+v", res.DuplicatePaidKeys)
	}
}

func TestMatch_UnparsableDatesShareSentinel(t *testing.T) {
	expected := expectedTable([]string{"??", "P1", "CONSULTA", "FALLONE, JAN", ""})
	paid := paidTable([]string{"garbage", "P1", "CONSULTA", "FALLONE, JAN", "10"})
	res, err := Match(expected, paid)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(res.Matched) != 1 {
		t.Error("NaT keys on both sides are expected to match")
	}
	if res.UnparsableDateRows != 1 {
		t.Errorf("UnparsableDateRows = %d", res.UnparsableDateRows)
	}
}

func TestMatch_SchemaFailFast(t *testing.T) {
	expected := expectedTable([]string{"2025-12-20", "P1", "CONSULTA", "FALLONE, JAN", ""})
	paid := model.NewTable("paid", schema.ServiceDate, schema.PatientID, schema.ProcedureDescription, schema.NetAmount)
	paid.Append("2025-12-20", "P1", "CONSULTA", "10")

	res, err := Match(expected, paid)
	if res != nil {
		t.Error("no partial result may be returned on schema error")
	}
	var se *schema.Error
	if !errors.As(err, &se) {
		t.Fatalf("expected *schema.Error, got %v", err)
	}
	if se.Dataset != "paid" || len(se.Missing) != 1 || se.Missing[0] != schema.PhysicianName {
		t.Errorf("schema error = %+v", se)
	}
	if !errors.Is(err, schema.ErrSchema) {
		t.Error("error should wrap ErrSchema")
	}
}

func TestMatch_EmptyExpected(t *testing.T) {
	res, err := Match(expectedTable(), paidTable([]string{"2025-12-20", "P1", "CONSULTA", "X", "1"}))
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if res.Total() != 0 || len(res.ByPhysician) != 0 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestMatcher_LogsDuplicates(t *testing.T) {
	var buf bytes.Buffer
	m := NewMatcher(zerolog.New(&buf))
	expected := expectedTable([]string{"2025-12-20", "P1", "CONSULTA", "FALLONE, JAN", ""})
	paid := paidTable(
		[]string{"2025-12-20", "P1", "CONSULTA", "FALLONE, JAN", "10"},
		[]string{"2025-12-20", "P1", "CONSULTA", "FALLONE, JAN", "10"},
	)
	if _, err := m.Match(expected, paid); err != nil {
		t.Fatalf("Match: %v", err)
	}
	if !strings.Contains(buf.String(), "duplicate paid key") {
		t.Errorf("expected duplicate warning in log, got %s", buf.String())
	}
}

func TestMatchRate(t *testing.T) {
	if MatchRate(0, 0) != 0 {
		t.Error("zero expected should give zero rate")
	}
	if MatchRate(3, 4) != 0.75 {
		t.Error("MatchRate(3,4) != 0.75")
	}
}
