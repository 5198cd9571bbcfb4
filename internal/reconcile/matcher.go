// Package reconcile matches an expected-services ledger against a paid
// ledger by composite key and classifies every expected service as paid
// or pending.
package reconcile

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/gyeh/revshare/internal/model"
	"github.com/gyeh/revshare/internal/normalize"
	"github.com/gyeh/revshare/internal/schema"
)

// Matcher runs reconciliations and logs data-quality findings.
type Matcher struct {
	log zerolog.Logger
}

// NewMatcher creates a Matcher that reports to log.
func NewMatcher(log zerolog.Logger) *Matcher {
	return &Matcher{log: log}
}

// Match reconciles expected against paid and logs duplicate paid keys and
// unparsable dates as warnings.
func (m *Matcher) Match(expected, paid *model.Table) (*model.ReconciliationResult, error) {
	res, err := Match(expected, paid)
	if err != nil {
		return nil, err
	}
	for _, d := range res.DuplicatePaidKeys {
		m.log.Warn().
			Str("key", d.Key).
			Int("paid_rows", d.Count).
			Msg("duplicate paid key, using first paid row for paid_amount")
	}
	if res.UnparsableDateRows > 0 {
		m.log.Warn().
			Int("rows", res.UnparsableDateRows).
			Msg("expected rows with unparsable service_date keyed as NaT")
	}
	m.log.Info().
		Int("expected", res.Total()).
		Int("matched", len(res.Matched)).
		Int("unmatched", len(res.Unmatched)).
		Msg("reconciliation complete")
	return res, nil
}

// Validate checks both ledgers carry their required columns.
func Validate(expected, paid *model.Table) error {
	return errors.Join(
		schema.Expected.Validate(columnsOf(expected)),
		schema.Paid.Validate(columnsOf(paid)),
	)
}

// Match classifies every expected row as matched (its key appears in the
// paid ledger) or unmatched. Matched rows carry the net amount of the
// first paid row with the same key; unmatched rows carry a zero pending
// amount. A missing required column in either ledger fails the whole
// call with a *schema.Error and no partial result.
func Match(expected, paid *model.Table) (*model.ReconciliationResult, error) {
	if err := Validate(expected, paid); err != nil {
		return nil, err
	}

	firstPaid := make(map[string]int, len(paid.Rows))
	paidCount := make(map[string]int, len(paid.Rows))
	var dupOrder []string
	for i, row := range paid.Rows {
		k := KeyFor(row).String()
		paidCount[k]++
		if paidCount[k] == 1 {
			firstPaid[k] = i
		} else if paidCount[k] == 2 {
			dupOrder = append(dupOrder, k)
		}
	}

	res := &model.ReconciliationResult{
		Matched:   make([]model.ReconciledRow, 0, len(expected.Rows)),
		Unmatched: make([]model.PendingRow, 0),
	}
	for _, k := range dupOrder {
		res.DuplicatePaidKeys = append(res.DuplicatePaidKeys, model.DuplicateKey{Key: k, Count: paidCount[k]})
	}

	physicians := newRollups()
	insurers := newRollups()

	for i, row := range expected.Rows {
		key := KeyFor(row)
		if key.ServiceDate == model.NaT {
			res.UnparsableDateRows++
		}
		k := key.String()
		physician := physicians.get(physicianKey(key), normalize.DisplayName(row.Get(schema.PhysicianName)))
		insurer := insurers.get(normalize.GroupLabel(row.Get(schema.Insurer), model.UnspecifiedPeerGroup), "")

		idx, ok := firstPaid[k]
		if ok {
			amount := normalize.ParseDecimal(paid.Rows[idx].Get(schema.NetAmount))
			res.Matched = append(res.Matched, model.ReconciledRow{
				SourceRow:  i + 1,
				Row:        withField(row, schema.PaidAmount, formatAmount(amount)),
				Key:        k,
				PaidAmount: amount,
			})
			physician.matched(amount)
			insurer.matched(amount)
			continue
		}
		res.Unmatched = append(res.Unmatched, model.PendingRow{
			SourceRow:     i + 1,
			Row:           withField(row, schema.PendingAmount, "0"),
			Key:           k,
			PendingAmount: decimal.Zero,
		})
		physician.unmatched()
		insurer.unmatched()
	}

	res.ByPhysician = physicians.list()
	res.ByInsurer = insurers.list()
	return res, nil
}

func physicianKey(k model.MatchKey) string {
	if k.Physician == "" {
		return model.UnspecifiedPeerGroup
	}
	return k.Physician
}

func columnsOf(t *model.Table) []string {
	if t == nil {
		return nil
	}
	return t.Columns
}

// withField returns a copy of row with col set to v.
func withField(row model.Row, col, v string) model.Row {
	out := make(model.Row, len(row)+1)
	for k, val := range row {
		out[k] = val
	}
	out[col] = v
	return out
}

func formatAmount(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
