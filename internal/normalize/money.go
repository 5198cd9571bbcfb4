package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred       = decimal.NewFromInt(100)
	currencyStrip = strings.NewReplacer("€", "", "$", "", "%", "", " ", "", " ", "", "'", "")
)

// ParseDecimal parses a tolerant numeric string: currency symbols, percent
// signs and spaces are ignored, and a lone comma is read as the decimal
// separator. Returns nil for empty or non-numeric input.
func ParseDecimal(s string) *decimal.Decimal {
	s = currencyStrip.Replace(strings.TrimSpace(s))
	if s == "" {
		return nil
	}
	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		// 1.234,56
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0 && dot >= 0:
		// 1,234.56
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0 && strings.Count(s, ",") == 1:
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0:
		s = strings.ReplaceAll(s, ",", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// GrossAmount derives the full service value from the net amount and the
// settlement percentage.
//
//	net nil             -> nil
//	pct nil or pct <= 0 -> net unchanged
//	otherwise           -> net / (pct/100)
func GrossAmount(net, pct *decimal.Decimal) *decimal.Decimal {
	if net == nil {
		return nil
	}
	if pct == nil || !pct.IsPositive() {
		g := *net
		return &g
	}
	g := net.Mul(hundred).Div(*pct)
	return &g
}

// Cents converts a decimal amount to int64 cents, rounding half away from zero.
func Cents(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}

// DecimalToCents converts a nullable decimal amount to nullable int64 cents.
func DecimalToCents(v *decimal.Decimal) *int64 {
	if v == nil {
		return nil
	}
	c := Cents(*v)
	return &c
}

// PercentToBasisPoints converts a percentage to int32 basis points.
// e.g. 12.34% → 1234 bps.
func PercentToBasisPoints(v decimal.Decimal) int32 {
	return int32(v.Mul(hundred).Round(0).IntPart())
}
