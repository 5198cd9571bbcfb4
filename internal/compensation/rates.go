package compensation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gyeh/revshare/internal/model"
)

// Split holds the physician percentage above and below the peer average.
type Split struct {
	Above decimal.Decimal `json:"above"`
	Below decimal.Decimal `json:"below"`
}

// Rates is the tiered percentage-split table. Tiers without an entry use
// Fallback.
type Rates struct {
	Tiers    map[model.Tier]Split
	Fallback Split
}

// DefaultRates returns the practice's split table.
//
//	SENIOR      92 / 88
//	SPECIALIST  90 / 85
//	other       90 / 90
func DefaultRates() Rates {
	return Rates{
		Tiers: map[model.Tier]Split{
			model.TierSenior:     {Above: decimal.NewFromInt(92), Below: decimal.NewFromInt(88)},
			model.TierSpecialist: {Above: decimal.NewFromInt(90), Below: decimal.NewFromInt(85)},
		},
		Fallback: Split{Above: decimal.NewFromInt(90), Below: decimal.NewFromInt(90)},
	}
}

// Percent returns the physician percentage for tier on the given side of
// the peer average.
func (r Rates) Percent(tier model.Tier, above bool) decimal.Decimal {
	s, ok := r.Tiers[tier]
	if !ok {
		s = r.Fallback
	}
	if above {
		return s.Above
	}
	return s.Below
}

// With returns a copy of r with tier's split replaced.
func (r Rates) With(tier model.Tier, s Split) Rates {
	out := Rates{Tiers: make(map[model.Tier]Split, len(r.Tiers)+1), Fallback: r.Fallback}
	for k, v := range r.Tiers {
		out.Tiers[k] = v
	}
	if tier == model.TierUnspecified {
		out.Fallback = s
	} else {
		out.Tiers[tier] = s
	}
	return out
}

// Validate checks every percentage lies in [0, 100].
func (r Rates) Validate() error {
	check := func(name string, s Split) error {
		for _, p := range []decimal.Decimal{s.Above, s.Below} {
			if p.IsNegative() || p.GreaterThan(decimal.NewFromInt(100)) {
				return fmt.Errorf("rate for %s out of range: %s", name, p)
			}
		}
		return nil
	}
	for tier, s := range r.Tiers {
		if err := check(string(tier), s); err != nil {
			return err
		}
	}
	return check("fallback", r.Fallback)
}
