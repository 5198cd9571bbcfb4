package compensation

import (
	"time"

	"github.com/gyeh/revshare/internal/model"
	"github.com/gyeh/revshare/internal/normalize"
)

// Filter is the active analysis window. Nil bounds are open.
type Filter struct {
	From *time.Time
	To   *time.Time
}

// Active reports whether any bound is set.
func (f Filter) Active() bool {
	return f.From != nil || f.To != nil
}

// Apply returns the records inside the window. Records without a parsed
// service date are excluded whenever the window is bounded.
func (f Filter) Apply(records []model.ServiceRecord) []model.ServiceRecord {
	if !f.Active() {
		return records
	}
	out := make([]model.ServiceRecord, 0, len(records))
	for _, r := range records {
		if normalize.InRange(r.ServiceDate, f.From, f.To) {
			out = append(out, r)
		}
	}
	return out
}

// DateSpan returns the earliest and latest parsed service dates,
// or nils when no record has a date.
func DateSpan(records []model.ServiceRecord) (first, last *time.Time) {
	for i := range records {
		d := records[i].ServiceDate
		if d == nil {
			continue
		}
		if first == nil || d.Before(*first) {
			first = d
		}
		if last == nil || d.After(*last) {
			last = d
		}
	}
	return first, last
}

// ForPhysician returns the records billed by physician.
func ForPhysician(records []model.ServiceRecord, physician string) []model.ServiceRecord {
	var out []model.ServiceRecord
	for _, r := range records {
		if r.Physician == physician {
			out = append(out, r)
		}
	}
	return out
}
