package schema

import (
	"strings"
)

// Aliases maps a lowercased source header to its canonical column name.
type Aliases map[string]string

// DefaultAliases covers the headers of the clinic's billing exports.
func DefaultAliases() Aliases {
	return Aliases{
		"fecha del servicio":        ServiceDate,
		"fecha":                     ServiceDate,
		"date":                      ServiceDate,
		"profesional":               PhysicianName,
		"medico":                    PhysicianName,
		"médico":                    PhysicianName,
		"physician":                 PhysicianName,
		"nº de episodio":            PatientID,
		"nombre paciente":           PatientID,
		"paciente":                  PatientID,
		"patient":                   PatientID,
		"descripción de prestación": ProcedureDescription,
		"descripcion de prestacion": ProcedureDescription,
		"prestación":                ProcedureDescription,
		"procedure":                 ProcedureDescription,
		"aseguradora":               Insurer,
		"payer":                     Insurer,
		"importe hhmm":              NetAmount,
		"importe":                   NetAmount,
		"amount":                    NetAmount,
		"% liquidación":             SettlementPct,
		"% liquidacion":             SettlementPct,
	}
}

// Merge returns a copy of a with every entry of extra added; extra wins.
func (a Aliases) Merge(extra map[string]string) Aliases {
	out := make(Aliases, len(a)+len(extra))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range extra {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}

// Canonical returns the canonical name for a source header. Headers that
// already are canonical, or have no alias, are returned trimmed.
func (a Aliases) Canonical(header string) string {
	h := strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
	if c, ok := a[strings.ToLower(h)]; ok {
		return c
	}
	return h
}
