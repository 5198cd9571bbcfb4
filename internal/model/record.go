package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tier classifies a physician for the percentage-split table.
type Tier string

const (
	TierSenior      Tier = "SENIOR"
	TierSpecialist  Tier = "SPECIALIST"
	TierUnspecified Tier = "UNSPECIFIED"
)

// UnspecifiedPeerGroup is assigned to physicians missing from the registry.
const UnspecifiedPeerGroup = "UNSPECIFIED"

// ParseTier maps a tier label to a Tier. The original registry labels
// (CONSULTOR, ESPECIALISTA) are accepted as aliases.
func ParseTier(s string) (Tier, bool) {
	switch s {
	case "SENIOR", "CONSULTOR":
		return TierSenior, true
	case "SPECIALIST", "ESPECIALISTA":
		return TierSpecialist, true
	case "UNSPECIFIED", "":
		return TierUnspecified, true
	}
	return TierUnspecified, false
}

// PhysicianProfile is a static registry entry.
type PhysicianProfile struct {
	Name      string `yaml:"name" json:"name"`
	PeerGroup string `yaml:"peer_group" json:"peer_group"`
	Tier      Tier   `yaml:"tier" json:"tier"`
}

// UnknownProfile returns the sentinel profile for a physician that is not
// in the registry.
func UnknownProfile(name string) PhysicianProfile {
	return PhysicianProfile{Name: name, PeerGroup: UnspecifiedPeerGroup, Tier: TierUnspecified}
}

// ServiceRecord is one normalized billed service.
// Nil pointer fields failed to parse and are excluded from aggregates.
type ServiceRecord struct {
	SourceRow int

	ServiceDate          *time.Time
	Physician            string
	PatientID            string
	ProcedureDescription string
	Insurer              string

	NetAmount     *decimal.Decimal
	SettlementPct *decimal.Decimal
	GrossAmount   *decimal.Decimal

	PeerGroup string
	Tier      Tier

	Source Row
}
