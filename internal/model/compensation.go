package model

import "github.com/shopspring/decimal"

// PeerGroupAverage is the comparison baseline for one peer group.
type PeerGroupAverage struct {
	PeerGroup      string          `json:"peer_group"`
	TotalBilled    decimal.Decimal `json:"total_billed"`
	PhysicianCount int             `json:"physician_count"`
	Average        decimal.Decimal `json:"average"`
}

// CompensationResult is the revenue split for one physician.
// PhysicianPct+FacilityPct is always 100 and
// PhysicianShare+FacilityShare always equals NetTotal.
type CompensationResult struct {
	Physician      string          `json:"physician"`
	PeerGroup      string          `json:"peer_group"`
	Tier           Tier            `json:"tier"`
	RecordCount    int             `json:"record_count"`
	GrossTotal     decimal.Decimal `json:"gross_total"`
	NetTotal       decimal.Decimal `json:"net_total"`
	PeerAverage    decimal.Decimal `json:"peer_average"`
	AboveAverage   bool            `json:"above_average"`
	PhysicianPct   decimal.Decimal `json:"physician_pct"`
	PhysicianShare decimal.Decimal `json:"physician_share"`
	FacilityPct    decimal.Decimal `json:"facility_pct"`
	FacilityShare  decimal.Decimal `json:"facility_share"`
}

// ProcedureSummary aggregates one physician's services by procedure.
type ProcedureSummary struct {
	Procedure  string          `json:"procedure"`
	Units      int             `json:"units"`
	NetTotal   decimal.Decimal `json:"net_total"`
	NetMean    decimal.Decimal `json:"net_mean"`
	GrossTotal decimal.Decimal `json:"gross_total"`
}
