package model

import "github.com/google/uuid"

// CompensationRow is the flat, fixed-point form of a CompensationResult
// used for Parquet export and COPY into revshare.compensation_results.
// Money is int64 cents; percentages are int32 basis points.
type CompensationRow struct {
	RunID               uuid.UUID `parquet:"-"`
	Physician           string    `parquet:"physician"`
	PeerGroup           string    `parquet:"peer_group"`
	Tier                string    `parquet:"tier"`
	RecordCount         int64     `parquet:"record_count"`
	GrossTotalCents     int64     `parquet:"gross_total_cents"`
	NetTotalCents       int64     `parquet:"net_total_cents"`
	PeerAverageCents    int64     `parquet:"peer_average_cents"`
	AboveAverage        bool      `parquet:"above_average"`
	PhysicianPctBPS     int32     `parquet:"physician_pct_bps"`
	PhysicianShareCents int64     `parquet:"physician_share_cents"`
	FacilityPctBPS      int32     `parquet:"facility_pct_bps"`
	FacilityShareCents  int64     `parquet:"facility_share_cents"`
}

// CompensationColumns returns the ordered column names for COPY.
func CompensationColumns() []string {
	return []string{
		"run_id",
		"physician",
		"peer_group",
		"tier",
		"record_count",
		"gross_total_cents",
		"net_total_cents",
		"peer_average_cents",
		"above_average",
		"physician_pct_bps",
		"physician_share_cents",
		"facility_pct_bps",
		"facility_share_cents",
	}
}

// CopyValues returns the row values in CompensationColumns order.
func (r *CompensationRow) CopyValues() []any {
	return []any{
		r.RunID,
		r.Physician,
		r.PeerGroup,
		r.Tier,
		r.RecordCount,
		r.GrossTotalCents,
		r.NetTotalCents,
		r.PeerAverageCents,
		r.AboveAverage,
		r.PhysicianPctBPS,
		r.PhysicianShareCents,
		r.FacilityPctBPS,
		r.FacilityShareCents,
	}
}

// PeerGroupRow is the fixed-point form of a PeerGroupAverage.
type PeerGroupRow struct {
	RunID            uuid.UUID `parquet:"-"`
	PeerGroup        string    `parquet:"peer_group"`
	TotalBilledCents int64     `parquet:"total_billed_cents"`
	PhysicianCount   int64     `parquet:"physician_count"`
	AverageCents     int64     `parquet:"average_cents"`
}

// PeerGroupColumns returns the ordered column names for COPY.
func PeerGroupColumns() []string {
	return []string{"run_id", "peer_group", "total_billed_cents", "physician_count", "average_cents"}
}

// CopyValues returns the row values in PeerGroupColumns order.
func (r *PeerGroupRow) CopyValues() []any {
	return []any{r.RunID, r.PeerGroup, r.TotalBilledCents, r.PhysicianCount, r.AverageCents}
}

// ReconciliationRow is one classified expected service.
// PaidAmountCents is nil for pending rows and for paid rows whose
// counterpart amount did not parse.
type ReconciliationRow struct {
	RunID           uuid.UUID `parquet:"-"`
	SourceRow       int64     `parquet:"source_row"`
	MatchKey        string    `parquet:"match_key"`
	Status          string    `parquet:"status"`
	Physician       string    `parquet:"physician"`
	Insurer         *string   `parquet:"insurer,optional"`
	PaidAmountCents *int64    `parquet:"paid_amount_cents,optional"`
}

// Reconciliation row statuses.
const (
	StatusPaid    = "paid"
	StatusPending = "pending"
)

// ReconciliationColumns returns the ordered column names for COPY.
func ReconciliationColumns() []string {
	return []string{"run_id", "source_row", "match_key", "status", "physician", "insurer", "paid_amount_cents"}
}

// CopyValues returns the row values in ReconciliationColumns order.
func (r *ReconciliationRow) CopyValues() []any {
	return []any{r.RunID, r.SourceRow, r.MatchKey, r.Status, r.Physician, r.Insurer, r.PaidAmountCents}
}
