package report

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/revshare/internal/compensation"
	"github.com/gyeh/revshare/internal/model"
	"github.com/gyeh/revshare/internal/normalize"
)

// WriteCompensationParquet writes one fixed-point row per physician.
func WriteCompensationParquet(path string, runID uuid.UUID, rep compensation.Report) error {
	rows := make([]model.CompensationRow, len(rep.Results))
	for i, r := range rep.Results {
		rows[i] = normalize.ToCompensationRow(runID, r)
	}
	return writeParquet(path, rows)
}

// WriteReconciliationParquet writes one row per expected service,
// matched rows first.
func WriteReconciliationParquet(path string, runID uuid.UUID, res *model.ReconciliationResult) error {
	return writeParquet(path, normalize.ToReconciliationRows(runID, res))
}

func writeParquet[T any](path string, rows []T) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := parquet.NewGenericWriter[T](out)
	if _, err := w.Write(rows); err != nil {
		out.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		out.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return out.Close()
}
