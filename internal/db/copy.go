package db

import (
	"github.com/jackc/pgx/v5"

	"github.com/gyeh/revshare/internal/model"
)

// CopyRow is a row that can render itself in COPY column order.
type CopyRow interface {
	CopyValues() []any
}

// SliceSource implements pgx.CopyFromSource over an in-memory slice.
type SliceSource[T any, P interface {
	*T
	CopyRow
}] struct {
	rows []T
	idx  int
}

// NewSliceSource creates a CopyFromSource that yields rows in order.
func NewSliceSource[T any, P interface {
	*T
	CopyRow
}](rows []T) *SliceSource[T, P] {
	return &SliceSource[T, P]{rows: rows, idx: -1}
}

// Next advances to the next row. Returns false after the last row.
func (s *SliceSource[T, P]) Next() bool {
	s.idx++
	return s.idx < len(s.rows)
}

// Values returns the current row's values in COPY column order.
func (s *SliceSource[T, P]) Values() ([]any, error) {
	return P(&s.rows[s.idx]).CopyValues(), nil
}

// Err always returns nil; slices cannot fail mid-iteration.
func (s *SliceSource[T, P]) Err() error {
	return nil
}

// Compile-time checks that export rows satisfy the interface.
var (
	_ pgx.CopyFromSource = (*SliceSource[model.CompensationRow, *model.CompensationRow])(nil)
	_ pgx.CopyFromSource = (*SliceSource[model.ReconciliationRow, *model.ReconciliationRow])(nil)
)
