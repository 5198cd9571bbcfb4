// Package report renders compensation and reconciliation results as
// spreadsheets, parquet files and plain-text summaries.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// maxSheetName is the spreadsheet limit on sheet name length.
const maxSheetName = 31

// Sheet is one worksheet: a header row followed by data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// WriteWorkbook writes sheets in order to a new xlsx file at path. The
// header row of every sheet is bold and frozen.
func WriteWorkbook(path string, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("write workbook %s: no sheets", path)
	}
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	first := f.GetSheetName(0)
	for i, s := range sheets {
		name := s.Name
		if len(name) > maxSheetName {
			name = name[:maxSheetName]
		}
		if i == 0 {
			if err := f.SetSheetName(first, name); err != nil {
				return fmt.Errorf("rename sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("add sheet %q: %w", name, err)
		}
		if err := writeSheet(f, name, s, bold); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, s Sheet, headerStyle int) error {
	header := make([]any, len(s.Header))
	for i, h := range s.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("sheet %q header: %w", name, err)
	}
	if len(s.Header) > 0 {
		if err := f.SetRowStyle(name, 1, 1, headerStyle); err != nil {
			return fmt.Errorf("sheet %q header style: %w", name, err)
		}
		if err := f.SetPanes(name, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("sheet %q panes: %w", name, err)
		}
	}
	for i, row := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(name, cell, &r); err != nil {
			return fmt.Errorf("sheet %q row %d: %w", name, i+1, err)
		}
	}
	return nil
}
