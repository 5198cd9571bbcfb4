// Package tabular loads csv, csv.gz, xlsx and parquet files into
// in-memory tables with canonical column names.
package tabular

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gyeh/revshare/internal/model"
	"github.com/gyeh/revshare/internal/normalize"
	"github.com/gyeh/revshare/internal/schema"
)

// Format identifies a supported file layout.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatCSVGzip Format = "csv.gz"
	FormatXLSX    Format = "xlsx"
	FormatParquet Format = "parquet"
)

// DetectFormat picks the reader from the file extension.
func DetectFormat(path string) (Format, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".csv.gz"):
		return FormatCSVGzip, nil
	case strings.HasSuffix(lower, ".csv"), strings.HasSuffix(lower, ".txt"):
		return FormatCSV, nil
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xlsm"):
		return FormatXLSX, nil
	case strings.HasSuffix(lower, ".parquet"):
		return FormatParquet, nil
	}
	return "", fmt.Errorf("unsupported file type %q (want .csv, .csv.gz, .xlsx or .parquet)", filepath.Ext(path))
}

// Open reads the file at path into a table named after the file. Source
// headers are renamed through aliases; a nil aliases map uses the defaults.
func Open(path string, aliases schema.Aliases) (*model.Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if aliases == nil {
		aliases = schema.DefaultAliases()
	}

	var header []string
	var records [][]string
	switch format {
	case FormatCSV:
		header, records, err = readCSV(path, false)
	case FormatCSVGzip:
		header, records, err = readCSV(path, true)
	case FormatXLSX:
		header, records, err = readXLSX(path)
	case FormatParquet:
		header, records, err = readParquet(path)
	}
	if err != nil {
		return nil, err
	}
	tbl := Build(filepath.Base(path), header, records, aliases)
	if format == FormatXLSX {
		isoSerialDates(tbl)
	}
	return tbl, nil
}

// isoSerialDates rewrites spreadsheet serial day numbers in the
// service_date column as ISO dates. Text cells are left alone.
func isoSerialDates(tbl *model.Table) {
	if !tbl.HasColumn(schema.ServiceDate) {
		return
	}
	for _, row := range tbl.Rows {
		if d := normalize.ParseExcelSerial(row[schema.ServiceDate]); d != nil {
			row[schema.ServiceDate] = d.Format(normalize.ISODate)
		}
	}
}

// Build assembles a table from a raw header and records. Headers are
// canonicalised through aliases; when two headers map to the same
// canonical name the first one wins and later ones are dropped. Fully
// blank records are skipped.
func Build(name string, header []string, records [][]string, aliases schema.Aliases) *model.Table {
	if aliases == nil {
		aliases = schema.DefaultAliases()
	}
	t := &model.Table{Name: name}
	keep := make([]int, 0, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		c := aliases.Canonical(h)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		keep = append(keep, i)
		t.Columns = append(t.Columns, c)
	}

	values := make([]string, len(keep))
	for _, rec := range records {
		if blank(rec) {
			continue
		}
		for j, idx := range keep {
			if idx < len(rec) {
				values[j] = strings.TrimSpace(rec[idx])
			} else {
				values[j] = ""
			}
		}
		t.Append(values...)
	}
	return t
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
