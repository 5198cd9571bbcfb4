package tabular

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
)

// readParquet reads a flat parquet file. Every leaf column becomes a
// table column named after its top-level field; values are rendered as
// strings and nulls become empty cells.
func readParquet(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open parquet file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, nil, fmt.Errorf("open parquet: %w", err)
	}

	leaves := pf.Schema().Columns()
	header := make([]string, len(leaves))
	for i, path := range leaves {
		if len(path) > 0 {
			header[i] = path[0]
		}
	}

	records := make([][]string, 0, pf.NumRows())
	buf := make([]parquet.Row, 256)
	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				rec := make([]string, len(header))
				for _, v := range row {
					col := v.Column()
					if col < 0 || col >= len(rec) || v.IsNull() {
						continue
					}
					rec[col] = v.String()
				}
				records = append(records, rec)
			}
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				rows.Close()
				return nil, nil, fmt.Errorf("read parquet rows: %w", err)
			}
		}
		if err := rows.Close(); err != nil {
			return nil, nil, fmt.Errorf("close row group: %w", err)
		}
	}
	return header, records, nil
}
