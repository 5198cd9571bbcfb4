package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/pgzip"
)

func readCSV(path string, gzipped bool) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	var src io.Reader = file
	if gzipped {
		gz, err := pgzip.NewReader(file)
		if err != nil {
			return nil, nil, fmt.Errorf("open gzip %s: %w", path, err)
		}
		defer gz.Close()
		src = gz
	}
	return ReadCSV(src)
}

// ReadCSV parses delimited text with a header row. A UTF-8 BOM is
// skipped and the delimiter is ';' when the header has more semicolons
// than commas.
func ReadCSV(src io.Reader) ([]string, [][]string, error) {
	br := bufio.NewReaderSize(src, 256*1024)

	bom, err := br.Peek(3)
	if err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		br.Discard(3)
	}

	reader := csv.NewReader(br)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.Comma = sniffDelimiter(br)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("read header: empty file")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row %d: %w", len(records)+2, err)
		}
		records = append(records, rec)
	}
	return header, records, nil
}

func sniffDelimiter(br *bufio.Reader) rune {
	line, _ := br.Peek(br.Buffered())
	if len(line) == 0 {
		line, _ = br.Peek(4096)
	}
	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}
