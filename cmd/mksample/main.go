// mksample writes the demo billing dataset (three physicians, 24 services)
// and optionally a paid ledger derived from it with some services dropped.
// Usage: go run ./cmd/mksample --out testdata/billing.xlsx --paid testdata/paid.csv --drop 0.25
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	goparquet "github.com/parquet-go/parquet-go"

	"github.com/gyeh/revshare/internal/report"
	"github.com/gyeh/revshare/internal/schema"
)

// billingHeader is the clinic export's header row.
var billingHeader = []string{
	"Profesional", "Aseguradora", "Nº de Episodio", "Nombre paciente",
	"Fecha del Servicio", "Descripción de Prestación", "Importe HHMM", "% Liquidación",
}

var paidHeader = []string{
	schema.ServiceDate, schema.PatientID, schema.ProcedureDescription, schema.PhysicianName, schema.NetAmount,
}

type service struct {
	Physician string `parquet:"Profesional"`
	Insurer   string `parquet:"Aseguradora"`
	Episode   string `parquet:"Nº de Episodio"`
	Patient   string `parquet:"Nombre paciente"`
	Date      string `parquet:"Fecha del Servicio"`
	Procedure string `parquet:"Descripción de Prestación"`
	Amount    string `parquet:"Importe HHMM"`
	SettlePct string `parquet:"% Liquidación"`
}

func (s service) values() []string {
	return []string{s.Physician, s.Insurer, s.Episode, s.Patient, s.Date, s.Procedure, s.Amount, s.SettlePct}
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sampleServices() []service {
	var out []service
	for i := 0; i < 10; i++ {
		proc := "CONSULTA"
		if i%2 != 0 {
			proc = "REVISION"
		}
		out = append(out, service{
			Physician: "FALLONE, JAN", Insurer: "AXA SALUD",
			Episode: strconv.Itoa(1013682955 + i), Patient: fmt.Sprintf("PACIENTE %d", i+1),
			Date: fmt.Sprintf("2025-12-%02d", 20+i), Procedure: proc,
			Amount: amount(19.6 + float64(i)), SettlePct: "70",
		})
	}
	for i := 0; i < 8; i++ {
		proc := "CONSULTA"
		if i%3 != 0 {
			proc = "REVISION"
		}
		out = append(out, service{
			Physician: "ORTEGA RODRIGUEZ, JUAN PABLO", Insurer: "CIGNA SALUD",
			Episode: strconv.Itoa(1013676822 + i), Patient: fmt.Sprintf("PACIENTE %d", i+11),
			Date: fmt.Sprintf("2025-12-%02d", 15+i), Procedure: proc,
			Amount: amount(21.0 + float64(i)), SettlePct: "70",
		})
	}
	for i := 0; i < 6; i++ {
		proc, pct := "ECOGRAFIA MUSCULAR O TENDINOSA", "40"
		if i%2 != 0 {
			proc, pct = "CONSULTA", "70"
		}
		out = append(out, service{
			Physician: "ESTEBAN FELIU, IGNACIO", Insurer: "AXA SALUD",
			Episode: strconv.Itoa(1013666452 + i), Patient: fmt.Sprintf("PACIENTE %d", i+21),
			Date: fmt.Sprintf("2025-12-%02d", 10+i), Procedure: proc,
			Amount: amount(12.0 + float64(i)), SettlePct: pct,
		})
	}
	return out
}

// paidRows keeps each service with probability 1-drop. Physician names are
// written in "GIVEN SURNAME" order and dates day-first so the ledgers
// only agree after normalization.
func paidRows(services []service, drop float64, rng *rand.Rand) [][]string {
	var rows [][]string
	for _, s := range services {
		if rng.Float64() < drop {
			continue
		}
		name := s.Physician
		if surname, given, ok := strings.Cut(s.Physician, ","); ok {
			name = strings.TrimSpace(given) + " " + strings.TrimSpace(surname)
		}
		date := s.Date
		if len(date) == 10 {
			date = date[8:10] + "/" + date[5:7] + "/" + date[0:4]
		}
		rows = append(rows, []string{date, s.Episode, strings.ToLower(s.Procedure), name, s.Amount})
	}
	return rows
}

func main() {
	out := flag.String("out", "testdata/billing.csv", "billing output (.csv, .xlsx or .parquet)")
	paid := flag.String("paid", "", "optional paid ledger output (.csv or .xlsx)")
	drop := flag.Float64("drop", 0.25, "fraction of services left out of the paid ledger")
	seed := flag.Int64("seed", 1, "random seed for the paid ledger")
	flag.Parse()

	services := sampleServices()
	rows := make([][]string, len(services))
	for i, s := range services {
		rows[i] = s.values()
	}

	if err := write(*out, billingHeader, rows, services); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d services to %s\n", len(services), *out)

	if *paid != "" {
		if *drop < 0 || *drop > 1 {
			fmt.Fprintln(os.Stderr, "--drop must be between 0 and 1")
			os.Exit(1)
		}
		p := paidRows(services, *drop, rand.New(rand.NewSource(*seed)))
		if err := write(*paid, paidHeader, p, nil); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", *paid, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d paid services to %s (%d pending)\n", len(p), *paid, len(services)-len(p))
	}
}

func write(path string, header []string, rows [][]string, services []service) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		sheet := report.Sheet{Name: "Liquidacion", Header: header}
		for _, r := range rows {
			row := make([]any, len(r))
			for i, v := range r {
				row[i] = v
			}
			sheet.Rows = append(sheet.Rows, row)
		}
		return report.WriteWorkbook(path, sheet)
	case ".parquet":
		if services == nil {
			return fmt.Errorf("parquet output is only supported for the billing dataset")
		}
		return writeParquet(path, services)
	default:
		return writeCSV(path, header, rows)
	}
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	w.Write(header)
	w.WriteAll(rows)
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeParquet(path string, services []service) error {
	outFile, err := os.Create(path)
	if err != nil {
		return err
	}
	writer := goparquet.NewGenericWriter[service](outFile)
	if _, err := writer.Write(services); err != nil {
		outFile.Close()
		return fmt.Errorf("write rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		outFile.Close()
		return fmt.Errorf("close writer: %w", err)
	}
	return outFile.Close()
}
