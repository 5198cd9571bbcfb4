package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ISODate is the layout used for dates inside match keys and exports.
const ISODate = "2006-01-02"

// Date layouts found in clinic billing exports. Slash and dash forms are
// day-first.
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2006/01/02",
	"02/01/2006 15:04:05",
	"02-01-06",
	"January 2, 2006",
	"Jan 2, 2006",
}

// Excel serial day numbers count from 1899-12-30.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

const maxExcelSerial = 2958465 // 9999-12-31

// ParseDate attempts to parse a date string in multiple common formats.
// The result is truncated to the calendar day in UTC. Returns nil if the
// input is empty or unparseable. Bare numbers are not dates here; see
// ParseExcelSerial.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}

// ParseExcelSerial converts a spreadsheet serial day number (the raw value
// of a date cell) to its calendar day. Any fractional time part is dropped.
func ParseExcelSerial(s string) *time.Time {
	serial, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || serial < 1 || serial > maxExcelSerial {
		return nil
	}
	d := excelEpoch.AddDate(0, 0, int(math.Floor(serial)))
	return &d
}

// FormatDate renders t as an ISO date, or NaT when t is nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return "NaT"
	}
	return t.Format(ISODate)
}

// InRange reports whether t falls inside the inclusive [from, to] day window.
// A nil bound is open. A nil t is never in a bounded range.
func InRange(t, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if t == nil {
		return false
	}
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}
