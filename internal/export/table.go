// Package export renders tabular report data as CSV, XLSX or a ZIP bundle
// of CSV files.
package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Format is a download format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a query value to a Format. Empty means JSON.
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, true
	case FormatCSV:
		return FormatCSV, true
	case FormatXLSX:
		return FormatXLSX, true
	}
	return "", false
}

// ContentType returns the MIME type of a download format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/json"
}

// Table is a titled grid of cells with a header row.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Append adds one row.
func (t *Table) Append(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Money renders an amount with two decimals.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Date renders a calendar date, or nothing for the zero time.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// YesNo renders a flag the way spreadsheets users expect.
func YesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename replaces anything but letters, digits, hyphen and
// underscore with a single underscore and caps the result at 100 bytes.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {name}_{YYYY-MM-DD}.{ext} for Content-Disposition.
func BuildFilename(name string, day time.Time, ext string) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), day.Format("2006-01-02"), ext)
}
