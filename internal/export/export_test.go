package export_test

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"khata/internal/export"
)

func sample() *export.Table {
	t := &export.Table{Name: "Sales Summary", Header: []string{"Month", "Total"}}
	t.Append("2025-05", "1,180.00")
	t.Append("2025-04", "59000.00")
	return t
}

func TestWriteCSV_BOMAndRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, sample()))

	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, export.BOM))

	rows, err := csv.NewReader(bytes.NewReader(raw[len(export.BOM):])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Month", "Total"}, {"2025-05", "1,180.00"}, {"2025-04", "59000.00"}}, rows)
}

func TestWriteXLSX_Sheets(t *testing.T) {
	second := &export.Table{Name: "A very long sheet name that exceeds the limit", Header: []string{"X"}}
	second.Append("1")

	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, sample(), second))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 2)
	assert.Equal(t, "Sales Summary", sheets[0])
	assert.Len(t, sheets[1], 31)

	rows, err := f.GetRows("Sales Summary")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Month", "Total"}, rows[0])
	assert.Equal(t, "59000.00", rows[2][1])
}

func TestWriteZIP(t *testing.T) {
	customers := &export.Table{Name: "customers", Header: []string{"Name"}}
	customers.Append("Acme")
	vendors := &export.Table{Name: "vendors", Header: []string{"Name"}}

	var buf bytes.Buffer
	require.NoError(t, export.WriteZIP(&buf, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), customers, vendors))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.Equal(t, "customers.csv", zr.File[0].Name)
	assert.Equal(t, "vendors.csv", zr.File[1].Name)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "\ufeffName\nAcme\n", string(body))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]export.Format{"": export.FormatJSON, "CSV": export.FormatCSV, " xlsx ": export.FormatXLSX} {
		got, ok := export.ParseFormat(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := export.ParseFormat("pdf")
	assert.False(t, ok)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"aging receivables", "aging_receivables"},
		{"tds/register 2025", "tds_register_2025"},
		{"__a!!b__", "a_b"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, export.SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "gst_register_2025-04-01.xlsx", export.BuildFilename("gst register", day, "xlsx"))
}

func TestMoneyAndDate(t *testing.T) {
	assert.Equal(t, "10.50", export.Money(decimal.RequireFromString("10.5")))
	assert.Equal(t, "", export.Date(time.Time{}))
	assert.Equal(t, "Yes", export.YesNo(true))
}
