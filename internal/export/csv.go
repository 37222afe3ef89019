package export

import (
	"encoding/csv"
	"io"
)

// BOM lets Excel on Windows detect UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the table as a BOM-prefixed CSV.
func WriteCSV(w io.Writer, t *Table) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}
