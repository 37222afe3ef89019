package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// WriteXLSX writes one worksheet per table, in order.
func WriteXLSX(w io.Writer, tables ...*Table) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	for i, t := range tables {
		name := sheetName(t.Name, i)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("renaming sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}

		if err := writeRow(f, name, 1, t.Header); err != nil {
			return err
		}
		if len(t.Header) > 0 {
			last, _ := excelize.CoordinatesToCellName(len(t.Header), 1)
			if err := f.SetCellStyle(name, "A1", last, bold); err != nil {
				return fmt.Errorf("styling header: %w", err)
			}
		}
		for r, row := range t.Rows {
			if err := writeRow(f, name, r+2, row); err != nil {
				return err
			}
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func writeRow(f *excelize.File, sheet string, row int, cells []string) error {
	if len(cells) == 0 {
		return nil
	}
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, start, &values); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}

func sheetName(name string, i int) string {
	if name == "" {
		return fmt.Sprintf("Sheet%d", i+1)
	}
	if len(name) > maxSheetName {
		return name[:maxSheetName]
	}
	return name
}
