package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

type ExcelWriter struct{}

// Write saves all sheets into a single workbook at path.
func (w *ExcelWriter) Write(path string, sheets []Sheet) error {
	file := excelize.NewFile()
	defer file.Close()

	namer := newSheetNamer()
	for i, sheet := range sheets {
		name := namer.claim(sheet.Name)
		if i == 0 {
			if err := file.SetSheetName(file.GetSheetName(0), name); err != nil {
				return fmt.Errorf("rename sheet %q: %w", name, err)
			}
		} else if _, err := file.NewSheet(name); err != nil {
			return fmt.Errorf("add sheet %q: %w", name, err)
		}

		if err := writeSheet(file, name, sheet); err != nil {
			return err
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}
	return nil
}

func writeSheet(file *excelize.File, name string, sheet Sheet) error {
	for col, header := range sheet.Headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(name, cell, header); err != nil {
			return fmt.Errorf("set excel header %s on %q: %w", cell, name, err)
		}
	}

	for i, row := range sheet.Rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := file.SetCellValue(name, cell, value); err != nil {
				return fmt.Errorf("set excel value %s on %q: %w", cell, name, err)
			}
		}
	}
	return nil
}
