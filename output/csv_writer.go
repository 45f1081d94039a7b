package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CSVWriter writes one CSV file per sheet, since CSV has no multi-sheet
// concept. The sheet name is appended to the base of path.
type CSVWriter struct{}

func (w *CSVWriter) Write(path string, sheets []Sheet) error {
	namer := newSheetNamer()
	for _, sheet := range sheets {
		if err := writeCSVSheet(sheetPath(path, namer.claim(sheet.Name)), sheet); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVSheet(path string, sheet Sheet) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(sheet.Headers); err != nil {
		return fmt.Errorf("write csv header %s: %w", path, err)
	}
	for _, row := range sheet.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output %s: %w", path, err)
	}
	return nil
}

func sheetPath(path, sheetName string) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	slug := strings.Join(strings.Fields(sheetName), "_")
	return base + "_" + slug + ext
}
