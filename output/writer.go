package output

import (
	"fmt"
	"strings"
)

// Sheet is one named table of report rows. The header order is fixed by the
// report package and must be written exactly as given.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]string
}

type Writer interface {
	Write(path string, sheets []Sheet) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "", "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Extension returns the file extension for a format accepted by
// WriterForFormat.
func Extension(format string) string {
	if normalizeFormat(format) == "csv" {
		return "csv"
	}
	return "xlsx"
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}
