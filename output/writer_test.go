package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

func sampleSheets() []Sheet {
	headers := []string{"Customer", "Project", "Duration (hours)"}
	return []Sheet{
		{
			Name:    "Acme Corp",
			Headers: headers,
			Rows: [][]string{
				{"Acme Corp", "Website Relaunch", "1.50"},
				{"Acme Corp", "Website Relaunch", "N/A"},
			},
		},
		{
			Name:    "Gamma Inc",
			Headers: headers,
			Rows: [][]string{
				{"Gamma Inc", "Mobile App", "0.25"},
			},
		},
	}
}

func TestExcelWriter_OneSheetPerEntity(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.xlsx")
	writer := &ExcelWriter{}
	if err := writer.Write(path, sampleSheets()); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer file.Close()

	names := file.GetSheetList()
	if len(names) != 2 || names[0] != "Acme Corp" || names[1] != "Gamma Inc" {
		t.Fatalf("unexpected sheets: %v", names)
	}

	header, err := file.GetCellValue("Acme Corp", "A1")
	if err != nil || header != "Customer" {
		t.Fatalf("unexpected header cell: %q (%v)", header, err)
	}
	duration, err := file.GetCellValue("Acme Corp", "C2")
	if err != nil || duration != "1.50" {
		t.Fatalf("unexpected duration cell: %q (%v)", duration, err)
	}
	running, err := file.GetCellValue("Acme Corp", "C3")
	if err != nil || running != "N/A" {
		t.Fatalf("unexpected running-entry cell: %q (%v)", running, err)
	}
}

func TestCSVWriter_OneFilePerSheet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "customer_timesheets_20250315_120000.csv")
	writer := &CSVWriter{}
	if err := writer.Write(path, sampleSheets()); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	acmePath := filepath.Join(dir, "customer_timesheets_20250315_120000_Acme_Corp.csv")
	file, err := os.Open(acmePath)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(records))
	}
	if records[0][0] != "Customer" || records[1][2] != "1.50" {
		t.Fatalf("unexpected csv contents: %v", records)
	}

	if _, err := os.Stat(filepath.Join(dir, "customer_timesheets_20250315_120000_Gamma_Inc.csv")); err != nil {
		t.Fatalf("expected second sheet file: %v", err)
	}
}

func TestWriterForFormat(t *testing.T) {
	t.Parallel()

	if _, err := WriterForFormat("excel"); err != nil {
		t.Fatalf("excel format: %v", err)
	}
	if _, err := WriterForFormat("CSV"); err != nil {
		t.Fatalf("csv format: %v", err)
	}
	if _, err := WriterForFormat(""); err != nil {
		t.Fatalf("default format: %v", err)
	}
	if _, err := WriterForFormat("pdf"); err == nil {
		t.Fatal("expected error for unsupported format")
	}

	if got := Extension("csv"); got != "csv" {
		t.Fatalf("unexpected extension: %q", got)
	}
	if got := Extension("excel"); got != "xlsx" {
		t.Fatalf("unexpected extension: %q", got)
	}
}

func TestSanitizeSheetName(t *testing.T) {
	t.Parallel()

	if got := SanitizeSheetName("Acme Corp"); got != "Acme Corp" {
		t.Fatalf("unexpected name: %q", got)
	}
	if got := SanitizeSheetName("R&D [EU/US]"); got != "R&D  EU US" {
		t.Fatalf("unexpected name: %q", got)
	}
	long := "A customer with an unreasonably long display name"
	if got := SanitizeSheetName(long); utf8.RuneCountInString(got) > 31 {
		t.Fatalf("name not capped: %q", got)
	}
	if got := SanitizeSheetName("***"); got != "Sheet" {
		t.Fatalf("unexpected fallback: %q", got)
	}
}

func TestSanitizeSheetName_CapsOnRuneBoundaries(t *testing.T) {
	t.Parallel()

	digits := strings.Repeat("1234567890", 3)

	// 31 runes exactly, last one multi-byte: fits as-is.
	if got := SanitizeSheetName(digits + "ü"); got != digits+"ü" {
		t.Fatalf("31-rune name altered: %q", got)
	}

	// 32 runes: the cap must drop whole runes, never split one.
	got := SanitizeSheetName(digits + "üü")
	if got != digits+"ü" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncated name is not valid UTF-8: %q", got)
	}
}

func TestSheetNamer_SuffixesCollisionsWithinCap(t *testing.T) {
	t.Parallel()

	namer := newSheetNamer()
	long := "A customer with an unreasonably long display name"
	first := namer.claim(long)
	second := namer.claim(long)
	if first == second {
		t.Fatalf("expected distinct names, got %q twice", first)
	}
	if utf8.RuneCountInString(second) > 31 {
		t.Fatalf("suffixed name exceeds cap: %q", second)
	}
	if !strings.HasSuffix(second, " 2") {
		t.Fatalf("expected numeric suffix: %q", second)
	}
}

func TestExcelWriter_NamesSanitizingAlikeGetOwnSheets(t *testing.T) {
	t.Parallel()

	headers := []string{"Customer"}
	sheets := []Sheet{
		{Name: "R&D [EU]", Headers: headers, Rows: [][]string{{"from the first entity"}}},
		{Name: "R&D ?EU?", Headers: headers, Rows: [][]string{{"from the second entity"}}},
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	writer := &ExcelWriter{}
	if err := writer.Write(path, sheets); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer file.Close()

	names := file.GetSheetList()
	if len(names) != 2 || names[0] != "R&D  EU" || names[1] != "R&D  EU 2" {
		t.Fatalf("unexpected sheets: %v", names)
	}
	first, err := file.GetCellValue("R&D  EU", "A2")
	if err != nil || first != "from the first entity" {
		t.Fatalf("first sheet lost its rows: %q (%v)", first, err)
	}
	second, err := file.GetCellValue("R&D  EU 2", "A2")
	if err != nil || second != "from the second entity" {
		t.Fatalf("second sheet lost its rows: %q (%v)", second, err)
	}
}

func TestCSVWriter_NamesSanitizingAlikeGetOwnFiles(t *testing.T) {
	t.Parallel()

	headers := []string{"Customer"}
	sheets := []Sheet{
		{Name: "R&D [EU]", Headers: headers, Rows: [][]string{{"a"}}},
		{Name: "R&D ?EU?", Headers: headers, Rows: [][]string{{"b"}}},
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "report.csv")
	writer := &CSVWriter{}
	if err := writer.Write(path, sheets); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "report_R&D_EU.csv")); err != nil {
		t.Fatalf("expected first sheet file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "report_R&D_EU_2.csv")); err != nil {
		t.Fatalf("expected second sheet file: %v", err)
	}
}
