package tabular

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteXLSXFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	headers := []string{"name", "meta.date"}
	table := [][]string{
		{"alpha", "2022-01-01"},
		{"beta", ""},
	}

	if err := WriteXLSXFile(path, headers, table); err != nil {
		t.Fatalf("WriteXLSXFile() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer func() {
		_ = f.Close()
	}()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if !reflect.DeepEqual(rows[0], headers) {
		t.Errorf("header row = %v, want %v", rows[0], headers)
	}
	if rows[1][0] != "alpha" || rows[1][1] != "2022-01-01" {
		t.Errorf("data row = %v", rows[1])
	}
}
