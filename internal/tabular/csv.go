package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// WriteCSV writes the header row followed by every table row.
func WriteCSV(w io.Writer, headers []string, table [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	for i, row := range table {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the table to a CSV file at path.
func WriteCSVFile(path string, headers []string, table [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	if err := WriteCSV(f, headers, table); err != nil {
		return err
	}
	return f.Close()
}
