// json2table flattens a JSON array of records into a CSV or XLSX table.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docutab/docutab/internal/tabular"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		output  = flag.String("output", "", "path for the output file (defaults to input name with .csv/.xlsx extension)")
		headers = flag.String("headers", "", "comma-separated headers to include (default: sorted union of all keys)")
		toCSV   = flag.Bool("to-csv", false, "write CSV output (default)")
		toXLSX  = flag.Bool("to-xlsx", false, "write XLSX output")
		sortBy  = flag.String("sort-by", "release_date", "field the rows are sorted by before projection")
		pretty  = flag.Bool("pretty", false, "print the flattened first record to stderr")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		logger.Error("usage: json2table <json_file> [flags]")
		return 1
	}
	inputPath := flag.Arg(0)

	if *toCSV && *toXLSX {
		logger.Error("flags --to-csv and --to-xlsx are mutually exclusive")
		return 1
	}
	useXLSX := *toXLSX

	records, err := loadRecords(inputPath)
	if err != nil {
		logger.Error("failed to load input", "path", inputPath, "error", err)
		return 1
	}

	outPath := *output
	if outPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		if useXLSX {
			outPath = base + ".xlsx"
		} else {
			outPath = base + ".csv"
		}
	}

	tabular.SortByField(records, *sortBy)

	table, headerSet, err := tabular.Project(records, splitList(*headers))
	if err != nil {
		logger.Error("nothing to convert", "path", inputPath, "error", err)
		return 1
	}

	if useXLSX {
		err = tabular.WriteXLSXFile(outPath, headerSet, table)
	} else {
		err = tabular.WriteCSVFile(outPath, headerSet, table)
	}
	if err != nil {
		logger.Error("failed to write table", "path", outPath, "error", err)
		return 1
	}
	logger.Info("converted", "input", inputPath, "output", outPath, "rows", len(table), "columns", len(headerSet))

	if *pretty && len(records) > 0 {
		printFlattened(records[0])
	}
	return 0
}

// loadRecords reads a JSON array of objects; a single top-level object is
// wrapped into a one-element batch.
func loadRecords(path string) ([]map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	switch v := raw.(type) {
	case []any:
		records := make([]map[string]any, 0, len(v))
		for i, el := range v {
			obj, ok := el.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("element %d is not a JSON object", i)
			}
			records = append(records, obj)
		}
		return records, nil
	case map[string]any:
		return []map[string]any{v}, nil
	default:
		return nil, fmt.Errorf("top-level JSON must be an object or array of objects")
	}
}

func printFlattened(record map[string]any) {
	flat := tabular.Flatten(record)
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintln(os.Stderr, "\nFlattened structure (first record):")
	for _, k := range keys {
		fmt.Fprintf(os.Stderr, "%s: %s\n", k, tabular.RenderCell(flat[k]))
	}
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
