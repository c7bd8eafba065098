// pdf-extract parses PDF documents into schema-shaped JSON records using an
// OpenAI-compatible chat model, then prints the batch as a JSON array.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/docutab/docutab/internal/batch"
	"github.com/docutab/docutab/internal/common"
	"github.com/docutab/docutab/internal/extract"
	"github.com/docutab/docutab/internal/llm/openai"
	"github.com/docutab/docutab/internal/schema"
	"github.com/docutab/docutab/internal/tabular"
)

func main() {
	os.Exit(run())
}

func run() int {
	// .env is optional; real env always wins.
	_ = godotenv.Load()

	var (
		schemaPath = flag.String("schema", "", "path to JSON schema file (required)")
		output     = flag.String("output", "", "path to also save the output JSON (stdout is always written)")
		apiKey     = flag.String("api-key", "", "OpenAI API key (or env OPENAI_API_KEY)")
		apiBase    = flag.String("api-base", "", "OpenAI API base URL (or env OPENAI_API_BASE)")
		model      = flag.String("model", "", "model name (or env OPENAI_MODEL)")
		recursive  = flag.Bool("recursive", false, "walk subdirectories when the input is a directory")
		ignoreDirs = flag.String("ignore-dirs", "", "comma-separated directory names to skip in recursive mode")
		maxWorkers = flag.Int("max-workers", 0, "number of concurrent extraction workers")
		sortBy     = flag.String("sort-by", "", "field the output records are sorted by")
		pretty     = flag.Bool("pretty", false, "indent the JSON output")
	)
	flag.BoolVar(recursive, "r", false, "shorthand for -recursive")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		logger.Error("usage: pdf-extract <path> --schema <file> [flags]")
		return 1
	}
	inputPath := flag.Arg(0)

	if *schemaPath == "" {
		logger.Error("missing required flag", "flag", "--schema")
		return 1
	}

	cfg := common.LoadConfig()
	if *apiKey != "" {
		cfg.LLM.APIKey = *apiKey
	}
	if *apiBase != "" {
		cfg.LLM.BaseURL = *apiBase
	}
	if *model != "" {
		cfg.LLM.Model = *model
	}
	if *maxWorkers > 0 {
		cfg.Batch.MaxWorkers = *maxWorkers
	}
	if *sortBy != "" {
		cfg.Batch.SortField = *sortBy
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		return 1
	}

	schemaValue, err := schema.Load(*schemaPath)
	if err != nil {
		logger.Error("failed to load schema", "path", *schemaPath, "error", err)
		return 1
	}
	// Inject source_file before compiling so the advisory validator accepts
	// the provenance tag under additionalProperties: false schemas.
	schema.EnsureSourceField(schemaValue)
	compiled, err := schema.Compile(schemaValue)
	if err != nil {
		logger.Error("schema is not a valid JSON Schema", "path", *schemaPath, "error", err)
		return 1
	}
	paths, err := batch.Discover(inputPath, *recursive, splitList(*ignoreDirs))
	if err != nil {
		logger.Error("discovery failed", "path", inputPath, "error", err)
		return 1
	}
	logger.Info("discovered documents", "count", len(paths))

	client := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	extractor := extract.NewSchemaExtractor(client, logger)
	orchestrator := batch.NewOrchestrator(extract.NewPDFTextExtractor(), extractor, logger,
		batch.WithWorkers(cfg.Batch.MaxWorkers),
		batch.WithValidator(compiled),
	)

	records, failures := orchestrator.Run(context.Background(), paths, schemaValue)
	if len(records) == 0 {
		logger.Error("all documents failed extraction", "failed", failures)
		return 1
	}

	tabular.SortByField(records, cfg.Batch.SortField)

	var payload []byte
	if *pretty {
		payload, err = json.MarshalIndent(records, "", "  ")
	} else {
		payload, err = json.Marshal(records)
	}
	if err != nil {
		logger.Error("failed to encode results", "error", err)
		return 1
	}

	fmt.Println(string(payload))

	if *output != "" {
		if err := os.WriteFile(*output, payload, 0644); err != nil {
			logger.Error("failed to write output file", "path", *output, "error", err)
			return 1
		}
		logger.Info("results saved", "path", *output)
	}
	return 0
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
