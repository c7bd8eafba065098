package batch

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/docutab/docutab/internal/extract"
	"github.com/docutab/docutab/internal/schema"
)

// Outcome is one document's result: a tagged record or an error with
// provenance. Exactly one Outcome is produced per discovered document.
type Outcome struct {
	Source string
	Record map[string]any
	Err    error
}

// Orchestrator fans extraction tasks over a bounded worker pool and collects
// per-document outcomes without letting one failure halt the batch.
type Orchestrator struct {
	texts     extract.TextExtractor
	extractor *extract.SchemaExtractor
	logger    *slog.Logger
	workers   int
	validator *jsonschema.Schema
}

type Option func(*Orchestrator)

func WithWorkers(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithValidator enables advisory validation of each successful record against
// the compiled schema. Mismatches are logged, never failed.
func WithValidator(compiled *jsonschema.Schema) Option {
	return func(o *Orchestrator) {
		o.validator = compiled
	}
}

func NewOrchestrator(texts extract.TextExtractor, extractor *extract.SchemaExtractor, logger *slog.Logger, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	o := &Orchestrator{
		texts:     texts,
		extractor: extractor,
		logger:    logger,
		workers:   4,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run processes every discovered document and returns the successful records
// in completion order plus the failure count. The schema value is shared
// read-only across all tasks; EnsureSourceField is applied once before the
// first task starts.
func (o *Orchestrator) Run(ctx context.Context, paths []string, schemaValue map[string]any) ([]map[string]any, int) {
	runID := uuid.New().String()
	start := time.Now()
	schema.EnsureSourceField(schemaValue)

	o.logger.Info("batch.start",
		"run_id", runID,
		"documents", len(paths),
		"workers", o.workers,
	)

	var outcomes []Outcome
	if len(paths) == 1 {
		// No pool overhead for a single document.
		outcomes = append(outcomes, o.processOne(ctx, paths[0], schemaValue))
	} else {
		outcomes = o.runPool(ctx, paths, schemaValue)
	}

	var records []map[string]any
	failures := 0
	for _, out := range outcomes {
		if out.Err != nil {
			failures++
			continue
		}
		records = append(records, out.Record)
	}

	o.logger.Info("batch.done",
		"run_id", runID,
		"succeeded", len(records),
		"failed", failures,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return records, failures
}

// runPool submits tasks in discovery order and aggregates outcomes in arrival
// order. Workers share nothing mutable; only this coordinator appends to the
// result slice.
func (o *Orchestrator) runPool(ctx context.Context, paths []string, schemaValue map[string]any) []Outcome {
	workers := o.workers
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan string)
	results := make(chan Outcome)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- o.processOne(ctx, path, schemaValue)
			}
		}()
	}

	go func() {
		for _, p := range paths {
			jobs <- p
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	outcomes := make([]Outcome, 0, len(paths))
	for out := range results {
		outcomes = append(outcomes, out)
	}
	return outcomes
}

// processOne runs the full pipeline for one document. Every failure is caught
// here, reported on the diagnostic stream as it occurs and converted into an
// Outcome; nothing propagates to sibling tasks.
func (o *Orchestrator) processOne(ctx context.Context, path string, schemaValue map[string]any) Outcome {
	text, err := o.texts.ExtractText(ctx, path)
	if err != nil {
		o.logger.Error("batch.document_failed", "source", path, "error", err)
		return Outcome{Source: path, Err: err}
	}

	record, err := o.extractor.Extract(ctx, text, schemaValue)
	if err != nil {
		o.logger.Error("batch.document_failed", "source", path, "error", err)
		return Outcome{Source: path, Err: err}
	}

	// Provenance tag wins over any same-named field the model produced.
	record[schema.SourceFileKey] = filepath.Base(path)

	if o.validator != nil {
		if vErr := schema.ValidateRecord(o.validator, record); vErr != nil {
			o.logger.Warn("batch.schema_mismatch", "source", path, "error", vErr)
		}
	}

	return Outcome{Source: path, Record: record}
}
