// Package extract turns document text into schema-shaped JSON records through
// the text-generation capability.
package extract

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/docutab/docutab/internal/common"
	"github.com/docutab/docutab/internal/llm"
	"github.com/docutab/docutab/internal/schema"
)

// MalformedOutputError reports a model response that could not be parsed as
// JSON, even after span recovery. Raw is kept verbatim for diagnostics.
type MalformedOutputError struct {
	Raw string
}

func (e *MalformedOutputError) Error() string {
	return "model response did not contain valid JSON"
}

func (e *MalformedOutputError) Unwrap() error {
	return common.ErrMalformedOutput
}

// SchemaExtractor asks the generator for a JSON object matching the schema
// and parses the response, repairing prose-wrapped output when possible.
type SchemaExtractor struct {
	gen    llm.Generator
	logger *slog.Logger
}

func NewSchemaExtractor(gen llm.Generator, logger *slog.Logger) *SchemaExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &SchemaExtractor{gen: gen, logger: logger}
}

// Extract builds the prompt from the schema and document text, invokes the
// generator and parses the response. No structural schema validation happens
// here: syntactic JSON-ness is the only requirement.
func (s *SchemaExtractor) Extract(ctx context.Context, documentText string, schemaValue map[string]any) (map[string]any, error) {
	start := time.Now()

	req := llm.Request{
		System: llm.BuildSystemPrompt(),
		User:   llm.BuildUserPrompt(schema.CanonicalJSON(schemaValue), documentText),
	}

	raw, err := s.gen.Complete(ctx, req)
	if err != nil {
		return nil, common.WrapError(err, "call model")
	}

	record, err := ParseModelJSON(raw)
	if err != nil {
		s.logger.Error("extract.parse_failed",
			"raw_len", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	s.logger.Info("extract.ok",
		"fields", len(record),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return record, nil
}

// ParseModelJSON parses a model response as a JSON object. If the response is
// not clean JSON it recovers by reparsing the greedy first-'{' to last-'}'
// span, which strips surrounding prose and code fences.
func ParseModelJSON(raw string) (map[string]any, error) {
	var record map[string]any
	if err := json.Unmarshal([]byte(raw), &record); err == nil {
		return record, nil
	}

	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first >= 0 && last > first {
		span := raw[first : last+1]
		if err := json.Unmarshal([]byte(span), &record); err == nil {
			return record, nil
		}
	}
	return nil, &MalformedOutputError{Raw: raw}
}
