// Package schema loads and prepares the JSON Schema that guides extraction.
// The loaded value is a read-only snapshot shared by every extraction task.
package schema

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/docutab/docutab/internal/common"
)

// SourceFileKey is the provenance field the orchestrator injects into every
// successful record.
const SourceFileKey = "source_file"

// Load reads and parses a JSON Schema file. A missing or syntactically
// invalid file is a configuration error, fatal before processing starts.
func Load(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewAppError("SCHEMA_LOAD", fmt.Sprintf("read schema file %q", path), common.ErrConfiguration)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, common.NewAppError("SCHEMA_LOAD", fmt.Sprintf("schema file %q is not valid JSON: %v", path, err), common.ErrConfiguration)
	}
	return m, nil
}

// EnsureSourceField injects an optional source_file string property into a
// top-level object schema, if absent. Called once before the first task
// starts; the schema is never mutated afterwards.
func EnsureSourceField(m map[string]any) {
	if t, _ := m["type"].(string); t != "object" {
		return
	}
	props, ok := m["properties"].(map[string]any)
	if !ok {
		return
	}
	if _, exists := props[SourceFileKey]; exists {
		return
	}
	props[SourceFileKey] = map[string]any{
		"type":        "string",
		"description": "Name of the source document this record was extracted from.",
	}
}

// CanonicalJSON renders the schema in the indented form embedded into the
// extraction prompt.
func CanonicalJSON(m map[string]any) string {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		// map[string]any from json.Unmarshal always marshals
		return "{}"
	}
	return string(b)
}
