package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Compile checks that the loaded schema is itself a well-formed JSON Schema.
// A schema that does not compile is rejected at startup rather than after the
// first model call.
func Compile(m map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return compiled, nil
}

// ValidateRecord checks a record against the compiled schema. Conformance is
// advisory: callers log mismatches, they never fail the document.
func ValidateRecord(compiled *jsonschema.Schema, record map[string]any) error {
	if compiled == nil {
		return nil
	}
	if err := compiled.Validate(any(record)); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}
