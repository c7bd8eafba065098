package schema

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docutab/docutab/internal/common"
)

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeSchema(t, `{"type": "object", "properties": {"title": {"type": "string"}}}`)
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m["type"] != "object" {
		t.Errorf("type = %v, want object", m["type"])
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, common.ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration", err)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeSchema(t, `{"type": `)
	_, err := Load(path)
	if !errors.Is(err, common.ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration", err)
	}
}

func TestEnsureSourceField(t *testing.T) {
	m := map[string]any{
		"type":       "object",
		"properties": map[string]any{"title": map[string]any{"type": "string"}},
	}
	EnsureSourceField(m)

	props := m["properties"].(map[string]any)
	injected, ok := props[SourceFileKey].(map[string]any)
	if !ok {
		t.Fatal("source_file property not injected")
	}
	if injected["type"] != "string" {
		t.Errorf("source_file type = %v, want string", injected["type"])
	}
}

func TestEnsureSourceFieldKeepsExisting(t *testing.T) {
	existing := map[string]any{"type": "string", "description": "user supplied"}
	m := map[string]any{
		"type":       "object",
		"properties": map[string]any{SourceFileKey: existing},
	}
	EnsureSourceField(m)

	props := m["properties"].(map[string]any)
	got := props[SourceFileKey].(map[string]any)
	if got["description"] != "user supplied" {
		t.Error("existing source_file property overwritten")
	}
}

func TestEnsureSourceFieldNonObjectSchema(t *testing.T) {
	m := map[string]any{"type": "array"}
	EnsureSourceField(m)
	if _, ok := m["properties"]; ok {
		t.Error("non-object schema should be left alone")
	}
}

func TestCompile(t *testing.T) {
	m := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"year": map[string]any{"type": "integer"},
		},
	}
	compiled, err := Compile(m)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if err := ValidateRecord(compiled, map[string]any{"year": 2020.0}); err != nil {
		t.Errorf("valid record rejected: %v", err)
	}
	if err := ValidateRecord(compiled, map[string]any{"year": "not-a-number"}); err == nil {
		t.Error("mismatching record accepted")
	}
}

// A strict schema must be amended with source_file before compiling, so the
// validator accepts the provenance tag on every record.
func TestCompileAfterSourceFieldInjectionStrictSchema(t *testing.T) {
	m := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
		},
	}
	EnsureSourceField(m)
	compiled, err := Compile(m)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	record := map[string]any{"title": "doc", SourceFileKey: "doc.pdf"}
	if err := ValidateRecord(compiled, record); err != nil {
		t.Errorf("tagged record rejected by strict schema: %v", err)
	}
}

func TestCompileInvalidSchema(t *testing.T) {
	m := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x": map[string]any{"type": 12345.0},
		},
	}
	if _, err := Compile(m); err == nil {
		t.Error("expected compile error for bad type keyword")
	}
}

func TestCanonicalJSON(t *testing.T) {
	m := map[string]any{"type": "object"}
	got := CanonicalJSON(m)
	if !strings.Contains(got, `"type": "object"`) {
		t.Errorf("CanonicalJSON() = %q", got)
	}
}
