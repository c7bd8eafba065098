package llm

import (
	"strings"
	"testing"
)

func TestBuildUserPrompt(t *testing.T) {
	schemaJSON := `{"type": "object"}`
	text := "Annual report 2023.\nRevenue: 1M."

	got := BuildUserPrompt(schemaJSON, text)

	if !strings.Contains(got, schemaJSON) {
		t.Error("prompt does not embed the schema")
	}
	if !strings.Contains(got, text) {
		t.Error("prompt does not embed the document text")
	}
	if !strings.Contains(got, "Return ONLY a valid JSON object") {
		t.Error("prompt does not forbid surrounding prose")
	}
	if strings.Index(got, schemaJSON) > strings.Index(got, text) {
		t.Error("schema should precede the document text")
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	got := BuildSystemPrompt()
	if !strings.Contains(got, "document parsing assistant") {
		t.Errorf("unexpected system prompt: %q", got)
	}
	if !strings.Contains(got, "valid JSON") {
		t.Errorf("system prompt should demand valid JSON: %q", got)
	}
}
