package llm

import "strings"

// BuildSystemPrompt fixes the assistant's role as a strict JSON-producing
// document parser.
func BuildSystemPrompt() string {
	return "You are a document parsing assistant that extracts structured data from text. " +
		"Always return valid JSON according to the specified schema."
}

// BuildUserPrompt embeds the serialized schema and the document text into the
// instructional template. The template demands a bare JSON object with no
// surrounding prose.
func BuildUserPrompt(schemaJSON, documentText string) string {
	var b strings.Builder
	b.WriteString("Extract information from the following document text according to this JSON schema:\n\n")
	b.WriteString(schemaJSON)
	b.WriteString("\n\nReturn ONLY a valid JSON object matching the schema. ")
	b.WriteString("Do not include any explanations, notes, or text outside of the JSON object.\n\n")
	b.WriteString("Document text:\n")
	b.WriteString(documentText)
	return b.String()
}
