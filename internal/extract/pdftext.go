package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/docutab/docutab/internal/common"
)

// TextExtractor is the document text-extraction capability. A failure is a
// per-document error; the batch carries on.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// PDFTextExtractor extracts plain text from PDF files.
type PDFTextExtractor struct{}

func NewPDFTextExtractor() *PDFTextExtractor {
	return &PDFTextExtractor{}
}

// ExtractText reads the whole PDF and concatenates per-page plain text with a
// blank line between pages.
func (e *PDFTextExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: PDF file not found: %s", common.ErrDocumentUnreadable, path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", common.ErrDocumentUnreadable, path, err)
	}
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("%w: open PDF %s: %v", common.ErrDocumentUnreadable, path, err)
	}
	var buf bytes.Buffer
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: extract page %d of %s: %v", common.ErrDocumentUnreadable, i, path, err)
		}
		buf.WriteString(text)
		buf.WriteString("\n\n")
	}
	return strings.TrimSpace(buf.String()), nil
}
