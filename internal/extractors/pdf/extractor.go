// Package pdf provides the extractor for PDF documents.
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
	"github.com/custodia-labs/parley-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF documents.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Formats returns the document formats this extractor handles.
func (e *Extractor) Formats() []domain.Format {
	return []domain.Format{domain.FormatPDF}
}

// Extract pulls text from every page of the PDF. A row-based extraction
// that preserves line layout is tried first; if it fails for any page
// the whole document is re-read with the simpler plain text extraction.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrExtraction, path, err)
	}
	defer file.Close()

	content, err := extractByRows(reader)
	if err != nil {
		content, err = extractPlainText(reader)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrExtraction, path, err)
	}
	return content, nil
}

// extractByRows extracts each page row by row, joining pages with blank
// lines. The underlying library panics on some malformed documents, so
// panics are converted to errors to let the caller fall back.
func extractByRows(reader *pdf.Reader) (content string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("row extraction panic: %v", r)
		}
	}()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}

		var lines []string
		for _, row := range rows {
			var line strings.Builder
			for _, text := range row.Content {
				line.WriteString(text.S)
			}
			lines = append(lines, line.String())
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return strings.Join(pages, "\n\n"), nil
}

// extractPlainText is the fallback strategy using the library's plain
// text stream per page.
func extractPlainText(reader *pdf.Reader) (content string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("plain text extraction panic: %v", r)
		}
	}()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n\n"), nil
}
