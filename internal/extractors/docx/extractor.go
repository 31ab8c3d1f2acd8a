// Package docx provides the extractor for DOCX documents.
package docx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
	"github.com/custodia-labs/parley-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles DOCX documents.
type Extractor struct{}

// New creates a new DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// Formats returns the document formats this extractor handles.
func (e *Extractor) Formats() []domain.Format {
	return []domain.Format{domain.FormatDocx}
}

// Extract opens the file as a ZIP archive and pulls paragraph text from
// word/document.xml.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrExtraction, path, err)
	}
	defer reader.Close()

	content, err := extractDocumentText(&reader.Reader)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrExtraction, path, err)
	}
	return content, nil
}

// extractDocumentText extracts text from word/document.xml.
func extractDocumentText(reader *zip.Reader) (string, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", err
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}

		return parseDocumentXML(content)
	}
	return "", fmt.Errorf("missing word/document.xml")
}

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// parseDocumentXML joins non-empty paragraphs with blank lines.
func parseDocumentXML(content []byte) (string, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", err
	}

	paragraphs := make([]string, 0, len(doc.Body.Paragraphs))
	for _, para := range doc.Body.Paragraphs {
		var text strings.Builder
		for _, run := range para.Runs {
			for _, t := range run.Text {
				text.WriteString(t.Content)
			}
		}
		if trimmed := strings.TrimSpace(text.String()); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}

	return strings.Join(paragraphs, "\n\n"), nil
}
