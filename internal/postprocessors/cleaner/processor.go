// Package cleaner provides a lossy text normalisation processor.
package cleaner

import (
	"context"
	"regexp"
	"strings"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
	"github.com/custodia-labs/parley-cli/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.PostProcessor = (*Processor)(nil)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	exoticChars    = regexp.MustCompile(`[^\w\s.,!?;:()\-'"]+`)
	newlineRuns    = regexp.MustCompile(`\n+`)
)

// Processor collapses whitespace runs to single spaces, strips
// characters outside a conservative punctuation/alphanumeric set, and
// collapses repeated newlines. This is intentionally lossy and must run
// exactly once, after extraction and before chunking.
type Processor struct{}

// New creates a new cleaner processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "cleaner"
}

// Process rewrites doc.Content in place and passes chunks through
// unchanged.
func (p *Processor) Process(_ context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	doc.Content = Clean(doc.Content)
	return chunks, nil
}

// Clean applies the normalisation steps to text.
func Clean(text string) string {
	text = whitespaceRuns.ReplaceAllString(text, " ")
	text = exoticChars.ReplaceAllString(text, "")
	text = newlineRuns.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
