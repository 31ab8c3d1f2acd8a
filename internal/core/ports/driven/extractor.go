package driven

import (
	"context"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
)

// Extractor converts a raw document file into normalized text.
// Each extractor handles one or more declared formats.
type Extractor interface {
	// Formats returns the document formats this extractor handles.
	Formats() []domain.Format

	// Extract reads the file at path and returns its text content.
	// Returns an error wrapping domain.ErrExtraction when the file
	// cannot be opened or no extraction strategy succeeds.
	Extract(ctx context.Context, path string) (string, error)
}
