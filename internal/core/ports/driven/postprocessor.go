package driven

import (
	"context"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
)

// PostProcessor processes a document's content on the way to the index.
// PostProcessors are chained in a pipeline (cleaning, then chunking).
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes a document and the chunks produced so far.
	// A processor may rewrite doc.Content (e.g. the cleaner) or create
	// chunks from it (e.g. the chunker).
	Process(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the document through all processors in order and
	// returns the final chunks.
	Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error)
}
