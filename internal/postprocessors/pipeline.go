// Package postprocessors chains the document processing steps that run
// between extraction and embedding: text cleaning, then chunking.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
	"github.com/custodia-labs/parley-cli/internal/core/ports/driven"
)

// Ensure Pipeline implements the interface.
var _ driven.PostProcessorPipeline = (*Pipeline)(nil)

// Pipeline runs a document through an ordered list of PostProcessors.
type Pipeline struct {
	processors []driven.PostProcessor
}

// NewPipeline creates a pipeline from the given processors, run in
// order.
func NewPipeline(processors ...driven.PostProcessor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Process runs the document through all processors in order and returns
// the final chunks.
func (p *Pipeline) Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	var err error

	for _, proc := range p.processors {
		chunks, err = proc.Process(ctx, doc, chunks)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", proc.Name(), err)
		}
	}

	return chunks, nil
}
