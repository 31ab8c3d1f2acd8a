// Package chunker provides a fixed-size overlapping word-window
// chunking processor.
package chunker

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
	"github.com/custodia-labs/parley-cli/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.PostProcessor = (*Processor)(nil)

// DefaultChunkSize is the default window size in words.
const DefaultChunkSize = 500

// DefaultChunkOverlap is the default overlap between windows in words.
const DefaultChunkOverlap = 100

// Processor splits document content into fixed-size overlapping word
// windows. Chunking is purely positional: no awareness of sentence or
// paragraph boundaries.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the window size in words.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between windows in words.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
// Returns an error wrapping domain.ErrInvalidChunking unless
// size > overlap >= 0.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.chunkSize <= p.overlap {
		return nil, fmt.Errorf("%w: size %d must exceed overlap %d",
			domain.ErrInvalidChunking, p.chunkSize, p.overlap)
	}

	return p, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document content into chunks. Input chunks are
// ignored; this processor creates new chunks from document content.
// Empty content produces zero chunks without error.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	words := strings.Fields(doc.Content)
	if len(words) == 0 {
		return nil, nil
	}

	step := p.chunkSize - p.overlap

	// ceil((L - overlap) / step) windows for L > 0. A window whose words
	// are all covered by the previous window's overlap is not emitted.
	total := ((len(words) - p.overlap) + step - 1) / step
	if total < 1 {
		total = 1
	}

	chunks := make([]domain.Chunk, 0, total)
	for index := 0; index < total; index++ {
		start := index * step
		end := start + p.chunkSize
		if end > len(words) {
			end = len(words)
		}

		chunks = append(chunks, domain.Chunk{
			Text:     strings.Join(words[start:end], " "),
			Index:    index,
			Total:    total,
			Metadata: copyMetadata(doc.Metadata),
		})
	}

	return chunks, nil
}

// copyMetadata creates a shallow copy of metadata.
func copyMetadata(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src)+2)
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
