package driving

import (
	"context"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
)

// IngestResult reports the outcome of ingesting one document.
type IngestResult struct {
	// Collection is the vector collection the chunks were stored in.
	Collection string

	// ChunkCount is the number of chunks created.
	ChunkCount int

	// Profile is the keyword scan of a resume, nil for reference
	// documents.
	Profile *domain.ResumeProfile
}

// IngestService runs the ingestion pipeline: extract, clean, chunk,
// embed, store. Each document either stores completely or is rejected;
// chunks stored for earlier documents are never rolled back.
type IngestService interface {
	// Ingest processes the file at path and stores its chunks in the
	// collection derived from purpose and sessionID.
	Ingest(ctx context.Context, path string, format domain.Format, purpose domain.Purpose, sessionID string) (*IngestResult, error)

	// Collections lists all vector collections.
	Collections(ctx context.Context) ([]string, error)

	// DeleteCollection removes a collection and its entries.
	DeleteCollection(ctx context.Context, name string) error
}
