package driven

import "context"

// VectorStore is a named-collection vector index scored by cosine
// similarity. Collections are created lazily on first write or query;
// there is no cross-collection isolation beyond the namespace key.
type VectorStore interface {
	// Upsert stores entries in a collection, overwriting any existing
	// entry sharing an id. This enables idempotent re-ingestion.
	Upsert(ctx context.Context, collection string, entries []VectorEntry) error

	// Query returns at most k nearest entries by cosine distance,
	// ascending (nearest first). Ties are broken by insertion order.
	// k larger than the collection truncates rather than erroring;
	// k at most zero returns the whole collection.
	Query(ctx context.Context, collection string, embedding []float32, k int) ([]VectorHit, error)

	// Count returns the number of entries stored in a collection.
	Count(ctx context.Context, collection string) (int, error)

	// DeleteCollection removes a collection and all its entries.
	DeleteCollection(ctx context.Context, collection string) error

	// ListCollections returns the names of all collections.
	ListCollections(ctx context.Context) ([]string, error)

	// Close releases resources.
	Close() error
}

// VectorEntry is one stored item: id, source text, embedding, metadata.
type VectorEntry struct {
	ID        string
	Text      string
	Embedding []float32
	Metadata  map[string]any
}

// VectorHit is a similarity search result.
type VectorHit struct {
	// ID is the stored entry's identifier.
	ID string

	// Text is the stored chunk text.
	Text string

	// Metadata is the stored entry's metadata.
	Metadata map[string]any

	// Distance is the cosine distance (0 = identical direction).
	Distance float32
}
