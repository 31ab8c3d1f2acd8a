package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Note: this is separate from VectorStore, which stores and searches
// vectors. EmbeddingService generates vectors; VectorStore stores them.
// Dimensionality is a property of the embedding model and must be
// constant within a collection.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts. A failure on
	// any text aborts the whole batch; no partial result is returned.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g. 768).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight
	// request and a short timeout.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
