package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
	"github.com/custodia-labs/parley-cli/internal/core/ports/driven"
)

// Retriever fetches context passages from a vector collection for a
// natural language query.
type Retriever struct {
	embedder driven.EmbeddingService
	vectors  driven.VectorStore
	logger   *zap.Logger
}

// NewRetriever creates a new retriever.
func NewRetriever(embedder driven.EmbeddingService, vectors driven.VectorStore, logger *zap.Logger) *Retriever {
	return &Retriever{
		embedder: embedder,
		vectors:  vectors,
		logger:   logger,
	}
}

// Fetch embeds the query, searches the collection and joins the nearest
// chunk texts with blank lines. An empty or unknown collection yields
// domain.NoContextFound rather than an error; callers decide how to
// degrade on real failures.
func (r *Retriever) Fetch(ctx context.Context, collection, query string, maxChunks int) (string, error) {
	count, err := r.vectors.Count(ctx, collection)
	if err != nil {
		return "", fmt.Errorf("count collection %s: %w", collection, err)
	}
	if count == 0 {
		r.logger.Debug("no entries in collection", zap.String("collection", collection))
		return domain.NoContextFound, nil
	}

	embedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return "", fmt.Errorf("embed query: %w", err)
	}

	hits, err := r.vectors.Query(ctx, collection, embedding, maxChunks)
	if err != nil {
		return "", fmt.Errorf("query collection %s: %w", collection, err)
	}
	if len(hits) == 0 {
		return domain.NoContextFound, nil
	}

	texts := make([]string, len(hits))
	for i, hit := range hits {
		texts[i] = hit.Text
	}
	return strings.Join(texts, "\n\n"), nil
}
