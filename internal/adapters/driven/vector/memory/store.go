// Package memory provides an in-process vector store keyed by collection.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
	"github.com/custodia-labs/parley-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store holds vectors in memory, grouped by collection. Collections are
// created lazily on first upsert.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]driven.VectorEntry
}

// New creates an empty in-memory vector store.
func New() *Store {
	return &Store{
		collections: make(map[string][]driven.VectorEntry),
	}
}

// Upsert inserts entries into a collection, overwriting entries with the
// same ID in place so insertion order is preserved.
func (s *Store) Upsert(_ context.Context, collection string, entries []driven.VectorEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.collections[collection]
	if len(existing) > 0 {
		dims := len(existing[0].Embedding)
		for _, entry := range entries {
			if len(entry.Embedding) != dims {
				return fmt.Errorf("%w: collection %s holds %d-dim vectors, got %d",
					domain.ErrDimensionMismatch, collection, dims, len(entry.Embedding))
			}
		}
	}

	for _, entry := range entries {
		replaced := false
		for i := range existing {
			if existing[i].ID == entry.ID {
				existing[i] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, entry)
		}
	}
	s.collections[collection] = existing
	return nil
}

// Query returns the k entries nearest to the query embedding by cosine
// distance, ascending. Ties keep insertion order.
func (s *Store) Query(_ context.Context, collection string, embedding []float32, k int) ([]driven.VectorHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, ok := s.collections[collection]
	if !ok {
		return nil, fmt.Errorf("%w: collection %s", domain.ErrNotFound, collection)
	}
	if len(entries) > 0 && len(entries[0].Embedding) != len(embedding) {
		return nil, fmt.Errorf("%w: collection %s holds %d-dim vectors, got %d",
			domain.ErrDimensionMismatch, collection, len(entries[0].Embedding), len(embedding))
	}

	hits := make([]driven.VectorHit, 0, len(entries))
	for _, entry := range entries {
		hits = append(hits, driven.VectorHit{
			ID:       entry.ID,
			Text:     entry.Text,
			Metadata: entry.Metadata,
			Distance: cosineDistance(embedding, entry.Embedding),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	if k > 0 && k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Count returns the number of entries in a collection. Unknown
// collections count as empty.
func (s *Store) Count(_ context.Context, collection string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection]), nil
}

// DeleteCollection removes a collection and all its entries.
func (s *Store) DeleteCollection(_ context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection]; !ok {
		return fmt.Errorf("%w: collection %s", domain.ErrNotFound, collection)
	}
	delete(s.collections, collection)
	return nil
}

// ListCollections returns the names of all collections, sorted.
func (s *Store) ListCollections(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

// cosineDistance computes 1 minus the cosine similarity of two vectors.
// Zero vectors are treated as maximally distant.
func cosineDistance(a, b []float32) float32 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return float32(1 - dot/(math.Sqrt(normA)*math.Sqrt(normB)))
}
