// Package chroma provides a vector store backed by Chroma's REST API.
package chroma

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
	"github.com/custodia-labs/parley-cli/internal/core/ports/driven"
	"github.com/custodia-labs/parley-cli/internal/ratelimit"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

const (
	// DefaultTimeout is the HTTP timeout for Chroma requests.
	DefaultTimeout = 60 * time.Second

	collectionsRoot = "/api/v2/tenants/default_tenant/databases/default_database/collections"
)

// Config holds configuration for the Chroma store.
type Config struct {
	// URL is the Chroma server URL (e.g., "http://localhost:8000").
	URL string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration

	// Gate bounds concurrent requests to the Chroma server. Optional.
	Gate *ratelimit.Gate
}

// Store talks to a Chroma server. Collections are created on first
// upsert with cosine as the distance function; their server-side IDs
// are cached per name.
type Store struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	gate       *ratelimit.Gate

	mu  sync.Mutex
	ids map[string]string
}

// New creates a new Chroma vector store.
func New(cfg Config, logger *zap.Logger) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("chroma URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Store{
		baseURL: cfg.URL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
		gate:   cfg.Gate,
		ids:    make(map[string]string),
	}, nil
}

// do sends a request through the admission gate when one is configured.
func (s *Store) do(req *http.Request) (*http.Response, error) {
	if s.gate != nil {
		if err := s.gate.Acquire(req.Context()); err != nil {
			return nil, fmt.Errorf("acquire chroma slot: %w", err)
		}
		defer s.gate.Release()
	}
	return s.httpClient.Do(req)
}

// lookupID resolves a collection name to its server-side ID without
// creating it. An unknown collection yields ErrNotFound.
func (s *Store) lookupID(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	if id, ok := s.ids[name]; ok {
		s.mu.Unlock()
		return id, nil
	}
	s.mu.Unlock()

	url := fmt.Sprintf("%s%s/%s", s.baseURL, collectionsRoot, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating get request: %w", err)
	}

	resp, err := s.do(req)
	if err != nil {
		return "", fmt.Errorf("%w: get collection: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: collection %s", domain.ErrNotFound, name)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: get collection status %d: %s", domain.ErrNetwork, resp.StatusCode, string(body))
	}

	var collection chromaCollection
	if err := json.NewDecoder(resp.Body).Decode(&collection); err != nil {
		return "", fmt.Errorf("decoding collection response: %w", err)
	}
	s.cacheID(name, collection.ID)
	return collection.ID, nil
}

// collectionID resolves a collection name to its server-side ID,
// creating the collection if it does not exist.
func (s *Store) collectionID(ctx context.Context, name string) (string, error) {
	id, err := s.lookupID(ctx, name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	createBody := chromaCreateRequest{
		Name:     name,
		Metadata: map[string]any{"hnsw:space": "cosine"},
	}
	jsonBody, err := json.Marshal(createBody)
	if err != nil {
		return "", fmt.Errorf("marshaling create request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+collectionsRoot, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("creating create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.do(req)
	if err != nil {
		return "", fmt.Errorf("%w: create collection: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: create collection status %d: %s", domain.ErrNetwork, resp.StatusCode, string(body))
	}

	var collection chromaCollection
	if err := json.NewDecoder(resp.Body).Decode(&collection); err != nil {
		return "", fmt.Errorf("decoding create response: %w", err)
	}
	s.cacheID(name, collection.ID)

	s.logger.Info("created chroma collection",
		zap.String("name", name),
		zap.String("collection_id", collection.ID),
	)
	return collection.ID, nil
}

func (s *Store) cacheID(name, id string) {
	s.mu.Lock()
	s.ids[name] = id
	s.mu.Unlock()
}

// Upsert stores entries in a collection, overwriting entries with the
// same ID.
func (s *Store) Upsert(ctx context.Context, collection string, entries []driven.VectorEntry) error {
	if len(entries) == 0 {
		return nil
	}

	id, err := s.collectionID(ctx, collection)
	if err != nil {
		return err
	}

	reqBody := chromaUpsertRequest{
		IDs:        make([]string, len(entries)),
		Embeddings: make([][]float32, len(entries)),
		Metadatas:  make([]map[string]any, len(entries)),
		Documents:  make([]string, len(entries)),
	}
	for i, entry := range entries {
		reqBody.IDs[i] = entry.ID
		reqBody.Embeddings[i] = entry.Embedding
		reqBody.Metadatas[i] = entry.Metadata
		reqBody.Documents[i] = entry.Text
	}

	if err := s.post(ctx, fmt.Sprintf("%s/%s/upsert", collectionsRoot, id), reqBody, nil); err != nil {
		return fmt.Errorf("upsert into %s: %w", collection, err)
	}

	s.logger.Debug("upserted entries into chroma",
		zap.String("collection", collection),
		zap.Int("count", len(entries)),
	)
	return nil
}

// Query finds the k entries nearest to the embedding, by ascending
// cosine distance. k at most zero returns the whole collection.
func (s *Store) Query(ctx context.Context, collection string, embedding []float32, k int) ([]driven.VectorHit, error) {
	id, err := s.collectionID(ctx, collection)
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		k, err = s.countByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if k == 0 {
			return nil, nil
		}
	}

	reqBody := chromaQueryRequest{
		QueryEmbeddings: [][]float32{embedding},
		NResults:        k,
		Include:         []string{"metadatas", "distances", "documents"},
	}

	var queryResp chromaQueryResponse
	if err := s.post(ctx, fmt.Sprintf("%s/%s/query", collectionsRoot, id), reqBody, &queryResp); err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}

	// Single query embedding, so only the first group matters.
	if len(queryResp.IDs) == 0 || len(queryResp.IDs[0]) == 0 {
		return nil, nil
	}

	ids := queryResp.IDs[0]
	hits := make([]driven.VectorHit, len(ids))
	for i, hitID := range ids {
		hits[i] = driven.VectorHit{ID: hitID}
		if len(queryResp.Documents) > 0 && i < len(queryResp.Documents[0]) {
			hits[i].Text = queryResp.Documents[0][i]
		}
		if len(queryResp.Metadatas) > 0 && i < len(queryResp.Metadatas[0]) {
			hits[i].Metadata = queryResp.Metadatas[0][i]
		}
		if len(queryResp.Distances) > 0 && i < len(queryResp.Distances[0]) {
			hits[i].Distance = queryResp.Distances[0][i]
		}
	}
	return hits, nil
}

// Count returns the number of entries in a collection. A collection the
// server does not know counts as empty.
func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	id, err := s.lookupID(ctx, collection)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return s.countByID(ctx, id)
}

// countByID fetches the entry count for a resolved collection ID.
func (s *Store) countByID(ctx context.Context, id string) (int, error) {
	url := fmt.Sprintf("%s%s/%s/count", s.baseURL, collectionsRoot, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating count request: %w", err)
	}

	resp, err := s.do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: count: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("%w: count status %d: %s", domain.ErrNetwork, resp.StatusCode, string(body))
	}

	var count int
	if err := json.NewDecoder(resp.Body).Decode(&count); err != nil {
		return 0, fmt.Errorf("decoding count response: %w", err)
	}
	return count, nil
}

// DeleteCollection removes a collection and all its entries.
func (s *Store) DeleteCollection(ctx context.Context, collection string) error {
	url := fmt.Sprintf("%s%s/%s", s.baseURL, collectionsRoot, collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("creating delete request: %w", err)
	}

	resp, err := s.do(req)
	if err != nil {
		return fmt.Errorf("%w: delete collection: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: collection %s", domain.ErrNotFound, collection)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: delete collection status %d: %s", domain.ErrNetwork, resp.StatusCode, string(body))
	}

	s.mu.Lock()
	delete(s.ids, collection)
	s.mu.Unlock()
	return nil
}

// ListCollections returns the names of all collections on the server.
func (s *Store) ListCollections(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+collectionsRoot, nil)
	if err != nil {
		return nil, fmt.Errorf("creating list request: %w", err)
	}

	resp, err := s.do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: list collections: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: list collections status %d: %s", domain.ErrNetwork, resp.StatusCode, string(body))
	}

	var collections []chromaCollection
	if err := json.NewDecoder(resp.Body).Decode(&collections); err != nil {
		return nil, fmt.Errorf("decoding list response: %w", err)
	}

	names := make([]string, len(collections))
	for i, collection := range collections {
		names[i] = collection.Name
	}
	return names, nil
}

// Close releases resources held by the store.
func (s *Store) Close() error {
	// HTTP client doesn't require explicit cleanup
	return nil
}

// post sends a JSON request and optionally decodes a JSON response.
func (s *Store) post(ctx context.Context, path string, body any, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", domain.ErrNetwork, resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
