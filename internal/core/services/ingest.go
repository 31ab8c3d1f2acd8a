// Package services contains the core application services wiring the
// driven ports into the driving operations.
package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
	"github.com/custodia-labs/parley-cli/internal/core/ports/driven"
	"github.com/custodia-labs/parley-cli/internal/core/ports/driving"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// DefaultMaxUploadSize is the largest document accepted, in bytes.
const DefaultMaxUploadSize = 50 * 1024 * 1024

// allowedFormats lists the accepted declared formats per purpose.
var allowedFormats = map[domain.Purpose][]domain.Format{
	domain.PurposeResume:    {domain.FormatPDF, domain.FormatDocx},
	domain.PurposeReference: {domain.FormatPDF, domain.FormatDocx, domain.FormatPlaintext},
}

// IngestConfig holds ingestion settings.
type IngestConfig struct {
	// MaxUploadSize is the largest accepted document in bytes
	// (default: 50MB).
	MaxUploadSize int64
}

// IngestService runs the ingestion pipeline: extract, clean, chunk,
// embed, store.
type IngestService struct {
	extractors map[domain.Format]driven.Extractor
	pipeline   driven.PostProcessorPipeline
	embedder   driven.EmbeddingService
	vectors    driven.VectorStore
	logger     *zap.Logger
	maxSize    int64
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	cfg IngestConfig,
	extractors map[domain.Format]driven.Extractor,
	pipeline driven.PostProcessorPipeline,
	embedder driven.EmbeddingService,
	vectors driven.VectorStore,
	logger *zap.Logger,
) *IngestService {
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = DefaultMaxUploadSize
	}

	return &IngestService{
		extractors: extractors,
		pipeline:   pipeline,
		embedder:   embedder,
		vectors:    vectors,
		logger:     logger,
		maxSize:    cfg.MaxUploadSize,
	}
}

// Ingest processes the file at path and stores its chunks in the
// collection derived from purpose and sessionID. The document either
// stores completely or is rejected.
func (s *IngestService) Ingest(
	ctx context.Context,
	path string,
	format domain.Format,
	purpose domain.Purpose,
	sessionID string,
) (*driving.IngestResult, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id required", domain.ErrInvalidInput)
	}
	if !formatAllowed(purpose, format) {
		return nil, fmt.Errorf("%w: format %s not accepted for %s documents",
			domain.ErrUnsupportedFormat, format, purpose)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat document: %w", err)
	}
	if info.Size() > s.maxSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d",
			domain.ErrDocumentTooLarge, info.Size(), s.maxSize)
	}

	extractor, ok := s.extractors[format]
	if !ok {
		return nil, fmt.Errorf("%w: no extractor for %s", domain.ErrUnsupportedFormat, format)
	}

	content, err := extractor.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}

	collection := domain.CollectionName(purpose, sessionID)
	doc := &domain.Document{
		ID:        uuid.New().String(),
		Path:      path,
		Format:    format,
		Purpose:   purpose,
		SessionID: sessionID,
		Content:   content,
		Metadata: map[string]any{
			"source":     collection,
			"session_id": sessionID,
			"filename":   filepath.Base(path),
		},
		CreatedAt: time.Now().UTC(),
	}

	chunks, err := s.pipeline.Process(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("process document: %w", err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: document produced no chunks", domain.ErrInvalidInput)
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}

	entries := make([]driven.VectorEntry, len(chunks))
	for i, chunk := range chunks {
		metadata := make(map[string]any, len(chunk.Metadata)+2)
		for k, v := range chunk.Metadata {
			metadata[k] = v
		}
		metadata["chunk_index"] = chunk.Index
		metadata["total_chunks"] = chunk.Total

		entries[i] = driven.VectorEntry{
			ID:        domain.ChunkID(collection, chunk.Index),
			Text:      chunk.Text,
			Embedding: embeddings[i],
			Metadata:  metadata,
		}
	}

	if err := s.vectors.Upsert(ctx, collection, entries); err != nil {
		return nil, fmt.Errorf("store chunks: %w", err)
	}

	result := &driving.IngestResult{
		Collection: collection,
		ChunkCount: len(entries),
	}
	if purpose == domain.PurposeResume {
		result.Profile = ParseResume(doc.Content)
	}

	s.logger.Info("document ingested",
		zap.String("collection", collection),
		zap.String("file", filepath.Base(path)),
		zap.Int("chunks", len(entries)),
	)
	return result, nil
}

// Collections lists all vector collections.
func (s *IngestService) Collections(ctx context.Context) ([]string, error) {
	return s.vectors.ListCollections(ctx)
}

// DeleteCollection removes a collection and its entries.
func (s *IngestService) DeleteCollection(ctx context.Context, name string) error {
	return s.vectors.DeleteCollection(ctx, name)
}

func formatAllowed(purpose domain.Purpose, format domain.Format) bool {
	for _, allowed := range allowedFormats[purpose] {
		if allowed == format {
			return true
		}
	}
	return false
}
