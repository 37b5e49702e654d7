package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/recall-labs/recall-cli/internal/chunker"
	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
	"github.com/recall-labs/recall-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService turns uploaded files into retrievable chunks.
type IngestService struct {
	extractors driven.ExtractorRegistry
	splitter   *chunker.Splitter
	embedder   driven.EmbeddingService
	chunkStore driven.ChunkStore
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	extractors driven.ExtractorRegistry,
	splitter *chunker.Splitter,
	embedder driven.EmbeddingService,
	chunkStore driven.ChunkStore,
) *IngestService {
	if splitter == nil {
		splitter = chunker.New()
	}
	return &IngestService{
		extractors: extractors,
		splitter:   splitter,
		embedder:   embedder,
		chunkStore: chunkStore,
	}
}

// Ingest extracts, chunks, embeds and stores a document for the owner.
// Either the whole document becomes retrievable or none of it does.
func (s *IngestService) Ingest(
	ctx context.Context, ownerID, filename string, data []byte,
) (*domain.Document, error) {
	logger.Section("Document Ingestion")
	logger.Debug("Owner: %s, file: %s, size: %d bytes", ownerID, filename, len(data))

	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("%w: owner ID is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(filename) == "" {
		return nil, fmt.Errorf("%w: filename is required", domain.ErrInvalidInput)
	}
	if s.embedder == nil {
		return nil, fmt.Errorf("%w: no embedding provider configured", domain.ErrEmbeddingUnavailable)
	}
	if s.chunkStore == nil {
		return nil, fmt.Errorf("%w: no chunk store configured", domain.ErrStoreUnavailable)
	}

	// Extract plain text
	text, err := s.extractors.Extract(ctx, filename, data)
	if err != nil {
		logger.Warn("Extraction failed for %s: %v", filename, err)
		return nil, fmt.Errorf("extract %s: %w", filename, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		logger.Debug("No text content in %s", filename)
		return nil, fmt.Errorf("%w: document has no text content", domain.ErrInvalidInput)
	}

	doc := &domain.Document{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Filename:  filename,
		Content:   text,
		CreatedAt: time.Now().UTC(),
	}

	// Split into chunks
	chunks := s.splitter.Chunk(doc)
	doc.ChunkCount = len(chunks)
	logger.Debug("Split into %d chunks (max %d chars)", len(chunks), s.splitter.MaxChunkSize())

	// Embed all chunks in one batch. Any failure aborts the whole
	// document; nothing is stored partially.
	logger.Debug("Embedding with %s (%d dimensions)", s.embedder.ModelName(), s.embedder.Dimensions())
	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Content
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		logger.Warn("Embedding failed: %v", err)
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d chunks",
			domain.ErrEmbeddingUnavailable, len(vectors), len(chunks))
	}
	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}

	if err := s.chunkStore.EnsureCollection(ctx, s.embedder.Dimensions()); err != nil {
		return nil, fmt.Errorf("ensure collection: %w", err)
	}

	if err := s.chunkStore.InsertChunks(ctx, chunks); err != nil {
		return nil, fmt.Errorf("store chunks: %w", err)
	}

	// Re-uploading a filename replaces the previous upload. The new
	// chunks are committed before the old ones go, so a store failure
	// at either step leaves the owner with at least one full copy.
	if err := s.chunkStore.DeleteStaleChunks(ctx, ownerID, filename, doc.ID); err != nil {
		return nil, fmt.Errorf("replace existing document: %w", err)
	}

	logger.Info("Ingested %s: %d chunks for owner %s", filename, len(chunks), ownerID)
	return doc, nil
}

// IngestFile reads the file at path and ingests it under its base filename.
func (s *IngestService) IngestFile(ctx context.Context, ownerID, path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	return s.Ingest(ctx, ownerID, filepath.Base(path), data)
}
