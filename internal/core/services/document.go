package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
	"github.com/recall-labs/recall-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages an owner's uploaded documents.
type DocumentService struct {
	chunkStore driven.ChunkStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(chunkStore driven.ChunkStore) *DocumentService {
	return &DocumentService{chunkStore: chunkStore}
}

// ListFilenames returns the distinct filenames the owner has uploaded, sorted.
func (s *DocumentService) ListFilenames(ctx context.Context, ownerID string) ([]string, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("%w: owner ID is required", domain.ErrInvalidInput)
	}
	if s.chunkStore == nil {
		return nil, fmt.Errorf("%w: no chunk store configured", domain.ErrStoreUnavailable)
	}

	filenames, err := s.chunkStore.ListFilenames(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list filenames: %w", err)
	}
	return filenames, nil
}

// DeleteDocument removes a document and all its chunks from the
// owner's corpus. Past interactions keep their reference snapshots.
func (s *DocumentService) DeleteDocument(ctx context.Context, ownerID, filename string) error {
	if strings.TrimSpace(ownerID) == "" {
		return fmt.Errorf("%w: owner ID is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(filename) == "" {
		return fmt.Errorf("%w: filename is required", domain.ErrInvalidInput)
	}
	if s.chunkStore == nil {
		return fmt.Errorf("%w: no chunk store configured", domain.ErrStoreUnavailable)
	}

	if err := s.chunkStore.DeleteDocument(ctx, ownerID, filename); err != nil {
		return fmt.Errorf("delete document %s: %w", filename, err)
	}

	logger.Info("Deleted %s for owner %s", filename, ownerID)
	return nil
}
