package driving

import (
	"context"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// IngestService uploads documents into an owner's corpus.
type IngestService interface {
	// Ingest extracts, chunks, embeds and stores a document for the
	// owner. Either the whole document becomes retrievable or none of
	// it does; an embedding failure aborts without partial storage.
	Ingest(ctx context.Context, ownerID, filename string, data []byte) (*domain.Document, error)

	// IngestFile reads the file at path and ingests it under its
	// base filename.
	IngestFile(ctx context.Context, ownerID, path string) (*domain.Document, error)
}

// DocumentService manages an owner's uploaded documents.
type DocumentService interface {
	// ListFilenames returns the distinct filenames the owner has
	// uploaded, sorted. Re-uploads do not duplicate entries.
	ListFilenames(ctx context.Context, ownerID string) ([]string, error)

	// DeleteDocument removes a document and all its chunks from the
	// owner's corpus. Past interactions keep their reference
	// snapshots. Returns domain.ErrNotFound for unknown filenames.
	DeleteDocument(ctx context.Context, ownerID, filename string) error
}
