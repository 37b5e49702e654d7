package driven

import (
	"context"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// SearchParams bounds a similarity search.
type SearchParams struct {
	// CandidatePool is how many approximate candidates the backend
	// considers before scoring (Qdrant ef/hnsw_ef style knob).
	CandidatePool int

	// Limit caps the number of hits returned.
	Limit int

	// MinScore drops hits scoring below this value. Zero disables it.
	MinScore float32
}

// ChunkHit is a scored chunk returned from similarity search.
type ChunkHit struct {
	// Chunk is the matched chunk. Embedding is not hydrated on the
	// way back out; only payload fields are populated.
	Chunk domain.Chunk

	// Score is the cosine similarity score.
	Score float32
}

// ChunkStore persists embedded chunks and serves similarity search.
// Backed by Qdrant in production and an in-memory store in tests.
//
// Every read operation takes an ownerID and must apply it as a hard
// filter inside the backend. There is no unscoped read path.
type ChunkStore interface {
	// EnsureCollection creates the backing collection if it does not
	// exist, configured for the given vector dimensions.
	EnsureCollection(ctx context.Context, dimensions int) error

	// InsertChunks stores all chunks or none of them. A document's
	// chunks are always inserted in a single call.
	InsertChunks(ctx context.Context, chunks []domain.Chunk) error

	// NearestNeighbors returns the closest chunks to the query vector
	// among the owner's chunks only, ordered by descending score.
	NearestNeighbors(ctx context.Context, ownerID string, vector []float32, params SearchParams) ([]ChunkHit, error)

	// ListFilenames returns the distinct filenames of the owner's
	// stored chunks. Uploading a document again under the same name
	// does not produce a duplicate entry.
	ListFilenames(ctx context.Context, ownerID string) ([]string, error)

	// DeleteDocument removes all chunks the owner stored under the
	// given filename. Returns domain.ErrNotFound when none exist.
	DeleteDocument(ctx context.Context, ownerID, filename string) error

	// DeleteStaleChunks removes the owner's chunks under the given
	// filename that belong to a different document than
	// keepDocumentID. Re-ingestion inserts the new document first and
	// then clears the superseded copy with this call, so a store
	// failure never leaves the owner without any copy. Deleting
	// nothing is not an error.
	DeleteStaleChunks(ctx context.Context, ownerID, filename, keepDocumentID string) error

	// Close releases resources.
	Close() error
}
