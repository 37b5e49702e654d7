// Package memory provides an in-memory ChunkStore for tests and
// development. Search is exact brute-force cosine similarity.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is an in-memory implementation of driven.ChunkStore.
type ChunkStore struct {
	mu         sync.RWMutex
	dimensions int
	chunks     []domain.Chunk
}

// NewChunkStore creates a new in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{}
}

// EnsureCollection records the expected vector dimensions.
func (s *ChunkStore) EnsureCollection(_ context.Context, dimensions int) error {
	if dimensions <= 0 {
		return fmt.Errorf("dimensions must be positive: %w", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimensions = dimensions
	return nil
}

// InsertChunks stores all chunks or none of them.
func (s *ChunkStore) InsertChunks(_ context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the whole batch before touching state.
	for _, chunk := range chunks {
		if chunk.OwnerID == "" {
			return fmt.Errorf("chunk %s has no owner: %w", chunk.ID, domain.ErrInvalidInput)
		}
		if s.dimensions > 0 && len(chunk.Embedding) != s.dimensions {
			return fmt.Errorf("chunk %s has %d dimensions, want %d: %w",
				chunk.ID, len(chunk.Embedding), s.dimensions, domain.ErrInvalidInput)
		}
	}

	s.chunks = append(s.chunks, chunks...)
	return nil
}

// NearestNeighbors returns the owner's closest chunks by cosine similarity.
func (s *ChunkStore) NearestNeighbors(_ context.Context, ownerID string, vector []float32, params driven.SearchParams) ([]driven.ChunkHit, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner id required: %w", domain.ErrInvalidInput)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var hits []driven.ChunkHit
	for _, chunk := range s.chunks {
		if chunk.OwnerID != ownerID {
			continue
		}
		score := cosineSimilarity(vector, chunk.Embedding)
		if params.MinScore > 0 && score < params.MinScore {
			continue
		}
		hit := driven.ChunkHit{Chunk: chunk, Score: score}
		hit.Chunk.Embedding = nil
		hits = append(hits, hit)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if params.Limit > 0 && len(hits) > params.Limit {
		hits = hits[:params.Limit]
	}
	return hits, nil
}

// ListFilenames returns the distinct filenames of the owner's chunks, sorted.
func (s *ChunkStore) ListFilenames(_ context.Context, ownerID string) ([]string, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner id required: %w", domain.ErrInvalidInput)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	for _, chunk := range s.chunks {
		if chunk.OwnerID == ownerID {
			seen[chunk.Filename] = true
		}
	}

	filenames := make([]string, 0, len(seen))
	for name := range seen {
		filenames = append(filenames, name)
	}
	sort.Strings(filenames)
	return filenames, nil
}

// DeleteDocument removes all of the owner's chunks for a filename.
func (s *ChunkStore) DeleteDocument(_ context.Context, ownerID, filename string) error {
	if ownerID == "" {
		return fmt.Errorf("owner id required: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := s.chunks[:0]
	removed := 0
	for _, chunk := range s.chunks {
		if chunk.OwnerID == ownerID && chunk.Filename == filename {
			removed++
			continue
		}
		remaining = append(remaining, chunk)
	}
	s.chunks = remaining

	if removed == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteStaleChunks removes the owner's chunks under filename that
// belong to a different document than keepDocumentID. Deleting
// nothing is not an error.
func (s *ChunkStore) DeleteStaleChunks(_ context.Context, ownerID, filename, keepDocumentID string) error {
	if ownerID == "" {
		return fmt.Errorf("owner id required: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := s.chunks[:0]
	for _, chunk := range s.chunks {
		if chunk.OwnerID == ownerID && chunk.Filename == filename && chunk.DocumentID != keepDocumentID {
			continue
		}
		remaining = append(remaining, chunk)
	}
	s.chunks = remaining
	return nil
}

// Close releases resources.
func (s *ChunkStore) Close() error {
	return nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched or zero-magnitude vectors score 0.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
