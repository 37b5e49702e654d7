// Package chunker provides fixed-size text splitting for ingestion.
package chunker

import (
	"github.com/google/uuid"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// DefaultMaxChunkSize is the default number of characters per chunk.
const DefaultMaxChunkSize = 1000

// Splitter splits document content into fixed-size segments.
// Splitting is deterministic: the same input always produces the same
// segments, and concatenating the segments reproduces the input exactly.
type Splitter struct {
	maxChunkSize int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithMaxChunkSize sets the maximum chunk size in characters.
func WithMaxChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.maxChunkSize = size
		}
	}
}

// New creates a new splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		maxChunkSize: DefaultMaxChunkSize,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// MaxChunkSize returns the configured maximum segment length.
func (s *Splitter) MaxChunkSize() int {
	return s.maxChunkSize
}

// Split divides text into segments of at most maxChunkSize characters.
// Boundaries fall on rune boundaries so multi-byte characters are never
// split. Empty input produces no segments.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	segments := make([]string, 0, (len(runes)/s.maxChunkSize)+1)

	for start := 0; start < len(runes); start += s.maxChunkSize {
		end := start + s.maxChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		segments = append(segments, string(runes[start:end]))
	}

	return segments
}

// Chunk splits a document's content and wraps each segment in a
// domain.Chunk carrying the document's owner and filename. Embeddings
// are left empty for the caller to fill in.
func (s *Splitter) Chunk(doc *domain.Document) []domain.Chunk {
	segments := s.Split(doc.Content)
	if len(segments) == 0 {
		return nil
	}

	chunks := make([]domain.Chunk, 0, len(segments))
	for position, segment := range segments {
		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			OwnerID:    doc.OwnerID,
			Filename:   doc.Filename,
			Content:    segment,
			Position:   position,
		})
	}

	return chunks
}
