package plaintext

import (
	"context"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text files.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".txt", ".text", ".log", ".csv"}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 5 // Fallback extractor
}

// Extract returns the file bytes as text unchanged.
func (e *Extractor) Extract(_ context.Context, _ string, data []byte) (string, error) {
	if data == nil {
		return "", domain.ErrInvalidInput
	}
	return string(data), nil
}
