package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/extract/html"
	"github.com/recall-labs/recall-cli/internal/extract/markdown"
	"github.com/recall-labs/recall-cli/internal/extract/pdf"
	"github.com/recall-labs/recall-cli/internal/extract/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry dispatches files to extractors by extension.
// When several extractors claim an extension the highest priority wins.
type Registry struct {
	mu         sync.RWMutex
	extractors []driven.Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewDefaultRegistry creates a registry with every built-in extractor
// registered. This is what the binary ingests with.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(html.New())
	r.Register(pdf.New())
	return r
}

// Register adds an extractor to the registry.
func (r *Registry) Register(extractor driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors = append(r.extractors, extractor)
}

// Extract runs the best matching extractor for the filename.
// Returns domain.ErrUnsupportedType when no extractor matches.
func (r *Registry) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	r.mu.RLock()
	var best driven.Extractor
	for _, candidate := range r.extractors {
		if !supports(candidate, ext) {
			continue
		}
		if best == nil || candidate.Priority() > best.Priority() {
			best = candidate
		}
	}
	r.mu.RUnlock()

	if best == nil {
		return "", fmt.Errorf("no extractor for %q: %w", ext, domain.ErrUnsupportedType)
	}

	return best.Extract(ctx, filename, data)
}

// SupportedExtensions returns all extensions that can be extracted,
// sorted and deduplicated.
func (r *Registry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	for _, extractor := range r.extractors {
		for _, ext := range extractor.SupportedExtensions() {
			seen[ext] = true
		}
	}

	extensions := make([]string, 0, len(seen))
	for ext := range seen {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)
	return extensions
}

func supports(extractor driven.Extractor, ext string) bool {
	for _, supported := range extractor.SupportedExtensions() {
		if supported == ext {
			return true
		}
	}
	return false
}
