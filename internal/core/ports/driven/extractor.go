package driven

import "context"

// Extractor turns uploaded file bytes into plain text.
// Each extractor handles specific file extensions (e.g., PDF, Markdown).
type Extractor interface {
	// SupportedExtensions returns the lowercase file extensions this
	// extractor handles, including the leading dot (".md", ".pdf").
	SupportedExtensions() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific extractors should return 50-89.
	// Fallback extractors should return 1-9.
	Priority() int

	// Extract produces the plain text content of the file.
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}

// ExtractorRegistry selects the appropriate extractor for a file.
// It maintains a priority-ordered list of extractors and dispatches
// based on file extension.
type ExtractorRegistry interface {
	// Extract runs the best matching extractor for the filename.
	// Returns domain.ErrUnsupportedType when no extractor matches.
	Extract(ctx context.Context, filename string, data []byte) (string, error)

	// Register adds an extractor to the registry.
	Register(extractor Extractor)

	// SupportedExtensions returns all extensions that can be extracted.
	SupportedExtensions() []string
}
