// Package domain defines the core business entities for Recall.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An uploaded document owned by a single user
//   - Chunk: An embeddable unit split out of a document
//   - Interaction: A logged question/answer exchange
//   - Reference: A retrieved chunk cited by an answer
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
