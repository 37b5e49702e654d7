package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	// Raised before any provider call is made.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file type no extractor handles.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmbeddingUnavailable indicates the embedding provider failed
	// or is not configured. Operations that need a vector abort whole;
	// no partial ingestion or retrieval happens without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrGenerationUnavailable indicates the LLM provider failed or is
	// not configured. Retrieval may have succeeded; synthesis did not.
	ErrGenerationUnavailable = errors.New("generation service unavailable")

	// ErrStoreUnavailable indicates a persistence backend could not be
	// reached or returned an infrastructure failure.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrOwnerScopeViolation indicates data crossed an owner boundary.
	// This is a defect, never a user error, and always aborts.
	ErrOwnerScopeViolation = errors.New("owner scope violation")
)
