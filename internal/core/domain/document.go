package domain

import "time"

// Document represents an uploaded document belonging to one owner.
// It is the canonical representation after text extraction.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// OwnerID identifies the user who uploaded the document.
	// Every read path must filter on this value.
	OwnerID string

	// Filename is the name the document was uploaded under.
	Filename string

	// Content is the full extracted text before chunking.
	Content string

	// ChunkCount is the number of chunks the document was split into.
	ChunkCount int

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time
}

// Chunk represents an embeddable unit within a document.
// Documents are split into chunks before embedding and storage.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// OwnerID is denormalised from the parent document so the
	// vector store can filter without a join.
	OwnerID string

	// Filename is the parent document's filename, carried along
	// so retrieval results can cite their source directly.
	Filename string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Embedding is the vector representation for similarity search.
	Embedding []float32
}
