package domain

import "time"

// Reference is a retrieved chunk cited by an answer.
// References are stored as a snapshot: deleting the source
// document later does not rewrite past interactions.
type Reference struct {
	// Filename is the source document's filename.
	Filename string

	// Content is the chunk text that grounded the answer.
	Content string

	// Score is the similarity score at retrieval time.
	Score float32
}

// Interaction is a completed question/answer exchange for one owner.
// An interaction is only recorded once the pipeline has produced an
// answer; failed pipelines leave no interaction behind.
type Interaction struct {
	// ID is the unique identifier for the interaction.
	ID string

	// OwnerID identifies the user who asked the question.
	OwnerID string

	// Question is the user's question as asked.
	Question string

	// Answer is the generated (or fallback) answer text.
	Answer string

	// References are the chunks the answer was grounded on.
	// Empty when no relevant context was found.
	References []Reference

	// CreatedAt is when the interaction completed.
	CreatedAt time.Time
}
