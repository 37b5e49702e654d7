package domain

// Answer is the outcome of a completed question pipeline.
type Answer struct {
	// Question is the question as asked.
	Question string

	// Text is the answer shown to the user.
	Text string

	// References are the chunks the answer was grounded on,
	// in rank order. Empty when NoContext is true.
	References []Reference

	// NoContext is true when retrieval found nothing relevant
	// and Text carries the fixed fallback answer.
	NoContext bool
}

// AskPhase identifies a stage of the question pipeline. Phases move
// strictly forward; Failed is terminal from any stage.
type AskPhase string

// Pipeline phases in order of progression.
const (
	AskPhaseReceived     AskPhase = "received"
	AskPhaseEmbedding    AskPhase = "embedding"
	AskPhaseRetrieving   AskPhase = "retrieving"
	AskPhaseNoContext    AskPhase = "no_context"
	AskPhaseSynthesizing AskPhase = "synthesizing"
	AskPhaseLogging      AskPhase = "logging"
	AskPhaseCompleted    AskPhase = "completed"
	AskPhaseFailed       AskPhase = "failed"
)

// String returns the string representation.
func (p AskPhase) String() string {
	return string(p)
}

// Terminal returns true if no further phase can follow.
func (p AskPhase) Terminal() bool {
	return p == AskPhaseCompleted || p == AskPhaseFailed
}
