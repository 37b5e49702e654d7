// Package messages defines Bubbletea message types for the chat UI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// AskCompleted carries the pipeline outcome back to the model.
type AskCompleted struct {
	Question string
	Answer   *domain.Answer
	Err      error
}

// PhaseChanged reports pipeline progress while a question is in flight.
type PhaseChanged struct {
	Phase domain.AskPhase
}

// HistoryLoaded carries past interactions loaded at startup.
type HistoryLoaded struct {
	Interactions []domain.Interaction
	Err          error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
