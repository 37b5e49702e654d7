// Package tui provides the interactive chat interface for recall.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the chat UI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ask answers questions from the owner's documents.
	Ask driving.AskService

	// History loads past exchanges shown when the session starts.
	History driving.HistoryService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(ask driving.AskService, history driving.HistoryService) *Ports {
	return &Ports{
		Ask:     ask,
		History: history,
	}
}

// Validate ensures all required ports are set.
// History is optional; the chat starts with an empty transcript
// without it.
func (p *Ports) Validate() error {
	if p.Ask == nil {
		return ErrMissingAskService
	}
	return nil
}
