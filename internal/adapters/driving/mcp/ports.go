package mcp

import (
	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ask answers questions from an owner's documents.
	Ask driving.AskService

	// Ingest uploads documents into an owner's corpus.
	Ingest driving.IngestService

	// Document manages an owner's uploaded documents.
	Document driving.DocumentService

	// History reads past question/answer exchanges.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Ask == nil {
		return ErrMissingAskService
	}
	// Ingest, Document and History are optional; the matching tools
	// and resources degrade gracefully without them.
	return nil
}
