package driving

import (
	"context"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// ProgressFunc receives pipeline phase transitions as they happen.
// Implementations must be fast; the pipeline calls them inline.
type ProgressFunc func(phase domain.AskPhase)

// AskService answers questions from an owner's uploaded documents.
type AskService interface {
	// Ask runs the full pipeline for one question: embed, retrieve,
	// synthesize, log. The returned answer is grounded exclusively in
	// the owner's documents. An empty retrieval is not an error; it
	// yields a fixed fallback answer with no references.
	Ask(ctx context.Context, ownerID, question string) (*domain.Answer, error)

	// AskWithProgress is Ask with phase notifications for interactive
	// frontends. A nil progress function behaves like Ask.
	AskWithProgress(ctx context.Context, ownerID, question string, progress ProgressFunc) (*domain.Answer, error)
}

// HistoryService reads past question/answer exchanges.
type HistoryService interface {
	// History returns the owner's interactions, newest first.
	// A limit of 0 returns all of them.
	History(ctx context.Context, ownerID string, limit int) ([]domain.Interaction, error)
}
