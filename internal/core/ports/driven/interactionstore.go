package driven

import (
	"context"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// InteractionStore persists question/answer history.
// Backed by SQLite for local storage.
type InteractionStore interface {
	// SaveInteraction stores a completed interaction.
	SaveInteraction(ctx context.Context, interaction *domain.Interaction) error

	// ListInteractions returns the owner's interactions, newest first.
	// A limit of 0 returns all of them.
	ListInteractions(ctx context.Context, ownerID string, limit int) ([]domain.Interaction, error)

	// Close releases resources.
	Close() error
}
