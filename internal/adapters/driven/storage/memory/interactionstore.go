// Package memory provides in-memory implementations of driven ports
// for tests and development.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
)

// Ensure InteractionStore implements the interface.
var _ driven.InteractionStore = (*InteractionStore)(nil)

// InteractionStore is an in-memory implementation of driven.InteractionStore.
type InteractionStore struct {
	mu           sync.RWMutex
	interactions []domain.Interaction
}

// NewInteractionStore creates a new in-memory interaction store.
func NewInteractionStore() *InteractionStore {
	return &InteractionStore{}
}

// SaveInteraction stores a completed interaction.
func (s *InteractionStore) SaveInteraction(_ context.Context, interaction *domain.Interaction) error {
	if interaction == nil {
		return domain.ErrInvalidInput
	}
	if interaction.OwnerID == "" {
		return fmt.Errorf("interaction has no owner: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *interaction
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	if stored.References == nil {
		stored.References = []domain.Reference{}
	}
	s.interactions = append(s.interactions, stored)
	return nil
}

// ListInteractions returns the owner's interactions, newest first.
func (s *InteractionStore) ListInteractions(_ context.Context, ownerID string, limit int) ([]domain.Interaction, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner id required: %w", domain.ErrInvalidInput)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Interaction
	for _, interaction := range s.interactions {
		if interaction.OwnerID == ownerID {
			result = append(result, interaction)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Close releases resources.
func (s *InteractionStore) Close() error {
	return nil
}
