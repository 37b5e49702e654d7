package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads past question/answer exchanges.
type HistoryService struct {
	interactions driven.InteractionStore
}

// NewHistoryService creates a new history service.
func NewHistoryService(interactions driven.InteractionStore) *HistoryService {
	return &HistoryService{interactions: interactions}
}

// History returns the owner's interactions, newest first.
// A limit of 0 returns all of them.
func (s *HistoryService) History(ctx context.Context, ownerID string, limit int) ([]domain.Interaction, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("%w: owner ID is required", domain.ErrInvalidInput)
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", domain.ErrInvalidInput)
	}
	if s.interactions == nil {
		return nil, fmt.Errorf("%w: no interaction store configured", domain.ErrStoreUnavailable)
	}

	interactions, err := s.interactions.ListInteractions(ctx, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	return interactions, nil
}
