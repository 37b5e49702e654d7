package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

func TestHistoryService_History(t *testing.T) {
	store := &mockInteractionStore{
		saved: []domain.Interaction{
			{ID: "1", OwnerID: "alice", Question: "first?", CreatedAt: time.Now().Add(-time.Hour)},
			{ID: "2", OwnerID: "bob", Question: "not hers", CreatedAt: time.Now().Add(-time.Minute)},
			{ID: "3", OwnerID: "alice", Question: "second?", CreatedAt: time.Now()},
		},
	}
	svc := NewHistoryService(store)

	interactions, err := svc.History(context.Background(), "alice", 0)

	require.NoError(t, err)
	require.Len(t, interactions, 2)
	assert.Equal(t, "second?", interactions[0].Question)
	assert.Equal(t, "first?", interactions[1].Question)
}

func TestHistoryService_History_Limit(t *testing.T) {
	store := &mockInteractionStore{
		saved: []domain.Interaction{
			{ID: "1", OwnerID: "alice"},
			{ID: "2", OwnerID: "alice"},
			{ID: "3", OwnerID: "alice"},
		},
	}
	svc := NewHistoryService(store)

	interactions, err := svc.History(context.Background(), "alice", 2)

	require.NoError(t, err)
	assert.Len(t, interactions, 2)
}

func TestHistoryService_History_Validation(t *testing.T) {
	svc := NewHistoryService(&mockInteractionStore{})

	_, err := svc.History(context.Background(), "", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.History(context.Background(), "alice", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryService_History_StoreError(t *testing.T) {
	store := &mockInteractionStore{listErr: domain.ErrStoreUnavailable}
	svc := NewHistoryService(store)

	_, err := svc.History(context.Background(), "alice", 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
