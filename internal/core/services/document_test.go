package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

func TestDocumentService_ListFilenames(t *testing.T) {
	store := &mockChunkStore{filenames: []string{"agenda.md", "notes.txt"}}
	svc := NewDocumentService(store)

	filenames, err := svc.ListFilenames(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, []string{"agenda.md", "notes.txt"}, filenames)
}

func TestDocumentService_ListFilenames_EmptyOwner(t *testing.T) {
	svc := NewDocumentService(&mockChunkStore{})

	_, err := svc.ListFilenames(context.Background(), "")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentService_ListFilenames_StoreError(t *testing.T) {
	store := &mockChunkStore{listErr: domain.ErrStoreUnavailable}
	svc := NewDocumentService(store)

	_, err := svc.ListFilenames(context.Background(), "alice")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestDocumentService_DeleteDocument(t *testing.T) {
	store := &mockChunkStore{}
	svc := NewDocumentService(store)

	err := svc.DeleteDocument(context.Background(), "alice", "notes.txt")

	require.NoError(t, err)
	assert.Equal(t, []string{"notes.txt"}, store.deleted)
}

func TestDocumentService_DeleteDocument_Validation(t *testing.T) {
	svc := NewDocumentService(&mockChunkStore{})

	err := svc.DeleteDocument(context.Background(), "", "notes.txt")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = svc.DeleteDocument(context.Background(), "alice", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentService_DeleteDocument_NotFound(t *testing.T) {
	store := &mockChunkStore{deleteErr: domain.ErrNotFound}
	svc := NewDocumentService(store)

	err := svc.DeleteDocument(context.Background(), "alice", "ghost.txt")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
