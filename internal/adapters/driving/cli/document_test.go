package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

func TestDocumentsCmd_Use(t *testing.T) {
	assert.Equal(t, "documents", documentsCmd.Use)
}

func TestDocumentsList_PrintsFilenames(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("documents", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "agenda.md")
	assert.Contains(t, out, "notes.txt")
	assert.Contains(t, out, "Total: 2 documents")
}

func TestDocumentsList_DefaultSubcommand(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("documents")

	require.NoError(t, err)
	assert.Contains(t, out, "agenda.md")
}

func TestDocumentsList_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	documentService = &mockDocumentService{}

	out, err := executeCommand("documents", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No documents uploaded yet")
}

func TestDocumentsList_PassesOwnerFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := &mockDocumentService{}
	documentService = mock

	_, err := executeCommand("--owner", "alice", "documents", "list")

	require.NoError(t, err)
	assert.Equal(t, "alice", mock.lastOwner)
}

func TestDocumentsDelete_RemovesDocument(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := &mockDocumentService{}
	documentService = mock

	out, err := executeCommand("documents", "delete", "notes.txt")

	require.NoError(t, err)
	assert.Equal(t, []string{"notes.txt"}, mock.deleted)
	assert.Contains(t, out, "Deleted notes.txt")
}

func TestDocumentsDelete_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	documentService = &mockDocumentService{deleteErr: domain.ErrNotFound}

	_, err := executeCommand("documents", "delete", "ghost.txt")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no document named ghost.txt")
}

func TestDocumentsDelete_RequiresFilename(t *testing.T) {
	_, err := executeCommand("documents", "delete")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestDocumentsList_StoreError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	documentService = &mockDocumentService{listErr: errors.New("store unavailable")}

	_, err := executeCommand("documents", "list")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list documents")
}
