package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCmd_Use(t *testing.T) {
	assert.Equal(t, "history", historyCmd.Use)
}

func TestHistoryCmd_HasLimitFlag(t *testing.T) {
	flag := historyCmd.Flags().Lookup("limit")
	require.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}

func TestHistoryCmd_PrintsInteractions(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("history")

	require.NoError(t, err)
	assert.Contains(t, out, "Q: When is the meeting?")
	assert.Contains(t, out, "A: The meeting is on Thursday.")
	assert.Contains(t, out, "Sources: notes.txt")
}

func TestHistoryCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	historyService = &mockHistoryService{}

	out, err := executeCommand("history")

	require.NoError(t, err)
	assert.Contains(t, out, "No history yet.")
}

func TestHistoryCmd_PassesLimitAndOwner(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := &mockHistoryService{}
	historyService = mock
	defer func() { historyLimit = 10 }()

	_, err := executeCommand("--owner", "alice", "history", "--limit", "3")

	require.NoError(t, err)
	assert.Equal(t, "alice", mock.lastOwner)
	assert.Equal(t, 3, mock.lastLimit)
}

func TestHistoryCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	historyService = &mockHistoryService{err: errors.New("db locked")}

	_, err := executeCommand("history")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load history")
}

func TestHistoryCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	historyService = nil

	_, err := executeCommand("history")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "history service not configured")
}
