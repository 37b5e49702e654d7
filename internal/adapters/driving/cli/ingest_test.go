package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest [file...]", ingestCmd.Use)
}

func TestIngestCmd_RequiresAtLeastOneArg(t *testing.T) {
	_, err := executeCommand("ingest")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestIngestCmd_IngestsFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := &mockIngestService{}
	ingestService = mock

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("meeting notes"), 0o600))

	out, err := executeCommand("ingest", path)

	require.NoError(t, err)
	assert.Equal(t, path, mock.lastPath)
	assert.Contains(t, out, "Ingested")
	assert.Contains(t, out, "3 chunks")
}

func TestIngestCmd_MultipleFiles(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("aaa"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("bbb"), 0o600))

	out, err := executeCommand("ingest", a, b)

	require.NoError(t, err)
	assert.Equal(t, 2, countOccurrences(out, "Ingested"))
}

func TestIngestCmd_PassesOwnerFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := &mockIngestService{}
	ingestService = mock

	_, err := executeCommand("--owner", "alice", "ingest", "notes.txt")

	require.NoError(t, err)
	assert.Equal(t, "alice", mock.lastOwner)
}

func TestIngestCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	ingestService = &mockIngestService{err: errors.New("unsupported file type")}

	_, err := executeCommand("ingest", "archive.bin")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "archive.bin")
}

func TestIngestCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	ingestService = nil

	_, err := executeCommand("ingest", "notes.txt")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ingest service not configured")
}

func countOccurrences(s, sub string) int {
	count := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			count++
		}
	}
	return count
}
