package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns answer with references", func(t *testing.T) {
		mockAsk := &mockAskService{
			answer: &domain.Answer{
				Question: "When is the meeting?",
				Text:     "Thursday at 10am.",
				References: []domain.Reference{
					{Filename: "notes.txt", Content: "meeting Thursday 10am", Score: 0.92},
				},
			},
		}

		server, err := NewServer(&Ports{Ask: mockAsk})
		require.NoError(t, err)

		input := AskInput{Question: "When is the meeting?", Owner: "alice"}
		_, output, err := server.handleAsk(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "Thursday at 10am.", output.Answer)
		require.Len(t, output.References, 1)
		assert.Equal(t, "notes.txt", output.References[0].Filename)
		assert.InDelta(t, 0.92, output.References[0].Score, 0.001)
		assert.False(t, output.NoContext)
		assert.Equal(t, "alice", mockAsk.lastOwner)
	})

	t.Run("empty owner defaults", func(t *testing.T) {
		mockAsk := &mockAskService{}
		server, err := NewServer(&Ports{Ask: mockAsk})
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{Question: "q"})

		require.NoError(t, err)
		assert.Equal(t, "default", mockAsk.lastOwner)
	})

	t.Run("no context answer is flagged", func(t *testing.T) {
		mockAsk := &mockAskService{
			answer: &domain.Answer{
				Text:       "No relevant information found in your uploaded documents.",
				References: []domain.Reference{},
				NoContext:  true,
			},
		}
		server, err := NewServer(&Ports{Ask: mockAsk})
		require.NoError(t, err)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Question: "q"})

		require.NoError(t, err)
		assert.True(t, output.NoContext)
		assert.Empty(t, output.References)
	})

	t.Run("returns error on pipeline failure", func(t *testing.T) {
		mockAsk := &mockAskService{err: errors.New("embedding unavailable")}
		server, err := NewServer(&Ports{Ask: mockAsk})
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{Question: "q"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "embedding unavailable")
	})
}

func TestServer_handleUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads document", func(t *testing.T) {
		mockIngest := &mockIngestService{}
		server, err := NewServer(&Ports{Ask: &mockAskService{}, Ingest: mockIngest})
		require.NoError(t, err)

		input := UploadInput{Filename: "notes.txt", Content: "meeting notes", Owner: "alice"}
		_, output, err := server.handleUpload(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "doc-1", output.DocumentID)
		assert.Equal(t, "notes.txt", output.Filename)
		assert.Equal(t, 2, output.ChunkCount)
		assert.Equal(t, "alice", mockIngest.lastOwner)
	})

	t.Run("returns error on ingest failure", func(t *testing.T) {
		mockIngest := &mockIngestService{err: errors.New("unsupported file type")}
		server, err := NewServer(&Ports{Ask: &mockAskService{}, Ingest: mockIngest})
		require.NoError(t, err)

		_, _, err = server.handleUpload(ctx, nil, UploadInput{Filename: "a.bin"})

		require.Error(t, err)
	})

	t.Run("nil ingest service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Ask: &mockAskService{}})
		require.NoError(t, err)

		_, _, err = server.handleUpload(ctx, nil, UploadInput{Filename: "a.txt"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not configured")
	})
}

func TestServer_handleListDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("lists filenames", func(t *testing.T) {
		mockDoc := &mockDocumentService{filenames: []string{"agenda.md", "notes.txt"}}
		server, err := NewServer(&Ports{Ask: &mockAskService{}, Document: mockDoc})
		require.NoError(t, err)

		_, output, err := server.handleListDocuments(ctx, nil, ListDocumentsInput{Owner: "alice"})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, []string{"agenda.md", "notes.txt"}, output.Filenames)
		assert.Equal(t, "alice", mockDoc.lastOwner)
	})

	t.Run("returns error on store failure", func(t *testing.T) {
		mockDoc := &mockDocumentService{err: errors.New("store unavailable")}
		server, err := NewServer(&Ports{Ask: &mockAskService{}, Document: mockDoc})
		require.NoError(t, err)

		_, _, err = server.handleListDocuments(ctx, nil, ListDocumentsInput{})

		require.Error(t, err)
	})
}
