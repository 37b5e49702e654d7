package mcp

import (
	"context"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
)

// mockAskService is a mock implementation of driving.AskService.
type mockAskService struct {
	answer    *domain.Answer
	err       error
	lastOwner string
}

func (m *mockAskService) Ask(_ context.Context, ownerID, question string) (*domain.Answer, error) {
	m.lastOwner = ownerID
	if m.err != nil {
		return nil, m.err
	}
	if m.answer != nil {
		return m.answer, nil
	}
	return &domain.Answer{Question: question, Text: "mock answer"}, nil
}

func (m *mockAskService) AskWithProgress(
	ctx context.Context,
	ownerID, question string,
	_ driving.ProgressFunc,
) (*domain.Answer, error) {
	return m.Ask(ctx, ownerID, question)
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	doc       *domain.Document
	err       error
	lastOwner string
}

func (m *mockIngestService) Ingest(
	_ context.Context,
	ownerID, filename string,
	_ []byte,
) (*domain.Document, error) {
	m.lastOwner = ownerID
	if m.err != nil {
		return nil, m.err
	}
	if m.doc != nil {
		return m.doc, nil
	}
	return &domain.Document{ID: "doc-1", OwnerID: ownerID, Filename: filename, ChunkCount: 2}, nil
}

func (m *mockIngestService) IngestFile(ctx context.Context, ownerID, path string) (*domain.Document, error) {
	return m.Ingest(ctx, ownerID, path, nil)
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	filenames []string
	err       error
	lastOwner string
}

func (m *mockDocumentService) ListFilenames(_ context.Context, ownerID string) ([]string, error) {
	m.lastOwner = ownerID
	return m.filenames, m.err
}

func (m *mockDocumentService) DeleteDocument(_ context.Context, ownerID, _ string) error {
	m.lastOwner = ownerID
	return m.err
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	interactions []domain.Interaction
	err          error
	lastOwner    string
}

func (m *mockHistoryService) History(
	_ context.Context,
	ownerID string,
	_ int,
) ([]domain.Interaction, error) {
	m.lastOwner = ownerID
	return m.interactions, m.err
}
