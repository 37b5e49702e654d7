package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
)

// mockAskService implements driving.AskService for command tests.
type mockAskService struct {
	answer    *domain.Answer
	err       error
	lastOwner string
}

func (m *mockAskService) Ask(ctx context.Context, ownerID, question string) (*domain.Answer, error) {
	return m.AskWithProgress(ctx, ownerID, question, nil)
}

func (m *mockAskService) AskWithProgress(_ context.Context, ownerID, question string, progress driving.ProgressFunc) (*domain.Answer, error) {
	m.lastOwner = ownerID
	if progress != nil {
		progress(domain.AskPhaseReceived)
		progress(domain.AskPhaseCompleted)
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.answer != nil {
		return m.answer, nil
	}
	return &domain.Answer{
		Question: question,
		Text:     "The meeting is on Thursday.",
		References: []domain.Reference{
			{Filename: "notes.txt", Content: "The meeting is on Thursday at 10am.", Score: 0.92},
		},
	}, nil
}

type mockIngestService struct {
	doc       *domain.Document
	err       error
	lastOwner string
	lastPath  string
}

func (m *mockIngestService) Ingest(_ context.Context, ownerID, filename string, _ []byte) (*domain.Document, error) {
	m.lastOwner = ownerID
	if m.err != nil {
		return nil, m.err
	}
	if m.doc != nil {
		return m.doc, nil
	}
	return &domain.Document{ID: "doc-1", OwnerID: ownerID, Filename: filename, ChunkCount: 3}, nil
}

func (m *mockIngestService) IngestFile(ctx context.Context, ownerID, path string) (*domain.Document, error) {
	m.lastPath = path
	return m.Ingest(ctx, ownerID, path, nil)
}

type mockDocumentService struct {
	filenames []string
	listErr   error
	deleteErr error
	deleted   []string
	lastOwner string
}

func (m *mockDocumentService) ListFilenames(_ context.Context, ownerID string) ([]string, error) {
	m.lastOwner = ownerID
	return m.filenames, m.listErr
}

func (m *mockDocumentService) DeleteDocument(_ context.Context, ownerID, filename string) error {
	m.lastOwner = ownerID
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, filename)
	return nil
}

type mockHistoryService struct {
	interactions []domain.Interaction
	err          error
	lastOwner    string
	lastLimit    int
}

func (m *mockHistoryService) History(_ context.Context, ownerID string, limit int) ([]domain.Interaction, error) {
	m.lastOwner = ownerID
	m.lastLimit = limit
	return m.interactions, m.err
}

type mockSettingsService struct {
	settings *domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.settings != nil {
		return m.settings, nil
	}
	defaults := domain.DefaultAppSettings()
	return &defaults, nil
}

func (m *mockSettingsService) Save(*domain.AppSettings) error { return m.err }

func (m *mockSettingsService) SetEmbeddingProvider(domain.AIProvider, string, string) error {
	return m.err
}

func (m *mockSettingsService) SetLLMProvider(domain.AIProvider, string, string) error {
	return m.err
}

func (m *mockSettingsService) Validate() error { return m.err }

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

func (m *mockSettingsService) ValidateEmbeddingConfig() error { return m.err }

func (m *mockSettingsService) ValidateLLMConfig() error { return m.err }

// setupTestServices installs mock services and returns a cleanup
// function restoring the previous ones.
func setupTestServices() func() {
	oldAsk := askService
	oldIngest := ingestService
	oldDocument := documentService
	oldHistory := historyService
	oldSettings := settingsService

	askService = &mockAskService{}
	ingestService = &mockIngestService{}
	documentService = &mockDocumentService{filenames: []string{"agenda.md", "notes.txt"}}
	historyService = &mockHistoryService{
		interactions: []domain.Interaction{
			{
				ID:       "int-1",
				OwnerID:  "default",
				Question: "When is the meeting?",
				Answer:   "The meeting is on Thursday.",
				References: []domain.Reference{
					{Filename: "notes.txt", Content: "The meeting is on Thursday.", Score: 0.92},
				},
				CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
			},
		},
	}
	settingsService = &mockSettingsService{}

	return func() {
		askService = oldAsk
		ingestService = oldIngest
		documentService = oldDocument
		historyService = oldHistory
		settingsService = oldSettings
	}
}

// executeCommand runs the root command with args and captures output.
func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		ownerFlag = ""
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "recall", rootCmd.Use)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"ask", "ingest", "documents", "history", "chat", "watch", "mcp", "settings", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestRootCmd_OwnerFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("owner")
	assert.NotNil(t, flag)
	assert.Equal(t, "o", flag.Shorthand)
}

func TestOwnerID_DefaultsWithoutFlag(t *testing.T) {
	ownerFlag = ""
	t.Setenv("RECALL_OWNER", "")

	assert.Equal(t, "default", ownerID())
}

func TestOwnerID_ReadsEnvironment(t *testing.T) {
	ownerFlag = ""
	t.Setenv("RECALL_OWNER", "alice")

	assert.Equal(t, "alice", ownerID())
}

func TestOwnerID_FlagWins(t *testing.T) {
	ownerFlag = "bob"
	defer func() { ownerFlag = "" }()
	t.Setenv("RECALL_OWNER", "alice")

	assert.Equal(t, "bob", ownerID())
}
