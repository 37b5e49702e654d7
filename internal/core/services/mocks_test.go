package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
)

// --- Mock implementations shared across service tests ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
type mockEmbeddingService struct {
	embedding  []float32
	embedErr   error
	dims       int
	embedCalls int
	batchCalls int
}

func (m *mockEmbeddingService) Embed(_ context.Context, _ string) ([]float32, error) {
	m.embedCalls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.embedding, nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.batchCalls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	result := make([][]float32, len(texts))
	for i := range texts {
		result[i] = m.embedding
	}
	return result, nil
}

func (m *mockEmbeddingService) Dimensions() int {
	if m.dims > 0 {
		return m.dims
	}
	return 3
}

func (m *mockEmbeddingService) ModelName() string {
	return "mock-embed"
}

func (m *mockEmbeddingService) Ping(_ context.Context) error {
	return nil
}

func (m *mockEmbeddingService) Close() error {
	return nil
}

// mockLLMService implements driven.LLMService for testing.
type mockLLMService struct {
	response    string
	generateErr error
	lastPrompt  string
	calls       int
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	if m.generateErr != nil {
		return "", m.generateErr
	}
	if m.response != "" {
		return m.response, nil
	}
	return "mock answer", nil
}

func (m *mockLLMService) ModelName() string {
	return "mock-llm"
}

func (m *mockLLMService) Ping(_ context.Context) error {
	return nil
}

func (m *mockLLMService) Close() error {
	return nil
}

// mockChunkStore implements driven.ChunkStore for testing.
type mockChunkStore struct {
	hits       []driven.ChunkHit
	searchErr  error
	insertErr  error
	ensureErr  error
	deleteErr  error
	filenames  []string
	listErr    error
	inserted   []domain.Chunk
	deleted    []string
	lastOwner  string
	lastParams driven.SearchParams

	staleErr        error
	staleCleared    []string
	keptDocumentIDs []string
}

func (m *mockChunkStore) EnsureCollection(_ context.Context, _ int) error {
	return m.ensureErr
}

func (m *mockChunkStore) InsertChunks(_ context.Context, chunks []domain.Chunk) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, chunks...)
	return nil
}

func (m *mockChunkStore) NearestNeighbors(
	_ context.Context, ownerID string, _ []float32, params driven.SearchParams,
) ([]driven.ChunkHit, error) {
	m.lastOwner = ownerID
	m.lastParams = params
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if params.Limit > 0 && len(m.hits) > params.Limit {
		return m.hits[:params.Limit], nil
	}
	return m.hits, nil
}

func (m *mockChunkStore) ListFilenames(_ context.Context, _ string) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.filenames, nil
}

func (m *mockChunkStore) DeleteDocument(_ context.Context, _, filename string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, filename)
	return nil
}

func (m *mockChunkStore) DeleteStaleChunks(_ context.Context, _, filename, keepDocumentID string) error {
	if m.staleErr != nil {
		return m.staleErr
	}
	m.staleCleared = append(m.staleCleared, filename)
	m.keptDocumentIDs = append(m.keptDocumentIDs, keepDocumentID)
	return nil
}

func (m *mockChunkStore) Close() error {
	return nil
}

// mockInteractionStore implements driven.InteractionStore for testing.
type mockInteractionStore struct {
	saved   []domain.Interaction
	saveErr error
	listErr error
}

func (m *mockInteractionStore) SaveInteraction(_ context.Context, interaction *domain.Interaction) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, *interaction)
	return nil
}

func (m *mockInteractionStore) ListInteractions(_ context.Context, ownerID string, limit int) ([]domain.Interaction, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.Interaction
	for i := len(m.saved) - 1; i >= 0; i-- {
		if m.saved[i].OwnerID != ownerID {
			continue
		}
		out = append(out, m.saved[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *mockInteractionStore) Close() error {
	return nil
}

// mockExtractorRegistry implements driven.ExtractorRegistry for testing.
// It passes file bytes through as text unless an error is configured.
type mockExtractorRegistry struct {
	extractErr error
}

func (m *mockExtractorRegistry) Extract(_ context.Context, filename string, data []byte) (string, error) {
	if m.extractErr != nil {
		return "", m.extractErr
	}
	if strings.HasSuffix(filename, ".bin") {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedType, filename)
	}
	return string(data), nil
}

func (m *mockExtractorRegistry) Register(_ driven.Extractor) {}

func (m *mockExtractorRegistry) SupportedExtensions() []string {
	return []string{".txt"}
}

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
	loadErr error
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if m.loadErr != nil {
		return "", m.loadErr
	}
	prompt, ok := m.prompts[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt: %s", name)
	}
	return prompt, nil
}

func (m *mockPromptStore) Reload() {}

// mockConfigStore implements driven.ConfigStore backed by a map.
type mockConfigStore struct {
	values map[string]any
	setErr error
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{values: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if v, ok := m.values[key].(string); ok {
		return v
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	switch v := m.values[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

func (m *mockConfigStore) GetFloat(key string) float64 {
	switch v := m.values[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func (m *mockConfigStore) GetBool(key string) bool {
	if v, ok := m.values[key].(bool); ok {
		return v
	}
	return false
}

func (m *mockConfigStore) Set(key string, value any) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }

func (m *mockConfigStore) Load() error { return nil }

func (m *mockConfigStore) Path() string { return "/tmp/mock-config.toml" }

// mockAIValidator implements driven.AIConfigValidator for testing.
type mockAIValidator struct {
	embeddingErr error
	llmErr       error
}

func (m *mockAIValidator) ValidateEmbedding(_ *domain.EmbeddingSettings) error {
	return m.embeddingErr
}

func (m *mockAIValidator) ValidateLLM(_ *domain.LLMSettings) error {
	return m.llmErr
}
