package services

import (
	"fmt"
	"time"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyChunkMaxSize      = "chunking.max_chunk_size"
	keyEmbedProvider     = "embedding.provider"
	keyEmbedModel        = "embedding.model"
	keyEmbedBaseURL      = "embedding.base_url"
	keyEmbedAPIKey       = "embedding.api_key"
	keyEmbedTimeout      = "embedding.timeout_seconds"
	keyLLMProvider       = "llm.provider"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMAPIKey         = "llm.api_key"
	keyLLMTimeout        = "llm.timeout_seconds"
	keyRetrievalPool     = "retrieval.candidate_pool"
	keyRetrievalLimit    = "retrieval.store_limit"
	keyRetrievalMaxRefs  = "retrieval.max_references"
	keyRetrievalMinScore = "retrieval.min_score"
	keyVectorAddress     = "vector_store.address"
	keyVectorCollection  = "vector_store.collection"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Chunking: domain.ChunkingSettings{
			MaxChunkSize: s.getInt(keyChunkMaxSize, defaults.Chunking.MaxChunkSize),
		},
		Embedding: domain.EmbeddingSettings{
			Provider: s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:    s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyEmbedAPIKey),
			Timeout:  time.Duration(s.getInt(keyEmbedTimeout, 0)) * time.Second,
		},
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
			Timeout:  time.Duration(s.getInt(keyLLMTimeout, 0)) * time.Second,
		},
		Retrieval: domain.RetrievalSettings{
			CandidatePool: s.getInt(keyRetrievalPool, defaults.Retrieval.CandidatePool),
			StoreLimit:    s.getInt(keyRetrievalLimit, defaults.Retrieval.StoreLimit),
			MaxReferences: s.getInt(keyRetrievalMaxRefs, defaults.Retrieval.MaxReferences),
			MinScore:      s.getMinScore(defaults.Retrieval.MinScore),
		},
		VectorStore: domain.VectorStoreSettings{
			Address:    s.getString(keyVectorAddress, defaults.VectorStore.Address),
			Collection: s.getString(keyVectorCollection, defaults.VectorStore.Collection),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	// Save chunking settings
	if err := s.configStore.Set(keyChunkMaxSize, settings.Chunking.MaxChunkSize); err != nil {
		return fmt.Errorf("save chunk size: %w", err)
	}

	// Save embedding settings
	if err := s.configStore.Set(keyEmbedProvider, settings.Embedding.Provider.String()); err != nil {
		return fmt.Errorf("save embedding provider: %w", err)
	}
	if err := s.configStore.Set(keyEmbedModel, settings.Embedding.Model); err != nil {
		return fmt.Errorf("save embedding model: %w", err)
	}
	if err := s.configStore.Set(keyEmbedBaseURL, settings.Embedding.BaseURL); err != nil {
		return fmt.Errorf("save embedding base_url: %w", err)
	}
	if settings.Embedding.APIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}
	if settings.Embedding.Timeout > 0 {
		if err := s.configStore.Set(keyEmbedTimeout, int(settings.Embedding.Timeout/time.Second)); err != nil {
			return fmt.Errorf("save embedding timeout: %w", err)
		}
	}

	// Save LLM settings
	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}
	if settings.LLM.Timeout > 0 {
		if err := s.configStore.Set(keyLLMTimeout, int(settings.LLM.Timeout/time.Second)); err != nil {
			return fmt.Errorf("save llm timeout: %w", err)
		}
	}

	// Save retrieval settings
	if err := s.configStore.Set(keyRetrievalPool, settings.Retrieval.CandidatePool); err != nil {
		return fmt.Errorf("save candidate pool: %w", err)
	}
	if err := s.configStore.Set(keyRetrievalLimit, settings.Retrieval.StoreLimit); err != nil {
		return fmt.Errorf("save store limit: %w", err)
	}
	if err := s.configStore.Set(keyRetrievalMaxRefs, settings.Retrieval.MaxReferences); err != nil {
		return fmt.Errorf("save max references: %w", err)
	}
	if err := s.configStore.Set(keyRetrievalMinScore, float64(settings.Retrieval.MinScore)); err != nil {
		return fmt.Errorf("save min score: %w", err)
	}

	// Save vector store settings
	if err := s.configStore.Set(keyVectorAddress, settings.VectorStore.Address); err != nil {
		return fmt.Errorf("save vector store address: %w", err)
	}
	if err := s.configStore.Set(keyVectorCollection, settings.VectorStore.Collection); err != nil {
		return fmt.Errorf("save vector store collection: %w", err)
	}

	return nil
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid embedding provider: %s", provider)
	}

	// Validate provider supports embeddings
	validProviders := domain.AllEmbeddingProviders()
	valid := false
	for _, p := range validProviders {
		if p == provider {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("provider %s does not support embeddings", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.Embedding.Model = model
	} else {
		defaults := domain.DefaultEmbeddingModels()
		if defaultModel, ok := defaults[provider]; ok {
			settings.Embedding.Model = defaultModel
		}
	}

	// Set base URL based on provider type
	if provider.IsLocal() {
		// Local providers need a base URL
		if settings.Embedding.BaseURL == "" {
			settings.Embedding.BaseURL = "http://localhost:11434"
		}
	} else {
		// Cloud providers don't need a custom base URL
		settings.Embedding.BaseURL = ""
	}

	// Set API key
	settings.Embedding.APIKey = apiKey

	return s.Save(settings)
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else {
		defaults := domain.DefaultLLMModels()
		if defaultModel, ok := defaults[provider]; ok {
			settings.LLM.Model = defaultModel
		}
	}

	// Set base URL based on provider type
	if provider.IsLocal() {
		// Local providers need a base URL
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = "http://localhost:11434"
		}
	} else {
		// Cloud providers don't need a custom base URL
		settings.LLM.BaseURL = ""
	}

	// Set API key
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Validate checks if current settings allow the pipeline to run.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.Chunking.MaxChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", settings.Chunking.MaxChunkSize)
	}

	if settings.Retrieval.CandidatePool <= 0 {
		return fmt.Errorf("candidate pool must be positive, got %d", settings.Retrieval.CandidatePool)
	}
	if settings.Retrieval.StoreLimit <= 0 {
		return fmt.Errorf("store limit must be positive, got %d", settings.Retrieval.StoreLimit)
	}
	if settings.Retrieval.MaxReferences <= 0 {
		return fmt.Errorf("max references must be positive, got %d", settings.Retrieval.MaxReferences)
	}

	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("embedding provider is not configured, run 'recall settings wizard'")
	}
	if !settings.LLM.IsConfigured() {
		return fmt.Errorf("LLM provider is not configured, run 'recall settings wizard'")
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getMinScore(defaultVal float32) float32 {
	if _, exists := s.configStore.Get(keyRetrievalMinScore); !exists {
		return defaultVal
	}
	return float32(s.configStore.GetFloat(keyRetrievalMinScore))
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
