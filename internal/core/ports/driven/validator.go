package driven

import "github.com/recall-labs/recall-cli/internal/core/domain"

// AIConfigValidator validates AI provider configurations by checking
// connectivity and credentials against the live provider.
type AIConfigValidator interface {
	// ValidateEmbedding checks an embedding configuration.
	// Returns nil for unconfigured settings.
	ValidateEmbedding(config *domain.EmbeddingSettings) error

	// ValidateLLM checks an LLM configuration.
	// Returns nil for unconfigured settings.
	ValidateLLM(config *domain.LLMSettings) error
}
