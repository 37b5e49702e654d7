package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
	"github.com/recall-labs/recall-cli/internal/logger"
)

// Ensure AskService implements the interfaces.
var (
	_ driving.AskService      = (*AskService)(nil)
	_ driven.PromptStoreAware = (*AskService)(nil)
)

// defaultSynthesizePrompt is the fallback prompt when no PromptStore is configured.
const defaultSynthesizePrompt = `You are a helpful assistant that answers questions based on the user's uploaded documents.

Use ONLY the following context to answer the question. If the context does not contain the information needed, say "I cannot find that information in your documents."

Context:
%s

Question: %s

Answer:`

// defaultNoContextAnswer is the fallback answer when no PromptStore is configured.
const defaultNoContextAnswer = `No relevant information found in your uploaded documents.`

// Generation parameters for answer synthesis.
const (
	synthesizeMaxTokens   = 1024
	synthesizeTemperature = 0.2
)

// AskService runs the question pipeline: embed the question, retrieve
// the owner's nearest chunks, synthesize a grounded answer, and log
// the interaction.
type AskService struct {
	embedder     driven.EmbeddingService
	chunkStore   driven.ChunkStore
	llm          driven.LLMService
	interactions driven.InteractionStore
	promptStore  driven.PromptStore
	retrieval    domain.RetrievalSettings
}

// NewAskService creates a new ask service with default retrieval settings.
func NewAskService(
	embedder driven.EmbeddingService,
	chunkStore driven.ChunkStore,
	llm driven.LLMService,
	interactions driven.InteractionStore,
) *AskService {
	return &AskService{
		embedder:     embedder,
		chunkStore:   chunkStore,
		llm:          llm,
		interactions: interactions,
		retrieval:    domain.DefaultAppSettings().Retrieval,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the service uses hardcoded default prompts.
func (s *AskService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// SetRetrievalSettings overrides the retrieval tuning parameters.
func (s *AskService) SetRetrievalSettings(settings domain.RetrievalSettings) {
	s.retrieval = settings
}

// Ask runs the full pipeline for one question.
func (s *AskService) Ask(ctx context.Context, ownerID, question string) (*domain.Answer, error) {
	return s.AskWithProgress(ctx, ownerID, question, nil)
}

// AskWithProgress is Ask with phase notifications for interactive frontends.
func (s *AskService) AskWithProgress(
	ctx context.Context, ownerID, question string, progress driving.ProgressFunc,
) (*domain.Answer, error) {
	report := func(phase domain.AskPhase) {
		if progress != nil {
			progress(phase)
		}
	}
	fail := func(err error) (*domain.Answer, error) {
		report(domain.AskPhaseFailed)
		return nil, err
	}

	logger.Section("Question Pipeline")
	report(domain.AskPhaseReceived)

	question = strings.TrimSpace(question)
	if strings.TrimSpace(ownerID) == "" {
		return fail(fmt.Errorf("%w: owner ID is required", domain.ErrInvalidInput))
	}
	if question == "" {
		return fail(fmt.Errorf("%w: question is empty", domain.ErrInvalidInput))
	}
	if s.embedder == nil {
		return fail(fmt.Errorf("%w: no embedding provider configured", domain.ErrEmbeddingUnavailable))
	}
	if s.chunkStore == nil {
		return fail(fmt.Errorf("%w: no chunk store configured", domain.ErrStoreUnavailable))
	}
	logger.Debug("Owner: %s, question: %q", ownerID, question)

	// Embed the question
	report(domain.AskPhaseEmbedding)
	vector, err := s.embedder.Embed(ctx, question)
	if err != nil {
		logger.Warn("Question embedding failed: %v", err)
		return fail(fmt.Errorf("embed question: %w", err))
	}
	logger.Debug("Question embedding: %d dimensions", len(vector))

	// Retrieve the owner's nearest chunks
	report(domain.AskPhaseRetrieving)
	hits, err := s.retrieve(ctx, ownerID, vector)
	if err != nil {
		return fail(err)
	}
	logger.Debug("Retrieved %d chunks", len(hits))

	if len(hits) == 0 {
		return s.answerWithoutContext(ctx, ownerID, question, report)
	}

	// Synthesize a grounded answer
	report(domain.AskPhaseSynthesizing)
	text, err := s.synthesize(ctx, question, hits)
	if err != nil {
		logger.Warn("Synthesis failed: %v", err)
		return fail(err)
	}

	references := make([]domain.Reference, len(hits))
	for i, hit := range hits {
		references[i] = domain.Reference{
			Filename: hit.Chunk.Filename,
			Content:  hit.Chunk.Content,
			Score:    hit.Score,
		}
	}

	answer := &domain.Answer{
		Question:   question,
		Text:       text,
		References: references,
	}

	report(domain.AskPhaseLogging)
	if err := s.logInteraction(ctx, ownerID, answer); err != nil {
		return fail(err)
	}

	report(domain.AskPhaseCompleted)
	logger.Info("Answered with %d references", len(references))
	return answer, nil
}

// retrieve searches the owner's chunks and enforces the owner boundary
// on everything that comes back.
func (s *AskService) retrieve(
	ctx context.Context, ownerID string, vector []float32,
) ([]driven.ChunkHit, error) {
	params := driven.SearchParams{
		CandidatePool: s.retrieval.CandidatePool,
		Limit:         s.retrieval.StoreLimit,
		MinScore:      s.retrieval.MinScore,
	}
	logger.Debug("Search: pool=%d, limit=%d, minScore=%.2f",
		params.CandidatePool, params.Limit, params.MinScore)

	hits, err := s.chunkStore.NearestNeighbors(ctx, ownerID, vector, params)
	if err != nil {
		logger.Warn("Similarity search failed: %v", err)
		return nil, fmt.Errorf("search chunks: %w", err)
	}

	// The store filters by owner; verify it held. A foreign chunk here
	// is a defect and aborts the pipeline.
	for _, hit := range hits {
		if hit.Chunk.OwnerID != "" && hit.Chunk.OwnerID != ownerID {
			logger.Warn("Chunk %s crossed the owner boundary", hit.Chunk.ID)
			return nil, fmt.Errorf("%w: chunk %s belongs to another owner",
				domain.ErrOwnerScopeViolation, hit.Chunk.ID)
		}
	}

	if len(hits) > s.retrieval.MaxReferences {
		hits = hits[:s.retrieval.MaxReferences]
	}
	return hits, nil
}

// synthesize generates an answer grounded in the retrieved chunks.
func (s *AskService) synthesize(ctx context.Context, question string, hits []driven.ChunkHit) (string, error) {
	if s.llm == nil {
		return "", fmt.Errorf("%w: no LLM provider configured", domain.ErrGenerationUnavailable)
	}

	entries := make([]string, len(hits))
	for i, hit := range hits {
		entries[i] = fmt.Sprintf("File: %s\nContent: %s", hit.Chunk.Filename, hit.Chunk.Content)
	}
	contextBlock := strings.Join(entries, "\n\n")

	template := s.loadPrompt(driven.PromptSynthesize, defaultSynthesizePrompt)
	prompt := fmt.Sprintf(template, contextBlock, question)

	text, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   synthesizeMaxTokens,
		Temperature: synthesizeTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// answerWithoutContext completes the pipeline with the fixed fallback
// answer. The interaction is still logged, with no references.
func (s *AskService) answerWithoutContext(
	ctx context.Context, ownerID, question string, report func(domain.AskPhase),
) (*domain.Answer, error) {
	report(domain.AskPhaseNoContext)
	logger.Info("No relevant chunks found")

	answer := &domain.Answer{
		Question:   question,
		Text:       s.loadPrompt(driven.PromptNoContextAnswer, defaultNoContextAnswer),
		References: []domain.Reference{},
		NoContext:  true,
	}

	report(domain.AskPhaseLogging)
	if err := s.logInteraction(ctx, ownerID, answer); err != nil {
		report(domain.AskPhaseFailed)
		return nil, err
	}

	report(domain.AskPhaseCompleted)
	return answer, nil
}

// logInteraction records the completed exchange. References are stored
// as a snapshot so deleting a document later never rewrites history.
func (s *AskService) logInteraction(ctx context.Context, ownerID string, answer *domain.Answer) error {
	if s.interactions == nil {
		return fmt.Errorf("%w: no interaction store configured", domain.ErrStoreUnavailable)
	}

	interaction := &domain.Interaction{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Question:   answer.Question,
		Answer:     answer.Text,
		References: answer.References,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.interactions.SaveInteraction(ctx, interaction); err != nil {
		logger.Warn("Failed to log interaction: %v", err)
		return fmt.Errorf("log interaction: %w", err)
	}
	return nil
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (s *AskService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}
