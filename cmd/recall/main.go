// Command recall is a question-answering CLI over your own documents.
//
// Documents are ingested into per-owner corpora, chunked, embedded and
// stored in Qdrant. Questions retrieve the owner's nearest chunks and
// an LLM writes an answer grounded only on those chunks.
package main

import (
	"fmt"
	"os"

	"github.com/recall-labs/recall-cli/internal/adapters/driven/ai"
	"github.com/recall-labs/recall-cli/internal/adapters/driven/config/file"
	"github.com/recall-labs/recall-cli/internal/adapters/driven/storage/sqlite"
	"github.com/recall-labs/recall-cli/internal/adapters/driven/vectorstore/qdrant"
	"github.com/recall-labs/recall-cli/internal/adapters/driving/cli"
	"github.com/recall-labs/recall-cli/internal/chunker"
	"github.com/recall-labs/recall-cli/internal/core/services"
	"github.com/recall-labs/recall-cli/internal/extract"
)

// version is overridden at build time via
// -ldflags "-X main.version=v1.2.3".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Config, prompts and history all live under ~/.recall.
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}

	promptStore, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("open prompt store: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	interactionStore, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer interactionStore.Close()

	chunkStore, err := qdrant.NewChunkStore(qdrant.Config{
		Address:    settings.VectorStore.Address,
		Collection: settings.VectorStore.Collection,
	})
	if err != nil {
		return fmt.Errorf("connect to vector store: %w", err)
	}
	defer chunkStore.Close()

	// Unconfigured providers come back nil. Commands that need them
	// report how to fix that; settings commands still work.
	embedder, err := ai.CreateEmbeddingService(&settings.Embedding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: embedding provider: %v\n", err)
	}
	if embedder != nil {
		defer embedder.Close()
	}

	llm, err := ai.CreateLLMService(&settings.LLM)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: LLM provider: %v\n", err)
	}
	if llm != nil {
		defer llm.Close()
	}

	splitter := chunker.New(chunker.WithMaxChunkSize(settings.Chunking.MaxChunkSize))

	askService := services.NewAskService(embedder, chunkStore, llm, interactionStore.InteractionStore())
	askService.SetPromptStore(promptStore)
	askService.SetRetrievalSettings(settings.Retrieval)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Ask:      askService,
		Ingest:   services.NewIngestService(extract.NewDefaultRegistry(), splitter, embedder, chunkStore),
		Document: services.NewDocumentService(chunkStore),
		History:  services.NewHistoryService(interactionStore.InteractionStore()),
		Settings: settingsService,
	})

	return cli.Execute()
}
