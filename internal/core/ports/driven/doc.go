// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Extractor: Turns uploaded file bytes into plain text
//   - ExtractorRegistry: Selects the extractor for a filename
//   - ChunkStore: Owner-scoped chunk persistence and similarity search
//   - InteractionStore: Question/answer history persistence
//   - EmbeddingService: Generates vector embeddings
//   - LLMService: Generates grounded answers
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - PromptStore: Customisable prompt templates. When nil, services
//     fall back to built-in defaults.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
