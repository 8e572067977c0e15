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
//   - CorpusStore: Loads the static knowledge base
//   - EmbeddingService: Maps text to fixed-dimension vectors
//   - VectorIndex: Stores normalised vectors and answers top-k queries
//   - WeatherCache, RecommendationCache: TTL-keyed offline caches
//   - QueryLog: Append-only store-and-forward query backlog
//   - PreferencesStore: Per-user profile persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Generative answers and primary intent classification.
//     Without it, the lexical fallback classifier and canned offline
//     recommendations are used.
//   - WeatherProvider: Live weather. Without it, the cache and then the
//     static default snapshot serve irrigation queries.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
