package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// The bundled implementation is a deterministic lexical fingerprint, not a
// semantic model - the interface is what matters: it stays stable so a real
// embedding model can be substituted without touching the index or cache
// logic.
//
// Note: Embed may legitimately return an all-zero vector for degenerate
// input (empty or whitespace-only text). Normalising an all-zero vector is
// undefined, so callers must substitute a random vector before indexing or
// querying with it.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size.
	// This must match the VectorIndex configuration.
	Dimensions() int
}
