// Package lexical provides a deterministic, dependency-free embedding
// service. It is NOT a semantic model: each text maps to a fixed-length
// fingerprint derived from token lengths. It exists so the retrieval
// pipeline works fully offline, and so a real embedding model can be
// swapped in later behind the same interface.
package lexical

import (
	"context"
	"strings"

	"github.com/agrivaani-labs/agrivaani-cli/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

const (
	// DefaultDimensions matches the ada-002 vector size so a real model
	// can replace this one without reconfiguring the index.
	DefaultDimensions = 1536

	// maxTokens caps how many leading tokens contribute to the vector.
	maxTokens = 100

	// tokenWeight scales each token-length feature.
	tokenWeight = 0.1
)

// EmbeddingService maps text to a fixed-dimension lexical fingerprint.
type EmbeddingService struct {
	dimensions int
}

// NewEmbeddingService creates a lexical embedding service.
// A non-positive dimensions falls back to DefaultDimensions.
func NewEmbeddingService(dimensions int) *EmbeddingService {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &EmbeddingService{dimensions: dimensions}
}

// Embed generates the fingerprint for the given text: position i holds
// len(token_i) * 0.1 for the first 100 whitespace-delimited tokens, all
// other positions stay zero. Deterministic for identical input.
//
// Empty or whitespace-only text yields an all-zero vector. The caller must
// substitute a random vector before normalising - an all-zero vector
// cannot be L2-normalised.
func (s *EmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, s.dimensions)

	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) > maxTokens {
		tokens = tokens[:maxTokens]
	}

	for i, token := range tokens {
		if i >= s.dimensions {
			break
		}
		vec[i] = float32(len(token)) * tokenWeight
	}

	return vec, nil
}

// EmbedBatch generates fingerprints for multiple texts.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}
