package services

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/agrivaani-labs/agrivaani-cli/internal/core/domain"
	"github.com/agrivaani-labs/agrivaani-cli/internal/core/ports/driven"
	"github.com/agrivaani-labs/agrivaani-cli/internal/core/ports/driving"
	"github.com/agrivaani-labs/agrivaani-cli/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// RetrievalService builds and queries the document index. Documents and the
// vector index are replaced together under one lock, so a search sees either
// the old corpus with the old index or the new corpus with the new index,
// never a mix.
type RetrievalService struct {
	corpus   driven.CorpusStore
	embedder driven.EmbeddingService
	index    driven.VectorIndex
	defaultK int

	mu   sync.RWMutex
	docs []domain.Document
}

// NewRetrievalService creates a retrieval service. Call Rebuild before the
// first Search to populate the index.
func NewRetrievalService(
	corpus driven.CorpusStore,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	defaultK int,
) *RetrievalService {
	if defaultK <= 0 {
		defaultK = 5
	}
	return &RetrievalService{
		corpus:   corpus,
		embedder: embedder,
		index:    index,
		defaultK: defaultK,
	}
}

// Rebuild re-loads the corpus, embeds every document, and swaps in a fresh
// index. An empty corpus produces an empty index and Search degrades to
// empty results rather than failing.
func (s *RetrievalService) Rebuild(ctx context.Context) error {
	docs, err := s.corpus.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding corpus: %w", err)
	}

	for i := range vectors {
		// An empty document embeds to all zeros; a zero vector cannot be
		// normalised, so substitute a random one. The document stays
		// retrievable, just at an arbitrary position.
		if isZero(vectors[i]) {
			logger.Warn("retrieval: document %d has a degenerate embedding, substituting random vector", i)
			vectors[i] = randomVector(len(vectors[i]))
		}
		normalise(vectors[i])
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.index.Build(ctx, vectors); err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	s.docs = docs

	logger.Info("retrieval: indexed %d documents", len(docs))
	return nil
}

// Search returns up to k documents ranked by cosine similarity to the
// query. k <= 0 uses the configured default; k beyond the corpus size is
// clamped. A degenerate query embedding falls back to the first k documents
// in corpus order so the caller still gets grounding material.
func (s *RetrievalService) Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error) {
	if k <= 0 {
		k = s.defaultK
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.docs) == 0 {
		return []domain.SearchResult{}, nil
	}
	if k > len(s.docs) {
		k = len(s.docs)
	}

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	if isZero(vec) {
		logger.Debug("retrieval: degenerate query embedding, returning first %d documents", k)
		results := make([]domain.SearchResult, k)
		for i := 0; i < k; i++ {
			results[i] = domain.SearchResult{
				Document: s.docs[i],
				Score:    0,
				Rank:     i + 1,
			}
		}
		return results, nil
	}
	normalise(vec)

	hits, err := s.index.Search(ctx, vec, k)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for rank, hit := range hits {
		if hit.ID < 0 || hit.ID >= len(s.docs) {
			continue
		}
		results = append(results, domain.SearchResult{
			Document: s.docs[hit.ID],
			Score:    hit.Score,
			Rank:     rank + 1,
		})
	}
	return results, nil
}

// Size returns the number of indexed documents.
func (s *RetrievalService) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// WatchCorpus rebuilds the index whenever the watcher fires. It blocks
// until ctx is cancelled and is meant to run in its own goroutine.
func (s *RetrievalService) WatchCorpus(ctx context.Context, watcher driven.CorpusWatcher) error {
	return watcher.Watch(ctx, func() {
		if err := s.Rebuild(ctx); err != nil {
			logger.Error("retrieval: rebuild after corpus change failed: %v", err)
		}
	})
}

// isZero reports whether every component is zero.
func isZero(vec []float32) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}

// normalise scales the vector to unit length in place. Zero vectors must be
// filtered out before calling.
func normalise(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
}

// randomVector returns a vector of small random components. Used only as a
// stand-in for degenerate embeddings.
func randomVector(dims int) []float32 {
	vec := make([]float32, dims)
	for i := range vec {
		vec[i] = rand.Float32() //nolint:gosec // not security sensitive
	}
	return vec
}
