// Package flat provides an exact inner-product vector index. The corpus is
// small (tens of documents), so every query scores every vector - no
// approximation, no recall loss, reproducible results.
package flat

import (
	"context"
	"sort"
	"sync"

	"github.com/agrivaani-labs/agrivaani-cli/internal/core/domain"
	"github.com/agrivaani-labs/agrivaani-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index holds L2-normalised vectors and answers top-k queries by brute
// force. Build replaces the vector set atomically under the write lock, so
// concurrent readers see either the old or the new set, never a mix.
type Index struct {
	mu         sync.RWMutex
	dimensions int
	vectors    [][]float32
}

// NewIndex creates an empty index for vectors of the given dimension.
func NewIndex(dimensions int) *Index {
	return &Index{dimensions: dimensions}
}

// Build replaces the entire index contents. Vector i keeps insertion ID i.
// All vectors must be L2-normalised by the caller and match the configured
// dimension.
func (idx *Index) Build(_ context.Context, vectors [][]float32) error {
	for _, v := range vectors {
		if len(v) != idx.dimensions {
			return domain.ErrInvalidDimension
		}
	}

	// Copy so later caller mutations cannot leak into the shared index.
	replacement := make([][]float32, len(vectors))
	for i, v := range vectors {
		vec := make([]float32, len(v))
		copy(vec, v)
		replacement[i] = vec
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.vectors = replacement
	return nil
}

// Search returns up to k hits ordered by descending score. Ties keep
// ascending insertion order, so repeated identical queries against an
// unchanged index are reproducible. An empty or unbuilt index returns an
// empty slice.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.vectors) == 0 || k <= 0 {
		return []driven.VectorHit{}, nil
	}
	if len(query) != idx.dimensions {
		return nil, domain.ErrInvalidDimension
	}

	hits := make([]driven.VectorHit, len(idx.vectors))
	for i, vec := range idx.vectors {
		hits[i] = driven.VectorHit{ID: i, Score: dot(query, vec)}
	}

	// Stable sort over the insertion-ordered slice keeps ties in
	// ascending ID order.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Len returns the number of indexed vectors.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.vectors)
}

// dot computes the inner product, which equals cosine similarity for
// L2-normalised vectors.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
