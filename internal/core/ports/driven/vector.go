package driven

import "context"

// VectorIndex provides exact top-k similarity search over L2-normalised
// vectors. The corpus is small, so a full recompute of all pairwise scores
// per query is acceptable - correctness over scale.
type VectorIndex interface {
	// Build replaces the entire index contents atomically. Vector i keeps
	// insertion ID i. Concurrent readers never observe a partial build.
	Build(ctx context.Context, vectors [][]float32) error

	// Search returns up to k hits ordered by descending score, ties broken
	// by ascending insertion ID. k larger than the corpus is clamped. An
	// empty or unbuilt index returns an empty slice, not an error.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len returns the number of indexed vectors.
	Len() int
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ID is the insertion position of the matched vector.
	ID int

	// Score is the inner product against the query, which equals cosine
	// similarity for normalised vectors. Range [-1, 1].
	Score float64
}
