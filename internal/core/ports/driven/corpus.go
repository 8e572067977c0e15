package driven

import (
	"context"

	"github.com/agrivaani-labs/agrivaani-cli/internal/core/domain"
)

// CorpusStore loads and normalises the static knowledge base.
// Load is idempotent and deterministic for the same inputs: record fields
// are flattened in a fixed order so embeddings are stable across rebuilds.
// An unreadable or malformed source yields an empty slice, not an error the
// caller must die on - an empty corpus means "index unavailable".
type CorpusStore interface {
	// Load returns all knowledge-base documents.
	Load(ctx context.Context) ([]domain.Document, error)

	// SoilProfile returns the structured record for a soil type key.
	SoilProfile(soilType string) (*domain.SoilProfile, error)

	// CropProfile returns the structured record for a crop key.
	CropProfile(name string) (*domain.CropProfile, error)

	// Schemes returns all government schemes keyed by scheme ID.
	Schemes() (map[string]domain.Scheme, error)
}

// CorpusWatcher notifies when the underlying knowledge files change,
// so the index can be rebuilt and swapped atomically.
type CorpusWatcher interface {
	// Watch invokes onChange after any knowledge file is modified.
	// It blocks until ctx is cancelled.
	Watch(ctx context.Context, onChange func()) error
}
