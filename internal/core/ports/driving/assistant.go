package driving

import (
	"context"

	"github.com/agrivaani-labs/agrivaani-cli/internal/core/domain"
)

// AssistantService is the sole inbound entry point to the core. It combines
// classification, retrieval, the weather side channel, context assembly,
// and answer generation behind one call.
type AssistantService interface {
	// Answer processes one user query end to end. It never fails outright:
	// degraded paths return a lower-confidence, offline-flavoured Answer.
	// The session is caller-owned and passed by reference.
	Answer(ctx context.Context, session *domain.Session, query string) (domain.Answer, error)

	// ProcessBacklog replays unprocessed queries from the offline backlog
	// once the AI service is reachable again, oldest first. It returns the
	// number of entries that got a response attached.
	ProcessBacklog(ctx context.Context) (int, error)
}

// RetrievalService exposes top-k document retrieval for external actors
// that want raw search results rather than generated answers.
type RetrievalService interface {
	// Search returns up to k documents ranked by similarity to the query.
	Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error)

	// Rebuild re-loads the corpus and swaps in a freshly built index
	// atomically. Concurrent searches see either the old or the new index.
	Rebuild(ctx context.Context) error

	// Size returns the number of indexed documents.
	Size() int
}
