package driven

import (
	"context"
	"time"

	"github.com/agrivaani-labs/agrivaani-cli/internal/core/domain"
)

// WeatherCache is the TTL-keyed offline cache for weather snapshots.
// Keys are location strings, case-normalised by the implementation.
// Put overwrites any existing entry for the key. Get treats a missing entry
// and an expired entry identically: absent (domain.ErrNotFound). A periodic
// Sweep may physically remove expired rows, but correctness never depends
// on it - Get re-checks expiry.
type WeatherCache interface {
	// Put stores a snapshot for the location with the given TTL.
	Put(ctx context.Context, location string, snapshot domain.WeatherSnapshot, ttl time.Duration) error

	// Get returns the cached snapshot, or domain.ErrNotFound when the
	// entry is missing or expired.
	Get(ctx context.Context, location string) (*domain.WeatherSnapshot, error)

	// Sweep removes all currently-expired entries.
	Sweep(ctx context.Context) error
}

// RecommendationCache is the TTL-keyed offline cache for recommendation
// payloads, keyed by a caller-composed string (e.g. intent+location+crop).
// Same storage discipline as WeatherCache.
type RecommendationCache interface {
	// Put stores a serialisable payload under the key with the given TTL.
	Put(ctx context.Context, key string, payload any, ttl time.Duration) error

	// Get unmarshals the cached payload into out, or returns
	// domain.ErrNotFound when the entry is missing or expired.
	Get(ctx context.Context, key string, out any) error

	// Sweep removes all currently-expired entries.
	Sweep(ctx context.Context) error
}

// QueryLog is the append-only, replayable query backlog. No entry is ever
// deleted: processed rows are the audit trail, unprocessed rows are the
// store-and-forward backlog consumed when the AI service resumes.
type QueryLog interface {
	// Append records an incoming query and returns its new monotonically
	// increasing ID. Always succeeds even when no response exists yet.
	Append(ctx context.Context, queryText, language, intent string) (int64, error)

	// AttachResponse sets the response text and marks the entry processed.
	// Safe to call more than once; the last write wins.
	AttachResponse(ctx context.Context, id int64, responseText string) error

	// ListUnprocessed returns entries without a response, ascending by
	// timestamp.
	ListUnprocessed(ctx context.Context) ([]domain.QueryLogEntry, error)
}

// PreferencesStore persists per-user profiles, upsert-keyed by user ID.
type PreferencesStore interface {
	// Save stores or replaces the user's profile.
	Save(ctx context.Context, prefs domain.Preferences) error

	// Get returns the user's profile, or domain.ErrNotFound.
	Get(ctx context.Context, userID string) (*domain.Preferences, error)
}
