// Package memory provides in-memory implementations of the offline storage
// ports, used in tests and as a fallback when the SQLite store cannot open.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/agrivaani-labs/agrivaani-cli/internal/core/domain"
	"github.com/agrivaani-labs/agrivaani-cli/internal/core/ports/driven"
)

// Ensure interfaces are implemented.
var (
	_ driven.WeatherCache        = (*WeatherCache)(nil)
	_ driven.RecommendationCache = (*RecommendationCache)(nil)
	_ driven.QueryLog            = (*QueryLog)(nil)
	_ driven.PreferencesStore    = (*PreferencesStore)(nil)
)

// ttlEntry is one cached payload with its expiry.
type ttlEntry struct {
	data      []byte
	expiresAt time.Time
}

// expired reports whether the entry is past its TTL.
func (e ttlEntry) expired(now time.Time) bool {
	return !e.expiresAt.After(now)
}

// WeatherCache is an in-memory implementation of driven.WeatherCache.
type WeatherCache struct {
	mu      sync.RWMutex
	entries map[string]ttlEntry
}

// NewWeatherCache creates a new in-memory weather cache.
func NewWeatherCache() *WeatherCache {
	return &WeatherCache{
		entries: make(map[string]ttlEntry),
	}
}

// Put stores a snapshot for the location, replacing any existing entry.
func (c *WeatherCache) Put(_ context.Context, location string, snapshot domain.WeatherSnapshot, ttl time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshalling weather snapshot: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[normaliseKey(location)] = ttlEntry{
		data:      data,
		expiresAt: time.Now().UTC().Add(ttl),
	}
	return nil
}

// Get returns the cached snapshot; expired entries are absent.
func (c *WeatherCache) Get(_ context.Context, location string) (*domain.WeatherSnapshot, error) {
	c.mu.RLock()
	entry, ok := c.entries[normaliseKey(location)]
	c.mu.RUnlock()

	if !ok || entry.expired(time.Now().UTC()) {
		return nil, domain.ErrNotFound
	}

	var snapshot domain.WeatherSnapshot
	if err := json.Unmarshal(entry.data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshaling cached weather: %w", err)
	}
	snapshot.Source = domain.WeatherSourceCache
	return &snapshot, nil
}

// Sweep removes all expired entries.
func (c *WeatherCache) Sweep(_ context.Context) error {
	now := time.Now().UTC()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, key)
		}
	}
	return nil
}

// RecommendationCache is an in-memory implementation of
// driven.RecommendationCache.
type RecommendationCache struct {
	mu      sync.RWMutex
	entries map[string]ttlEntry
}

// NewRecommendationCache creates a new in-memory recommendation cache.
func NewRecommendationCache() *RecommendationCache {
	return &RecommendationCache{
		entries: make(map[string]ttlEntry),
	}
}

// Put stores a payload under the key, replacing any existing entry.
func (c *RecommendationCache) Put(_ context.Context, key string, payload any, ttl time.Duration) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshalling recommendation: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[normaliseKey(key)] = ttlEntry{
		data:      data,
		expiresAt: time.Now().UTC().Add(ttl),
	}
	return nil
}

// Get unmarshals the cached payload into out; expired entries are absent.
func (c *RecommendationCache) Get(_ context.Context, key string, out any) error {
	c.mu.RLock()
	entry, ok := c.entries[normaliseKey(key)]
	c.mu.RUnlock()

	if !ok || entry.expired(time.Now().UTC()) {
		return domain.ErrNotFound
	}

	if err := json.Unmarshal(entry.data, out); err != nil {
		return fmt.Errorf("unmarshaling cached recommendation: %w", err)
	}
	return nil
}

// Sweep removes all expired entries.
func (c *RecommendationCache) Sweep(_ context.Context) error {
	now := time.Now().UTC()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, key)
		}
	}
	return nil
}

// QueryLog is an in-memory implementation of driven.QueryLog.
type QueryLog struct {
	mu      sync.RWMutex
	nextID  int64
	entries []domain.QueryLogEntry
}

// NewQueryLog creates a new in-memory query log.
func NewQueryLog() *QueryLog {
	return &QueryLog{nextID: 1}
}

// Append records a query and returns its ID.
func (l *QueryLog) Append(_ context.Context, queryText, language, intent string) (int64, error) {
	if queryText == "" {
		return 0, domain.ErrInvalidInput
	}
	if language == "" {
		language = "en"
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextID
	l.nextID++
	l.entries = append(l.entries, domain.QueryLogEntry{
		ID:        id,
		QueryText: queryText,
		Language:  language,
		Intent:    intent,
		Timestamp: time.Now().UTC(),
	})
	return id, nil
}

// AttachResponse sets the response and marks the entry processed.
func (l *QueryLog) AttachResponse(_ context.Context, id int64, responseText string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.entries {
		if l.entries[i].ID == id {
			l.entries[i].ResponseText = responseText
			l.entries[i].Processed = true
			return nil
		}
	}
	return domain.ErrNotFound
}

// ListUnprocessed returns backlog entries ascending by timestamp. Entries
// are appended in timestamp order, so insertion order is returned.
func (l *QueryLog) ListUnprocessed(_ context.Context) ([]domain.QueryLogEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var backlog []domain.QueryLogEntry //nolint:prealloc // size unknown
	for _, entry := range l.entries {
		if !entry.Processed {
			backlog = append(backlog, entry)
		}
	}
	return backlog, nil
}

// PreferencesStore is an in-memory implementation of driven.PreferencesStore.
type PreferencesStore struct {
	mu    sync.RWMutex
	prefs map[string]domain.Preferences
}

// NewPreferencesStore creates a new in-memory preferences store.
func NewPreferencesStore() *PreferencesStore {
	return &PreferencesStore{
		prefs: make(map[string]domain.Preferences),
	}
}

// Save stores or replaces a user's profile.
func (s *PreferencesStore) Save(_ context.Context, prefs domain.Preferences) error {
	if prefs.UserID == "" {
		return domain.ErrInvalidInput
	}
	prefs.UpdatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[prefs.UserID] = prefs
	return nil
}

// Get retrieves a user's profile.
func (s *PreferencesStore) Get(_ context.Context, userID string) (*domain.Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	prefs, ok := s.prefs[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &prefs, nil
}

func normaliseKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
