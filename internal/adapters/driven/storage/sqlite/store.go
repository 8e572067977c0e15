package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/agrivaani-labs/agrivaani-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/agrivaani-labs/agrivaani-cli/internal/core/domain"
	"github.com/agrivaani-labs/agrivaani-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based offline store that provides access to
// the query log, the TTL caches, and user preferences through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.agrivaani/data/offline.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".agrivaani", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "offline.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// QueryLog returns a QueryLog interface backed by this store.
func (s *Store) QueryLog() driven.QueryLog {
	return &queryLog{store: s}
}

// WeatherCache returns a WeatherCache interface backed by this store.
func (s *Store) WeatherCache() driven.WeatherCache {
	return &weatherCache{store: s}
}

// RecommendationCache returns a RecommendationCache interface backed by this store.
func (s *Store) RecommendationCache() driven.RecommendationCache {
	return &recommendationCache{store: s}
}

// PreferencesStore returns a PreferencesStore interface backed by this store.
func (s *Store) PreferencesStore() driven.PreferencesStore {
	return &preferencesStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Query Log ====================

// queryLog implements driven.QueryLog.
type queryLog struct {
	store *Store
}

var _ driven.QueryLog = (*queryLog)(nil)

// Append records an incoming query and returns the new entry's ID.
func (s *queryLog) Append(ctx context.Context, queryText, language, intent string) (int64, error) {
	if queryText == "" {
		return 0, domain.ErrInvalidInput
	}
	if language == "" {
		language = "en"
	}

	result, err := s.store.db.ExecContext(ctx, `
		INSERT INTO queries (query_text, language, intent, timestamp, processed)
		VALUES (?, ?, ?, ?, 0)
	`, queryText, language, intent, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("appending query: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted query ID: %w", err)
	}
	return id, nil
}

// AttachResponse sets the response text and marks the entry processed.
func (s *queryLog) AttachResponse(ctx context.Context, id int64, responseText string) error {
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE queries SET response_text = ?, processed = 1 WHERE id = ?
	`, responseText, id)
	if err != nil {
		return fmt.Errorf("attaching response: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking attached response: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListUnprocessed returns backlog entries ascending by timestamp.
func (s *queryLog) ListUnprocessed(ctx context.Context) ([]domain.QueryLogEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, query_text, response_text, language, intent, timestamp, processed
		FROM queries WHERE processed = 0
		ORDER BY timestamp ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying backlog: %w", err)
	}
	defer rows.Close()

	var entries []domain.QueryLogEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var entry domain.QueryLogEntry
		var timestamp sql.NullTime
		var processed int
		if err := rows.Scan(&entry.ID, &entry.QueryText, &entry.ResponseText,
			&entry.Language, &entry.Intent, &timestamp, &processed); err != nil {
			return nil, fmt.Errorf("scanning query entry: %w", err)
		}
		if timestamp.Valid {
			entry.Timestamp = timestamp.Time
		}
		entry.Processed = processed != 0
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating backlog: %w", err)
	}

	return entries, nil
}

// ==================== Weather Cache ====================

// weatherCache implements driven.WeatherCache.
type weatherCache struct {
	store *Store
}

var _ driven.WeatherCache = (*weatherCache)(nil)

// Put stores a snapshot for the location, replacing any existing entry.
func (s *weatherCache) Put(ctx context.Context, location string, snapshot domain.WeatherSnapshot, ttl time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshalling weather snapshot: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO weather_cache (location, weather_data, timestamp, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(location) DO UPDATE SET
			weather_data = excluded.weather_data,
			timestamp = excluded.timestamp,
			expires_at = excluded.expires_at
	`, normaliseKey(location), string(data), now, now.Add(ttl))

	if err != nil {
		return fmt.Errorf("caching weather: %w", err)
	}
	return nil
}

// Get returns the cached snapshot. Expiry is checked on read, so an expired
// row is absent even if Sweep has not run yet.
func (s *weatherCache) Get(ctx context.Context, location string) (*domain.WeatherSnapshot, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT weather_data FROM weather_cache
		WHERE location = ? AND expires_at > ?
	`, normaliseKey(location), time.Now().UTC())

	var data string
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning cached weather: %w", err)
	}

	var snapshot domain.WeatherSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshaling cached weather: %w", err)
	}
	snapshot.Source = domain.WeatherSourceCache
	return &snapshot, nil
}

// Sweep removes all expired entries.
func (s *weatherCache) Sweep(ctx context.Context) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM weather_cache WHERE expires_at <= ?", time.Now().UTC())
	if err != nil {
		return fmt.Errorf("sweeping weather cache: %w", err)
	}
	return nil
}

// ==================== Recommendation Cache ====================

// recommendationCache implements driven.RecommendationCache.
type recommendationCache struct {
	store *Store
}

var _ driven.RecommendationCache = (*recommendationCache)(nil)

// Put stores a payload under the key, replacing any existing entry.
func (s *recommendationCache) Put(ctx context.Context, key string, payload any, ttl time.Duration) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshalling recommendation: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO recommendations_cache (cache_key, recommendation_data, timestamp, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			recommendation_data = excluded.recommendation_data,
			timestamp = excluded.timestamp,
			expires_at = excluded.expires_at
	`, normaliseKey(key), string(data), now, now.Add(ttl))

	if err != nil {
		return fmt.Errorf("caching recommendation: %w", err)
	}
	return nil
}

// Get unmarshals the cached payload into out, with read-time expiry.
func (s *recommendationCache) Get(ctx context.Context, key string, out any) error {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT recommendation_data FROM recommendations_cache
		WHERE cache_key = ? AND expires_at > ?
	`, normaliseKey(key), time.Now().UTC())

	var data string
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("scanning cached recommendation: %w", err)
	}

	if err := json.Unmarshal([]byte(data), out); err != nil {
		return fmt.Errorf("unmarshaling cached recommendation: %w", err)
	}
	return nil
}

// Sweep removes all expired entries.
func (s *recommendationCache) Sweep(ctx context.Context) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM recommendations_cache WHERE expires_at <= ?", time.Now().UTC())
	if err != nil {
		return fmt.Errorf("sweeping recommendation cache: %w", err)
	}
	return nil
}

// ==================== Preferences Store ====================

// preferencesStore implements driven.PreferencesStore.
type preferencesStore struct {
	store *Store
}

var _ driven.PreferencesStore = (*preferencesStore)(nil)

// Save stores or replaces a user's profile.
func (s *preferencesStore) Save(ctx context.Context, prefs domain.Preferences) error {
	if prefs.UserID == "" {
		return domain.ErrInvalidInput
	}

	cropsJSON, err := json.Marshal(prefs.CropPreferences)
	if err != nil {
		return fmt.Errorf("marshalling crop preferences: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO user_preferences (user_id, language, location, crop_preferences, soil_type, land_size, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			language = excluded.language,
			location = excluded.location,
			crop_preferences = excluded.crop_preferences,
			soil_type = excluded.soil_type,
			land_size = excluded.land_size,
			updated_at = excluded.updated_at
	`, prefs.UserID, prefs.Language, prefs.Location, string(cropsJSON),
		prefs.SoilType, prefs.LandSize, time.Now().UTC())

	if err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	return nil
}

// Get retrieves a user's profile.
func (s *preferencesStore) Get(ctx context.Context, userID string) (*domain.Preferences, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT user_id, language, location, crop_preferences, soil_type, land_size, updated_at
		FROM user_preferences WHERE user_id = ?
	`, userID)

	var prefs domain.Preferences
	var cropsJSON string
	var updatedAt sql.NullTime
	if err := row.Scan(&prefs.UserID, &prefs.Language, &prefs.Location,
		&cropsJSON, &prefs.SoilType, &prefs.LandSize, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning preferences: %w", err)
	}

	if err := json.Unmarshal([]byte(cropsJSON), &prefs.CropPreferences); err != nil {
		return nil, fmt.Errorf("unmarshaling crop preferences: %w", err)
	}
	if updatedAt.Valid {
		prefs.UpdatedAt = updatedAt.Time
	}

	return &prefs, nil
}

// normaliseKey lower-cases and trims cache keys so "Delhi" and "delhi "
// share an entry.
func normaliseKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
