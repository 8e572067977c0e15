package sqlite

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrivaani-labs/agrivaani-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "agrivaani-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func TestQueryLog_AppendAssignsIncreasingIDs(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	log := store.QueryLog()

	first, err := log.Append(ctx, "what crop should I plant", "en", "crop_recommendation")
	require.NoError(t, err)
	second, err := log.Append(ctx, "मुझे पानी कब देना चाहिए", "hi", "irrigation")
	require.NoError(t, err)

	assert.Greater(t, second, first)
}

func TestQueryLog_AppendRejectsEmptyQuery(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.QueryLog().Append(context.Background(), "", "en", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQueryLog_ListUnprocessedAscending(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	log := store.QueryLog()

	id1, err := log.Append(ctx, "first", "en", "")
	require.NoError(t, err)
	id2, err := log.Append(ctx, "second", "en", "")
	require.NoError(t, err)
	id3, err := log.Append(ctx, "third", "en", "")
	require.NoError(t, err)

	// Answer the middle one; the backlog keeps the other two in order.
	require.NoError(t, log.AttachResponse(ctx, id2, "answered"))

	backlog, err := log.ListUnprocessed(ctx)
	require.NoError(t, err)
	require.Len(t, backlog, 2)
	assert.Equal(t, id1, backlog[0].ID)
	assert.Equal(t, id3, backlog[1].ID)
	assert.Equal(t, "first", backlog[0].QueryText)
	assert.False(t, backlog[0].Processed)
}

func TestQueryLog_AttachResponseLastWriteWins(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	log := store.QueryLog()

	id, err := log.Append(ctx, "question", "en", "general")
	require.NoError(t, err)

	require.NoError(t, log.AttachResponse(ctx, id, "first answer"))
	require.NoError(t, log.AttachResponse(ctx, id, "revised answer"))

	backlog, err := log.ListUnprocessed(ctx)
	require.NoError(t, err)
	assert.Empty(t, backlog)
}

func TestQueryLog_AttachResponseUnknownID(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.QueryLog().AttachResponse(context.Background(), 9999, "answer")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWeatherCache_PutGetRoundtrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	cache := store.WeatherCache()

	snapshot := domain.WeatherSnapshot{
		Temperature: 31.5,
		Humidity:    62,
		Rainfall:    2.4,
		Description: "scattered clouds",
		Source:      domain.WeatherSourceAPI,
		Timestamp:   time.Now().UTC(),
	}
	require.NoError(t, cache.Put(ctx, "Delhi", snapshot, time.Hour))

	got, err := cache.Get(ctx, "delhi")
	require.NoError(t, err)
	assert.Equal(t, snapshot.Temperature, got.Temperature)
	assert.Equal(t, snapshot.Description, got.Description)
	assert.Equal(t, domain.WeatherSourceCache, got.Source)
}

func TestWeatherCache_SecondPutReplaces(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	cache := store.WeatherCache()

	require.NoError(t, cache.Put(ctx, "pune", domain.WeatherSnapshot{Temperature: 20}, time.Hour))
	require.NoError(t, cache.Put(ctx, "pune", domain.WeatherSnapshot{Temperature: 35}, time.Hour))

	got, err := cache.Get(ctx, "pune")
	require.NoError(t, err)
	assert.Equal(t, 35.0, got.Temperature)
}

func TestWeatherCache_ExpiredIsAbsent(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	cache := store.WeatherCache()

	// A zero TTL expires immediately; Get must treat the row as missing
	// even though Sweep never ran.
	require.NoError(t, cache.Put(ctx, "mumbai", domain.WeatherSnapshot{Temperature: 29}, 0))

	_, err := cache.Get(ctx, "mumbai")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWeatherCache_Sweep(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	cache := store.WeatherCache()

	require.NoError(t, cache.Put(ctx, "expired", domain.WeatherSnapshot{}, 0))
	require.NoError(t, cache.Put(ctx, "fresh", domain.WeatherSnapshot{Temperature: 22}, time.Hour))

	require.NoError(t, cache.Sweep(ctx))

	_, err := cache.Get(ctx, "expired")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	got, err := cache.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, 22.0, got.Temperature)
}

func TestRecommendationCache_Roundtrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	cache := store.RecommendationCache()

	advice := domain.IrrigationAdvice{
		Needed:         true,
		Recommendation: "moderate",
		Timing:         "early_morning_or_evening",
	}
	require.NoError(t, cache.Put(ctx, "irrigation:delhi:rice", advice, 24*time.Hour))

	var got domain.IrrigationAdvice
	require.NoError(t, cache.Get(ctx, "irrigation:delhi:rice", &got))
	assert.Equal(t, advice, got)
}

func TestRecommendationCache_ExpiredIsAbsent(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	cache := store.RecommendationCache()

	require.NoError(t, cache.Put(ctx, "key", "payload", 0))

	var got string
	err := cache.Get(ctx, "key", &got)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPreferences_SaveIsUpsert(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	prefs := store.PreferencesStore()

	require.NoError(t, prefs.Save(ctx, domain.Preferences{
		UserID:          "farmer-1",
		Language:        "hi",
		Location:        "jaipur",
		CropPreferences: []string{"wheat"},
	}))
	require.NoError(t, prefs.Save(ctx, domain.Preferences{
		UserID:          "farmer-1",
		Language:        "en",
		Location:        "jaipur",
		CropPreferences: []string{"wheat", "mustard"},
		SoilType:        "alluvial",
	}))

	got, err := prefs.Get(ctx, "farmer-1")
	require.NoError(t, err)
	assert.Equal(t, "en", got.Language)
	assert.Equal(t, []string{"wheat", "mustard"}, got.CropPreferences)
	assert.Equal(t, "alluvial", got.SoilType)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestPreferences_GetUnknownUser(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.PreferencesStore().Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPreferences_SaveRejectsEmptyUserID(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.PreferencesStore().Save(context.Background(), domain.Preferences{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "agrivaani-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)
	ctx := context.Background()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	id, err := store.QueryLog().Append(ctx, "persisted", "en", "")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewStore(tempDir)
	require.NoError(t, err)
	defer reopened.Close()

	backlog, err := reopened.QueryLog().ListUnprocessed(ctx)
	require.NoError(t, err)
	require.Len(t, backlog, 1)
	assert.Equal(t, id, backlog[0].ID)
}
