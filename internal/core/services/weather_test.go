package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrivaani-labs/agrivaani-cli/internal/adapters/driven/storage/memory"
	"github.com/agrivaani-labs/agrivaani-cli/internal/core/domain"
)

func TestCurrent_ProviderFirst(t *testing.T) {
	provider := &fakeWeatherProvider{
		snapshot: domain.WeatherSnapshot{Temperature: 33, Source: domain.WeatherSourceAPI},
	}
	cache := memory.NewWeatherCache()
	svc := NewWeatherService(provider, cache, time.Hour)
	ctx := context.Background()

	got := svc.Current(ctx, "Delhi")
	assert.Equal(t, 33.0, got.Temperature)
	assert.Equal(t, domain.WeatherSourceAPI, got.Source)

	// The success was written back to the cache.
	cached, err := cache.Get(ctx, "delhi")
	require.NoError(t, err)
	assert.Equal(t, 33.0, cached.Temperature)
}

func TestCurrent_CacheWhenProviderFails(t *testing.T) {
	provider := &fakeWeatherProvider{err: errFakeUnavailable}
	cache := memory.NewWeatherCache()
	ctx := context.Background()

	// A ten-minute-old snapshot is still within the one-hour TTL.
	require.NoError(t, cache.Put(ctx, "delhi", domain.WeatherSnapshot{
		Temperature: 27,
		Timestamp:   time.Now().UTC().Add(-10 * time.Minute),
	}, time.Hour))

	svc := NewWeatherService(provider, cache, time.Hour)
	got := svc.Current(ctx, "Delhi")

	assert.Equal(t, 27.0, got.Temperature)
	assert.Equal(t, domain.WeatherSourceCache, got.Source)
}

func TestCurrent_DefaultWhenAllElseFails(t *testing.T) {
	provider := &fakeWeatherProvider{err: errFakeUnavailable}
	svc := NewWeatherService(provider, memory.NewWeatherCache(), time.Hour)

	got := svc.Current(context.Background(), "Delhi")

	assert.Equal(t, domain.WeatherSourceDefault, got.Source)
	assert.Equal(t, 25.0, got.Temperature)
	assert.Equal(t, "data unavailable", got.Description)
}

func TestCurrent_NilProviderUsesCacheThenDefault(t *testing.T) {
	svc := NewWeatherService(nil, memory.NewWeatherCache(), time.Hour)

	got := svc.Current(context.Background(), "Pune")
	assert.Equal(t, domain.WeatherSourceDefault, got.Source)
}

func TestAdvise_Rules(t *testing.T) {
	tests := []struct {
		name    string
		weather domain.WeatherSnapshot
		needed  bool
		timing  string
	}{
		{
			name:    "recent rain suppresses irrigation",
			weather: domain.WeatherSnapshot{Rainfall: 6, Humidity: 45, Temperature: 36},
			needed:  false,
			timing:  "not_needed",
		},
		{
			name:    "hot and dry needs immediate water",
			weather: domain.WeatherSnapshot{Humidity: 35, Temperature: 38},
			needed:  true,
			timing:  "early_morning_or_evening",
		},
		{
			name:    "warm and dryish needs moderate water",
			weather: domain.WeatherSnapshot{Humidity: 45, Temperature: 32},
			needed:  true,
			timing:  "early_morning_or_evening",
		},
		{
			name:    "high humidity holds irrigation",
			weather: domain.WeatherSnapshot{Humidity: 85, Temperature: 28},
			needed:  false,
			timing:  "not_needed",
		},
		{
			name:    "mild conditions get light irrigation",
			weather: domain.WeatherSnapshot{Humidity: 60, Temperature: 25},
			needed:  true,
			timing:  "early_morning_or_evening",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advise(tt.weather)
			assert.Equal(t, tt.needed, got.Needed)
			assert.Equal(t, tt.timing, got.Timing)
			assert.NotEmpty(t, got.Recommendation)
			assert.Equal(t, tt.weather, got.Weather)
		})
	}
}

func TestAdvise_RainWinsOverHeat(t *testing.T) {
	// Rule order matters: heavy rain suppresses irrigation even in hot,
	// dry air.
	got := Advise(domain.WeatherSnapshot{Rainfall: 10, Humidity: 30, Temperature: 40})
	assert.False(t, got.Needed)
}
