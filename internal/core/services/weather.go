package services

import (
	"context"
	"errors"
	"time"

	"github.com/agrivaani-labs/agrivaani-cli/internal/core/domain"
	"github.com/agrivaani-labs/agrivaani-cli/internal/core/ports/driven"
	"github.com/agrivaani-labs/agrivaani-cli/internal/logger"
)

// WeatherService resolves weather for a location through a fixed fallback
// chain: live provider, then offline cache, then the static default. A
// caller always gets a snapshot.
type WeatherService struct {
	provider driven.WeatherProvider
	cache    driven.WeatherCache
	ttl      time.Duration
}

// NewWeatherService creates a weather service. provider may be nil when no
// API key is configured; cache may be nil in fully stateless setups.
func NewWeatherService(provider driven.WeatherProvider, cache driven.WeatherCache, ttl time.Duration) *WeatherService {
	if ttl <= 0 {
		ttl = domain.DefaultAppSettings().Cache.WeatherTTL
	}
	return &WeatherService{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
	}
}

// Current returns weather for the location. Provider successes are written
// back to the cache; cache faults are logged and treated as misses, they
// never surface to the caller.
func (s *WeatherService) Current(ctx context.Context, location string) domain.WeatherSnapshot {
	if s.provider != nil {
		snapshot, err := s.provider.Fetch(ctx, location)
		if err == nil {
			if s.cache != nil {
				if err := s.cache.Put(ctx, location, snapshot, s.ttl); err != nil {
					logger.Warn("weather: caching snapshot for %s: %v", location, err)
				}
			}
			return snapshot
		}
		logger.Debug("weather: provider fetch for %s failed: %v", location, err)
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, location)
		if err == nil {
			return *cached
		}
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("weather: cache read for %s: %v", location, err)
		}
	}

	return domain.DefaultWeather()
}

// Advise runs the irrigation rule engine over a snapshot. Rules are ordered
// and the first match wins.
func Advise(weather domain.WeatherSnapshot) domain.IrrigationAdvice {
	advice := domain.IrrigationAdvice{Weather: weather}

	switch {
	case weather.Rainfall > 5:
		advice.Needed = false
		advice.Recommendation = "No irrigation needed. Recent rainfall is sufficient."
		advice.Timing = "not_needed"
	case weather.Humidity < 40 && weather.Temperature > 35:
		advice.Needed = true
		advice.Recommendation = "Immediate irrigation recommended. Hot and dry conditions."
		advice.Timing = "early_morning_or_evening"
	case weather.Humidity < 50 && weather.Temperature > 30:
		advice.Needed = true
		advice.Recommendation = "Moderate irrigation recommended within the next day."
		advice.Timing = "early_morning_or_evening"
	case weather.Humidity > 80:
		advice.Needed = false
		advice.Recommendation = "Hold irrigation and monitor. High humidity reduces water loss."
		advice.Timing = "not_needed"
	default:
		advice.Needed = true
		advice.Recommendation = "Light irrigation recommended. Check soil moisture first."
		advice.Timing = "early_morning_or_evening"
	}

	return advice
}
