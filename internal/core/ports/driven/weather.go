package driven

import (
	"context"

	"github.com/agrivaani-labs/agrivaani-cli/internal/core/domain"
)

// WeatherProvider fetches live weather data. This is an optional service -
// when nil or failing, callers fall back to the weather cache and then the
// static default snapshot, in that order.
type WeatherProvider interface {
	// Fetch returns the current weather for a location. Any unusable
	// result (timeout, non-2xx, malformed body) is an error; the caller
	// decides the fallback, never this adapter.
	Fetch(ctx context.Context, location string) (domain.WeatherSnapshot, error)

	// Forecast returns the next few forecast periods for a location.
	Forecast(ctx context.Context, location string) ([]domain.ForecastPeriod, error)
}
