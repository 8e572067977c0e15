package domain

import "time"

// Weather data provenance values.
const (
	// WeatherSourceAPI marks a snapshot fetched live from the provider.
	WeatherSourceAPI = "api"

	// WeatherSourceCache marks a snapshot served from the offline cache.
	WeatherSourceCache = "cache"

	// WeatherSourceDefault marks the static fallback snapshot.
	WeatherSourceDefault = "default"
)

// WeatherSnapshot is a point-in-time weather observation for a location.
type WeatherSnapshot struct {
	// Temperature in degrees Celsius.
	Temperature float64 `json:"temperature"`

	// Humidity as a percentage.
	Humidity float64 `json:"humidity"`

	// Rainfall over the last hour in millimetres.
	Rainfall float64 `json:"rainfall"`

	// WindSpeed in metres per second.
	WindSpeed float64 `json:"wind_speed"`

	// Description is the human-readable conditions summary.
	Description string `json:"weather_description"`

	// Pressure in hPa.
	Pressure float64 `json:"pressure"`

	// Visibility in kilometres.
	Visibility float64 `json:"visibility"`

	// Source records where the snapshot came from: api, cache, or default.
	Source string `json:"source"`

	// Timestamp is when the snapshot was taken.
	Timestamp time.Time `json:"timestamp"`
}

// DefaultWeather returns the static fallback snapshot used when both the
// provider and the cache are unavailable.
func DefaultWeather() WeatherSnapshot {
	return WeatherSnapshot{
		Temperature: 25,
		Humidity:    60,
		Rainfall:    0,
		WindSpeed:   10,
		Description: "data unavailable",
		Pressure:    1013,
		Visibility:  10,
		Source:      WeatherSourceDefault,
		Timestamp:   time.Now().UTC(),
	}
}

// ForecastPeriod is one entry of a short-range forecast.
type ForecastPeriod struct {
	// Time is the start of the forecast period.
	Time time.Time `json:"time"`

	// Temperature in degrees Celsius.
	Temperature float64 `json:"temperature"`

	// Humidity as a percentage.
	Humidity float64 `json:"humidity"`

	// Rainfall over the period in millimetres.
	Rainfall float64 `json:"rainfall"`

	// Description is the human-readable conditions summary.
	Description string `json:"weather_description"`
}

// IrrigationAdvice is the rule-engine output for irrigation queries.
type IrrigationAdvice struct {
	// Needed reports whether irrigation is currently recommended.
	Needed bool

	// Recommendation is the advice text.
	Recommendation string

	// Timing is "early_morning_or_evening" when irrigation is needed,
	// "not_needed" otherwise.
	Timing string

	// Weather is the snapshot the advice was derived from.
	Weather WeatherSnapshot
}
