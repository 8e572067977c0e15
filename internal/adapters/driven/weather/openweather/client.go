// Package openweather provides a weather provider adapter using the
// OpenWeatherMap API.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/agrivaani-labs/agrivaani-cli/internal/core/domain"
	"github.com/agrivaani-labs/agrivaani-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.WeatherProvider = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
	DefaultTimeout = 10 * time.Second

	// forecastPeriods is how many forecast entries to return.
	forecastPeriods = 5
)

// Free-tier OpenWeatherMap allows 60 calls/minute; stay at 1/s with a
// small burst.
var defaultLimit = rate.Limit(1)

// Config holds configuration for the OpenWeatherMap client.
type Config struct {
	// APIKey is the OpenWeatherMap API key (required).
	APIKey string

	// BaseURL is the API base URL.
	BaseURL string

	// Timeout bounds each request (default: 10s).
	Timeout time.Duration

	// Country is appended to city queries (default: "IN").
	Country string
}

// Client fetches current weather and short-range forecasts.
type Client struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
	apiKey  string
	country string
}

// currentResponse is the subset of /weather we consume.
type currentResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
		Pressure float64 `json:"pressure"`
	} `json:"main"`
	Rain struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Visibility float64 `json:"visibility"`
}

// forecastResponse is the subset of /forecast we consume.
type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Rain struct {
			ThreeHour float64 `json:"3h"`
		} `json:"rain"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

// NewClient creates a new OpenWeatherMap client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openweather: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Country == "" {
		cfg.Country = "IN"
	}

	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(defaultLimit, 3),
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		country: cfg.Country,
	}, nil
}

// Fetch returns the current weather for a location. Any unusable result
// (timeout, non-2xx, malformed body) is reported as
// domain.ErrWeatherUnavailable so the caller can run its fallback chain.
func (c *Client) Fetch(ctx context.Context, location string) (domain.WeatherSnapshot, error) {
	var parsed currentResponse
	if err := c.get(ctx, "/weather", location, &parsed); err != nil {
		return domain.WeatherSnapshot{}, err
	}
	if len(parsed.Weather) == 0 {
		return domain.WeatherSnapshot{}, fmt.Errorf("%w: empty weather conditions", domain.ErrWeatherUnavailable)
	}

	visibility := parsed.Visibility
	if visibility == 0 {
		visibility = 10000
	}

	return domain.WeatherSnapshot{
		Temperature: parsed.Main.Temp,
		Humidity:    parsed.Main.Humidity,
		Rainfall:    parsed.Rain.OneHour,
		WindSpeed:   parsed.Wind.Speed,
		Description: parsed.Weather[0].Description,
		Pressure:    parsed.Main.Pressure,
		Visibility:  visibility / 1000, // metres to km
		Source:      domain.WeatherSourceAPI,
		Timestamp:   time.Now().UTC(),
	}, nil
}

// Forecast returns the next five forecast periods for a location.
func (c *Client) Forecast(ctx context.Context, location string) ([]domain.ForecastPeriod, error) {
	var parsed forecastResponse
	if err := c.get(ctx, "/forecast", location, &parsed); err != nil {
		return nil, err
	}

	periods := make([]domain.ForecastPeriod, 0, forecastPeriods)
	for i, item := range parsed.List {
		if i >= forecastPeriods {
			break
		}
		description := ""
		if len(item.Weather) > 0 {
			description = item.Weather[0].Description
		}
		periods = append(periods, domain.ForecastPeriod{
			Time:        time.Unix(item.Dt, 0).UTC(),
			Temperature: item.Main.Temp,
			Humidity:    item.Main.Humidity,
			Rainfall:    item.Rain.ThreeHour,
			Description: description,
		})
	}
	return periods, nil
}

// get performs a rate-limited GET against the given endpoint and decodes
// the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint, location string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrWeatherUnavailable, err)
	}

	params := url.Values{}
	params.Set("q", location+","+c.country)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+endpoint+"?"+params.Encode(),
		http.NoBody,
	)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrWeatherUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", domain.ErrWeatherUnavailable, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", domain.ErrWeatherUnavailable, err)
	}
	return nil
}
