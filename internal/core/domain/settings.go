package domain

import "time"

// AppSettings holds all user-configurable application settings.
type AppSettings struct {
	// AI configures the generative-language provider.
	AI AISettings

	// Weather configures the weather provider.
	Weather WeatherSettings

	// Retrieval configures embedding and vector search.
	Retrieval RetrievalSettings

	// Context configures context assembly.
	Context ContextSettings

	// Cache configures offline cache TTLs.
	Cache CacheSettings

	// Intent configures the classifier.
	Intent IntentSettings

	// DataDir overrides the knowledge-base directory. Empty uses the
	// embedded defaults.
	DataDir string
}

// AISettings configure the generative-language provider.
type AISettings struct {
	// APIKey enables the AI service when non-empty.
	APIKey string

	// Model is the chat model name.
	Model string

	// BaseURL overrides the provider endpoint.
	BaseURL string
}

// WeatherSettings configure the weather provider.
type WeatherSettings struct {
	// APIKey enables live weather when non-empty.
	APIKey string

	// BaseURL overrides the provider endpoint.
	BaseURL string

	// Timeout bounds each provider call.
	Timeout time.Duration
}

// RetrievalSettings configure embedding and vector search.
type RetrievalSettings struct {
	// Dimensions is the embedding vector size.
	Dimensions int

	// SourceTopK is how many documents to cite as sources.
	SourceTopK int

	// ContextTopK is how many documents to offer to context assembly.
	ContextTopK int
}

// ContextSettings configure context assembly.
type ContextSettings struct {
	// MaxLength is the context budget in characters.
	MaxLength int
}

// CacheSettings configure offline cache TTLs.
type CacheSettings struct {
	// WeatherTTL is how long cached weather stays fresh.
	WeatherTTL time.Duration

	// RecommendationTTL is how long cached recommendations stay fresh.
	RecommendationTTL time.Duration
}

// IntentSettings configure the classifier.
type IntentSettings struct {
	// NeutralConfidence is reported when the fallback classifier matches
	// nothing. An arbitrary constant with no derivation - kept
	// configurable on purpose.
	NeutralConfidence float64
}

// DefaultAppSettings returns settings with all defaults applied.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		AI: AISettings{
			Model:   "llama3-8b-8192",
			BaseURL: "https://api.groq.com/openai/v1",
		},
		Weather: WeatherSettings{
			BaseURL: "https://api.openweathermap.org/data/2.5",
			Timeout: 10 * time.Second,
		},
		Retrieval: RetrievalSettings{
			Dimensions:  1536,
			SourceTopK:  3,
			ContextTopK: 5,
		},
		Context: ContextSettings{
			MaxLength: 2000,
		},
		Cache: CacheSettings{
			WeatherTTL:        time.Hour,
			RecommendationTTL: 24 * time.Hour,
		},
		Intent: IntentSettings{
			NeutralConfidence: 0.5,
		},
	}
}
