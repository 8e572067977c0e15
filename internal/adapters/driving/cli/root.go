// Package cli implements the command-line interface. Commands share one
// service graph wired lazily on first use, so tests can inject their own.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/agrivaani-labs/agrivaani-cli/internal/adapters/driven/config/file"
	corpusfile "github.com/agrivaani-labs/agrivaani-cli/internal/adapters/driven/corpus/file"
	"github.com/agrivaani-labs/agrivaani-cli/internal/adapters/driven/embedding/lexical"
	"github.com/agrivaani-labs/agrivaani-cli/internal/adapters/driven/llm/groq"
	"github.com/agrivaani-labs/agrivaani-cli/internal/adapters/driven/storage/memory"
	"github.com/agrivaani-labs/agrivaani-cli/internal/adapters/driven/storage/sqlite"
	"github.com/agrivaani-labs/agrivaani-cli/internal/adapters/driven/vectorindex/flat"
	"github.com/agrivaani-labs/agrivaani-cli/internal/adapters/driven/weather/openweather"
	"github.com/agrivaani-labs/agrivaani-cli/internal/core/domain"
	"github.com/agrivaani-labs/agrivaani-cli/internal/core/ports/driven"
	"github.com/agrivaani-labs/agrivaani-cli/internal/core/ports/driving"
	"github.com/agrivaani-labs/agrivaani-cli/internal/core/services"
	"github.com/agrivaani-labs/agrivaani-cli/internal/logger"
)

var (
	verbose   bool
	configDir string
	dataDir   string
)

// Shared service graph, wired by initServices.
var (
	configStore      driven.ConfigStore
	corpusStore      driven.CorpusStore
	offlineStore     *sqlite.Store
	queryLog         driven.QueryLog
	preferencesStore driven.PreferencesStore
	weatherProvider  driven.WeatherProvider
	weatherService   *services.WeatherService
	assistantService driving.AssistantService
	retrievalService driving.RetrievalService
	retrievalCore    *services.RetrievalService
	llmService       driven.LLMService
	appSettings      domain.AppSettings
)

var rootCmd = &cobra.Command{
	Use:   "agrivaani",
	Short: "Offline-capable agricultural query assistant",
	Long: `AgriVaani answers farming questions about crops, irrigation,
fertilizers, and government schemes. It retrieves grounding material from a
local knowledge base, consults live weather for irrigation advice, and keeps
working offline: queries are cached and logged, then replayed when the AI
service is reachable again.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if offlineStore != nil {
			if err := offlineStore.Close(); err != nil {
				logger.Warn("closing offline store: %v", err)
			}
		}
		if llmService != nil {
			_ = llmService.Close()
		}
	},
}

func init() {
	// Assigned here rather than in the composite literal to avoid an
	// initialization cycle: initServices refers back to rootCmd.
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return initServices()
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.agrivaani)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "knowledge-base directory (default: embedded corpus)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices wires the full service graph. Only the config store and the
// knowledge base are required; the AI service, weather provider, and SQLite
// store all degrade gracefully when missing.
func initServices() error {
	if assistantService != nil {
		return nil // already wired, e.g. by a test
	}

	cfg, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	configStore = cfg
	appSettings = settingsFromConfig(cfg)
	if dataDir != "" {
		appSettings.DataDir = dataDir
	}

	// Offline store. A failure here is logged and the in-memory twins take
	// over for the process lifetime.
	var weatherCache driven.WeatherCache
	var recCache driven.RecommendationCache
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("offline store unavailable, falling back to memory: %v", err)
		weatherCache = memory.NewWeatherCache()
		recCache = memory.NewRecommendationCache()
		queryLog = memory.NewQueryLog()
		preferencesStore = memory.NewPreferencesStore()
	} else {
		offlineStore = store
		weatherCache = store.WeatherCache()
		recCache = store.RecommendationCache()
		queryLog = store.QueryLog()
		preferencesStore = store.PreferencesStore()
	}

	// Retrieval stack.
	corpusStore = corpusfile.NewCorpusStore(appSettings.DataDir)
	embedder := lexical.NewEmbeddingService(appSettings.Retrieval.Dimensions)
	index := flat.NewIndex(appSettings.Retrieval.Dimensions)
	retrieval := services.NewRetrievalService(corpusStore, embedder, index, appSettings.Retrieval.ContextTopK)
	if err := retrieval.Rebuild(rootCmd.Context()); err != nil {
		logger.Warn("building index: %v", err)
	}
	retrievalService = retrieval
	retrievalCore = retrieval

	// Optional AI service.
	if appSettings.AI.APIKey != "" {
		llm, err := groq.NewLLMService(groq.Config{
			APIKey:  appSettings.AI.APIKey,
			BaseURL: appSettings.AI.BaseURL,
			Model:   appSettings.AI.Model,
		})
		if err != nil {
			logger.Warn("AI service unavailable: %v", err)
		} else {
			llmService = llm
		}
	}

	// Optional weather provider.
	if appSettings.Weather.APIKey != "" {
		client, err := openweather.NewClient(openweather.Config{
			APIKey:  appSettings.Weather.APIKey,
			BaseURL: appSettings.Weather.BaseURL,
			Timeout: appSettings.Weather.Timeout,
		})
		if err != nil {
			logger.Warn("weather provider unavailable: %v", err)
		} else {
			weatherProvider = client
		}
	}

	weatherService = services.NewWeatherService(weatherProvider, weatherCache, appSettings.Cache.WeatherTTL)
	intents := services.NewIntentService(llmService, appSettings.Intent.NeutralConfidence)
	builder := services.NewContextBuilder(appSettings.Context.MaxLength)

	assistantService = services.NewAssistantService(
		intents, retrieval, weatherService, builder,
		llmService, corpusStore, queryLog, recCache, appSettings,
	)
	return nil
}

// settingsFromConfig overlays stored configuration on the defaults.
// Environment variables win over the config file for secrets.
func settingsFromConfig(cfg driven.ConfigStore) domain.AppSettings {
	s := domain.DefaultAppSettings()

	if v := cfg.GetString("ai.api_key"); v != "" {
		s.AI.APIKey = v
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		s.AI.APIKey = v
	}
	if v := cfg.GetString("ai.model"); v != "" {
		s.AI.Model = v
	}
	if v := cfg.GetString("ai.base_url"); v != "" {
		s.AI.BaseURL = v
	}

	if v := cfg.GetString("weather.api_key"); v != "" {
		s.Weather.APIKey = v
	}
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		s.Weather.APIKey = v
	}
	if v := cfg.GetString("weather.base_url"); v != "" {
		s.Weather.BaseURL = v
	}
	if v := cfg.GetInt("weather.timeout_seconds"); v > 0 {
		s.Weather.Timeout = time.Duration(v) * time.Second
	}

	if v := cfg.GetInt("retrieval.dimensions"); v > 0 {
		s.Retrieval.Dimensions = v
	}
	if v := cfg.GetInt("retrieval.source_top_k"); v > 0 {
		s.Retrieval.SourceTopK = v
	}
	if v := cfg.GetInt("retrieval.context_top_k"); v > 0 {
		s.Retrieval.ContextTopK = v
	}
	if v := cfg.GetInt("context.max_length"); v > 0 {
		s.Context.MaxLength = v
	}
	if v := cfg.GetInt("cache.weather_ttl_minutes"); v > 0 {
		s.Cache.WeatherTTL = time.Duration(v) * time.Minute
	}
	if v := cfg.GetInt("cache.recommendation_ttl_minutes"); v > 0 {
		s.Cache.RecommendationTTL = time.Duration(v) * time.Minute
	}
	if v := cfg.GetFloat("intent.neutral_confidence"); v > 0 {
		s.Intent.NeutralConfidence = v
	}
	if v := cfg.GetString("data_dir"); v != "" {
		s.DataDir = v
	}

	return s
}
