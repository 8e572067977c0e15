package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Reads and writes configuration keys in the local config file. Keys use
dot notation, e.g. 'ai.model' or 'cache.weather_ttl_minutes'. API keys can
also come from the GROQ_API_KEY and OPENWEATHER_API_KEY environment
variables, which take precedence.`,
	RunE: runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println("Configuration:")
	cmd.Printf("  ai.model:              %s\n", appSettings.AI.Model)
	cmd.Printf("  ai.api_key:            %s\n", maskSecret(appSettings.AI.APIKey))
	cmd.Printf("  weather.api_key:       %s\n", maskSecret(appSettings.Weather.APIKey))
	cmd.Printf("  retrieval.source_top_k:  %d\n", appSettings.Retrieval.SourceTopK)
	cmd.Printf("  retrieval.context_top_k: %d\n", appSettings.Retrieval.ContextTopK)
	cmd.Printf("  context.max_length:    %d\n", appSettings.Context.MaxLength)
	cmd.Printf("  cache.weather_ttl:     %s\n", appSettings.Cache.WeatherTTL)
	cmd.Printf("  cache.recommendation_ttl: %s\n", appSettings.Cache.RecommendationTTL)
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	value, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}
	cmd.Printf("%v\n", value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	if err := configStore.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("setting %q: %w", args[0], err)
	}
	cmd.Printf("Set %s.\n", args[0])
	return nil
}

func maskSecret(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
