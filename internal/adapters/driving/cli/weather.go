package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/agrivaani-labs/agrivaani-cli/internal/core/services"
	"github.com/agrivaani-labs/agrivaani-cli/internal/logger"
)

var weatherForecast bool

var weatherCmd = &cobra.Command{
	Use:   "weather [location]",
	Short: "Show current weather and irrigation advice",
	Long: `Shows current conditions for a location along with irrigation advice
derived from them. Falls back to cached data and then built-in defaults when
the weather provider is not configured or unreachable.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWeather,
}

func init() {
	weatherCmd.Flags().BoolVarP(&weatherForecast, "forecast", "f", false, "include the short-range forecast")
	rootCmd.AddCommand(weatherCmd)
}

func runWeather(cmd *cobra.Command, args []string) error {
	if weatherService == nil {
		return errors.New("weather service not configured")
	}

	location := "Delhi"
	if len(args) > 0 {
		location = args[0]
	}

	snapshot := weatherService.Current(cmd.Context(), location)
	advice := services.Advise(snapshot)

	cmd.Printf("Weather for %s (%s):\n", location, snapshot.Source)
	cmd.Printf("  Temperature: %.1f°C\n", snapshot.Temperature)
	cmd.Printf("  Humidity:    %.0f%%\n", snapshot.Humidity)
	cmd.Printf("  Rainfall:    %.1f mm\n", snapshot.Rainfall)
	cmd.Printf("  Wind:        %.1f m/s\n", snapshot.WindSpeed)
	cmd.Printf("  Conditions:  %s\n", snapshot.Description)
	cmd.Println()
	cmd.Printf("Irrigation: %s\n", advice.Recommendation)

	if weatherForecast {
		if weatherProvider == nil {
			cmd.Println()
			cmd.Println("Forecast unavailable: weather provider not configured.")
			return nil
		}
		periods, err := weatherProvider.Forecast(cmd.Context(), location)
		if err != nil {
			logger.Warn("weather: forecast: %v", err)
			cmd.Println()
			cmd.Println("Forecast unavailable.")
			return nil
		}
		cmd.Println()
		cmd.Println("Forecast:")
		for _, period := range periods {
			cmd.Printf("  %s  %5.1f°C  %3.0f%%  %.1f mm  %s\n",
				period.Time.Local().Format("Mon 15:04"),
				period.Temperature, period.Humidity, period.Rainfall, period.Description)
		}
	}
	return nil
}
