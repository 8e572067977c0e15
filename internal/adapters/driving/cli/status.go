package cli

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show assistant status and configuration",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cmd.Println("AgriVaani status")
	cmd.Println()

	if retrievalService != nil {
		cmd.Printf("  Knowledge base:   %d documents indexed\n", retrievalService.Size())
	}

	if llmService != nil {
		cmd.Printf("  AI service:       %s\n", llmService.ModelName())
	} else {
		cmd.Println("  AI service:       not configured (offline mode)")
	}

	if appSettings.Weather.APIKey != "" {
		cmd.Println("  Weather provider: configured")
	} else {
		cmd.Println("  Weather provider: not configured (cache and defaults only)")
	}

	if offlineStore != nil {
		cmd.Printf("  Offline store:    %s\n", offlineStore.Path())

		entries, err := queryLog.ListUnprocessed(cmd.Context())
		if err == nil {
			cmd.Printf("  Backlog:          %d queries waiting\n", len(entries))
		}
	} else {
		cmd.Println("  Offline store:    in-memory (not persisted)")
	}

	return nil
}
