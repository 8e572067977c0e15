package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var backlogCmd = &cobra.Command{
	Use:   "backlog",
	Short: "Manage queries saved while offline",
}

var backlogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List queries waiting for an answer",
	RunE:  runBacklogList,
}

var backlogProcessCmd = &cobra.Command{
	Use:   "process",
	Short: "Answer saved queries now that the AI service is reachable",
	RunE:  runBacklogProcess,
}

func init() {
	backlogCmd.AddCommand(backlogListCmd)
	backlogCmd.AddCommand(backlogProcessCmd)
	rootCmd.AddCommand(backlogCmd)
}

func runBacklogList(cmd *cobra.Command, _ []string) error {
	if queryLog == nil {
		return errors.New("offline store not configured")
	}

	entries, err := queryLog.ListUnprocessed(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing backlog: %w", err)
	}
	if len(entries) == 0 {
		cmd.Println("Backlog is empty.")
		return nil
	}

	for _, entry := range entries {
		cmd.Printf("  [%d] %s  (%s, %s)\n",
			entry.ID, entry.QueryText, entry.Language,
			entry.Timestamp.Format("2006-01-02 15:04"))
	}
	cmd.Printf("\n%d queries waiting.\n", len(entries))
	return nil
}

func runBacklogProcess(cmd *cobra.Command, _ []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	processed, err := assistantService.ProcessBacklog(cmd.Context())
	if err != nil {
		return fmt.Errorf("processing backlog: %w", err)
	}

	cmd.Printf("Processed %d queries.\n", processed)
	return nil
}
