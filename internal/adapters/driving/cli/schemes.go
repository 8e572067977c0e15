package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var schemesCmd = &cobra.Command{
	Use:   "schemes",
	Short: "List government schemes for farmers",
	RunE:  runSchemes,
}

func init() {
	rootCmd.AddCommand(schemesCmd)
}

func runSchemes(cmd *cobra.Command, _ []string) error {
	if corpusStore == nil {
		return errors.New("knowledge base not configured")
	}

	schemes, err := corpusStore.Schemes()
	if err != nil {
		return fmt.Errorf("loading schemes: %w", err)
	}
	if len(schemes) == 0 {
		cmd.Println("No schemes available.")
		return nil
	}

	keys := make([]string, 0, len(schemes))
	for key := range schemes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		scheme := schemes[key]
		cmd.Printf("%s (%d)\n", scheme.Name, scheme.LaunchYear)
		cmd.Printf("  %s\n", scheme.Description)
		cmd.Printf("  Benefits: %s\n", scheme.Benefits)
		if len(scheme.Eligibility) > 0 {
			cmd.Println("  Eligibility:")
			for _, criterion := range scheme.Eligibility {
				cmd.Printf("    - %s\n", criterion)
			}
		}
		cmd.Println()
	}
	return nil
}
