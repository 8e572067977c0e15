package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agrivaani-labs/agrivaani-cli/internal/core/domain"
)

var cropsCmd = &cobra.Command{
	Use:   "crops [name]",
	Short: "Show the growing calendar for a crop",
	Long: `Shows the structured record for a crop from the knowledge base: growing
seasons, cycle duration, water requirement, suitable soils, and the planting
and harvesting months.`,
	Args: cobra.ExactArgs(1),
	RunE: runCrops,
}

func init() {
	rootCmd.AddCommand(cropsCmd)
}

func runCrops(cmd *cobra.Command, args []string) error {
	if corpusStore == nil {
		return errors.New("knowledge base not configured")
	}

	profile, err := corpusStore.CropProfile(args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Printf("No record for crop %q.\n", args[0])
			return nil
		}
		return fmt.Errorf("loading crop record: %w", err)
	}

	cmd.Printf("%s\n", profile.Name)
	cmd.Printf("  Season:     %s\n", strings.Join(profile.Season, ", "))
	cmd.Printf("  Duration:   %d days\n", profile.DurationDays)
	cmd.Printf("  Water:      %s\n", profile.WaterRequirement)
	cmd.Printf("  Soils:      %s\n", strings.Join(profile.SoilTypes, ", "))
	cmd.Printf("  Planting:   %s\n", monthNames(profile.PlantingMonths))
	cmd.Printf("  Harvesting: %s\n", monthNames(profile.HarvestingMonths))
	return nil
}

var shortMonths = [...]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

func monthNames(months []int) string {
	names := make([]string, 0, len(months))
	for _, m := range months {
		if m < 1 || m > 12 {
			continue
		}
		names = append(names, shortMonths[m-1])
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
