package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agrivaani-labs/agrivaani-cli/internal/core/domain"
)

// defaultProfileUser keys the single-user CLI profile.
const defaultProfileUser = "default"

var (
	profileLanguage string
	profileLocation string
	profileSoil     string
	profileCrops    []string
	profileLandSize string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your farm profile",
	Long: `Your farm profile (location, soil type, preferred crops) is stored
locally and used to seed chat sessions, so you do not have to repeat it with
every question.`,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored farm profile",
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set farm profile fields",
	RunE:  runProfileSet,
}

func init() {
	profileSetCmd.Flags().StringVar(&profileLanguage, "lang", "", "preferred language (en or hi)")
	profileSetCmd.Flags().StringVarP(&profileLocation, "location", "l", "", "city for weather lookups")
	profileSetCmd.Flags().StringVar(&profileSoil, "soil", "", "soil type")
	profileSetCmd.Flags().StringSliceVar(&profileCrops, "crops", nil, "preferred crops (comma separated)")
	profileSetCmd.Flags().StringVar(&profileLandSize, "land-size", "", "land size in hectares")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	if preferencesStore == nil {
		return errors.New("preferences store not configured")
	}

	prefs, err := preferencesStore.Get(cmd.Context(), defaultProfileUser)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Println("No profile stored. Use 'agrivaani profile set' to create one.")
			return nil
		}
		return fmt.Errorf("loading profile: %w", err)
	}

	cmd.Println("Farm profile:")
	cmd.Printf("  Language:  %s\n", valueOr(prefs.Language, "-"))
	cmd.Printf("  Location:  %s\n", valueOr(prefs.Location, "-"))
	cmd.Printf("  Soil type: %s\n", valueOr(prefs.SoilType, "-"))
	cmd.Printf("  Crops:     %s\n", valueOr(strings.Join(prefs.CropPreferences, ", "), "-"))
	cmd.Printf("  Land size: %s\n", valueOr(prefs.LandSize, "-"))
	cmd.Printf("  Updated:   %s\n", prefs.UpdatedAt.Local().Format("2006-01-02 15:04"))
	return nil
}

func runProfileSet(cmd *cobra.Command, _ []string) error {
	if preferencesStore == nil {
		return errors.New("preferences store not configured")
	}

	// Start from the stored profile so unset flags keep their values.
	prefs := domain.Preferences{UserID: defaultProfileUser}
	if existing, err := preferencesStore.Get(cmd.Context(), defaultProfileUser); err == nil {
		prefs = *existing
	}

	changed := false
	if cmd.Flags().Changed("lang") {
		prefs.Language = profileLanguage
		changed = true
	}
	if cmd.Flags().Changed("location") {
		prefs.Location = profileLocation
		changed = true
	}
	if cmd.Flags().Changed("soil") {
		prefs.SoilType = profileSoil
		changed = true
	}
	if cmd.Flags().Changed("crops") {
		prefs.CropPreferences = profileCrops
		changed = true
	}
	if cmd.Flags().Changed("land-size") {
		prefs.LandSize = profileLandSize
		changed = true
	}
	if !changed {
		return errors.New("nothing to set, pass at least one flag")
	}

	if err := preferencesStore.Save(cmd.Context(), prefs); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	cmd.Println("Profile saved.")
	return nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
