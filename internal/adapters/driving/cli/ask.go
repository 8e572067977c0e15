package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/agrivaani-labs/agrivaani-cli/internal/core/domain"
)

var (
	askLocation string
	askLanguage string
	askSoil     string
	askCrop     string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask an agricultural question",
	Long: `Answers a question about crops, irrigation, fertilizers, or government
schemes, grounded in the local knowledge base. Works offline: without an AI
key the answer comes from cached recommendations and built-in advice, and
the question is queued for a full answer later.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askLocation, "location", "l", "", "city for weather lookups")
	askCmd.Flags().StringVar(&askLanguage, "lang", "", "response language (en or hi, default: detected)")
	askCmd.Flags().StringVar(&askSoil, "soil", "", "your soil type")
	askCmd.Flags().StringVar(&askCrop, "crop", "", "your current or planned crop")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	query := strings.Join(args, " ")
	session := &domain.Session{
		ID:       uuid.NewString(),
		Language: askLanguage,
		Location: askLocation,
		SoilType: askSoil,
		Crop:     askCrop,
	}

	answer, err := assistantService.Answer(cmd.Context(), session, query)
	if err != nil {
		return fmt.Errorf("answering query: %w", err)
	}

	cmd.Println(answer.Text)
	cmd.Println()
	if len(answer.Sources) > 0 {
		cmd.Printf("Sources: %s\n", strings.Join(answer.Sources, ", "))
	}
	cmd.Printf("Intent: %s  Confidence: %.2f", answer.Intent, answer.Confidence)
	if answer.Offline {
		cmd.Print("  [offline]")
	}
	cmd.Println()
	return nil
}
