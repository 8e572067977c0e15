package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	corpusfile "github.com/agrivaani-labs/agrivaani-cli/internal/adapters/driven/corpus/file"
	"github.com/agrivaani-labs/agrivaani-cli/internal/core/domain"
	"github.com/agrivaani-labs/agrivaani-cli/internal/logger"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive question session",
	Long: `Starts a conversational session. The session keeps your questions and
answers in memory, seeds itself from the stored farm profile, and picks up
knowledge-base edits without a restart. End with 'exit' or Ctrl-D.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Knowledge-base edits rebuild the index while the session runs.
	if retrievalCore != nil {
		watcher := corpusfile.NewWatcher(appSettings.DataDir)
		go func() {
			if err := retrievalCore.WatchCorpus(ctx, watcher); err != nil {
				logger.Warn("chat: corpus watcher stopped: %v", err)
			}
		}()
	}

	session := newChatSession(ctx)

	cmd.Println("AgriVaani chat. Ask about crops, irrigation, fertilizers, or schemes.")
	cmd.Println("Type 'exit' to leave.")
	cmd.Println()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			break
		}

		answer, err := assistantService.Answer(ctx, session, query)
		if err != nil {
			return fmt.Errorf("answering query: %w", err)
		}

		cmd.Println()
		cmd.Println(answer.Text)
		if len(answer.Sources) > 0 {
			cmd.Printf("(%s)\n", strings.Join(answer.Sources, ", "))
		}
		if answer.Offline {
			cmd.Println("[offline]")
		}
		cmd.Println()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	cmd.Println("Goodbye.")
	return nil
}

// newChatSession creates the session for one chat run, seeded from the
// stored farm profile when one exists.
func newChatSession(ctx context.Context) *domain.Session {
	session := &domain.Session{ID: uuid.NewString()}

	if preferencesStore == nil {
		return session
	}
	prefs, err := preferencesStore.Get(ctx, defaultProfileUser)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("chat: loading profile: %v", err)
		}
		return session
	}

	session.Language = prefs.Language
	session.Location = prefs.Location
	session.SoilType = prefs.SoilType
	session.LandSize = prefs.LandSize
	if len(prefs.CropPreferences) > 0 {
		session.Crop = prefs.CropPreferences[0]
	}
	return session
}
