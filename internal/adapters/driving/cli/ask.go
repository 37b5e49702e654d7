package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/logger"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your documents",
	Long: `Answers a question using only your uploaded documents.

The question is embedded, the most relevant chunks are retrieved from
your corpus, and an answer is synthesized from them. Each answer lists
the document chunks it was grounded on. If nothing relevant is found,
Recall says so instead of guessing.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if askService == nil {
		return errors.New("ask service not configured")
	}

	progress := func(phase domain.AskPhase) {
		logger.Debug("pipeline phase: %s", phase)
	}

	answer, err := askService.AskWithProgress(cmd.Context(), ownerID(), question, progress)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputAnswerJSON(cmd, answer)
	}

	return outputAnswerText(cmd, answer)
}

func outputAnswerJSON(cmd *cobra.Command, answer *domain.Answer) error {
	data, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnswerText(cmd *cobra.Command, answer *domain.Answer) error {
	cmd.Println(answer.Text)

	if len(answer.References) > 0 {
		cmd.Println()
		cmd.Println("References:")
		for i := range answer.References {
			cmd.Printf("  [%d] %s (%.2f)\n", i+1, answer.References[i].Filename, answer.References[i].Score)
			cmd.Printf("      %s\n", snippet(answer.References[i].Content, 120))
		}
	}

	return nil
}

// snippet truncates s to at most n runes for single-line display.
func snippet(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
