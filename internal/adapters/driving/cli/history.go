package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past questions and answers",
	Long: `Lists your past questions and their answers, newest first.
Each entry shows the documents the answer was grounded on at the time
it was given, even if those documents have since been deleted.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of entries (0 = all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	interactions, err := historyService.History(cmd.Context(), ownerID(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(interactions) == 0 {
		cmd.Println("No history yet.")
		return nil
	}

	for i := range interactions {
		entry := &interactions[i]
		cmd.Printf("[%s]\n", entry.CreatedAt.Local().Format("2006-01-02 15:04"))
		cmd.Printf("Q: %s\n", entry.Question)
		cmd.Printf("A: %s\n", entry.Answer)
		if len(entry.References) > 0 {
			cmd.Print("Sources:")
			for j := range entry.References {
				cmd.Printf(" %s", entry.References[j].Filename)
			}
			cmd.Println()
		}
		cmd.Println()
	}

	return nil
}
