package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/recall-labs/recall-cli/internal/adapters/driving/watch"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and ingest files as they change",
	Long: `Watches a directory and automatically ingests files that are
created or modified in it. Files already present are ingested on
startup. Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 2*time.Second, "wait this long after the last write before ingesting")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	dir := args[0]
	watcher, err := watch.New(ingestService, watch.Config{
		Dir:      dir,
		OwnerID:  ownerID(),
		Debounce: watchDebounce,
		OnIngest: func(filename string, chunks int, err error) {
			if err != nil {
				cmd.PrintErrf("watch: %s: %v\n", filename, err)
				return
			}
			cmd.Printf("Ingested %s (%d chunks)\n", filename, chunks)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	defer watcher.Close()

	cmd.Printf("Watching %s (owner %s). Press Ctrl+C to stop.\n", dir, ownerID())
	return watcher.Run(cmd.Context())
}
