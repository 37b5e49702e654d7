// Package cli implements the command-line interface.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
	"github.com/recall-labs/recall-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services the commands delegate to. Wired by the composition root
// through SetServices before Execute.
var (
	askService      driving.AskService
	ingestService   driving.IngestService
	documentService driving.DocumentService
	historyService  driving.HistoryService
	settingsService driving.SettingsService
)

var (
	verboseFlag bool
	ownerFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Ask questions about your own documents",
	Long: `Recall answers questions using only the documents you have uploaded.

Upload files with 'recall ingest', then ask questions with 'recall ask'.
Answers cite the document chunks they were grounded on, and every
question is scoped to a single owner: one owner can never see
another owner's documents.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&ownerFlag, "owner", "o", "", "owner ID to scope the operation to (default $RECALL_OWNER or \"default\")")
}

// Services bundles everything the CLI commands need.
type Services struct {
	Ask      driving.AskService
	Ingest   driving.IngestService
	Document driving.DocumentService
	History  driving.HistoryService
	Settings driving.SettingsService
}

// SetServices wires the core services into the commands.
func SetServices(s Services) {
	askService = s.Ask
	ingestService = s.Ingest
	documentService = s.Document
	historyService = s.History
	settingsService = s.Settings
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ownerID resolves the owner for the current invocation: the --owner
// flag wins, then $RECALL_OWNER, then "default".
func ownerID() string {
	if ownerFlag != "" {
		return ownerFlag
	}
	if env := os.Getenv("RECALL_OWNER"); env != "" {
		return env
	}
	return "default"
}
