package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Upload documents into your corpus",
	Long: `Uploads one or more files so they can answer your questions.

Each file is split into chunks, embedded, and stored under your owner
ID. Supported formats include plain text, Markdown, HTML and PDF.
Re-uploading a file with the same name replaces the previous upload.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	owner := ownerID()
	for _, path := range args {
		doc, err := ingestService.IngestFile(cmd.Context(), owner, path)
		if err != nil {
			return fmt.Errorf("ingest %s: %w", path, err)
		}
		cmd.Printf("Ingested %s (%d chunks)\n", doc.Filename, doc.ChunkCount)
	}

	return nil
}
