package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Manage your uploaded documents",
	Long:  `List or delete the documents in your corpus.`,
	RunE:  runDocumentsList,
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your uploaded documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsList,
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete [filename]",
	Short: "Delete a document and its chunks",
	Long: `Removes a document from your corpus. Its chunks stop appearing in
answers immediately. Past answers keep the references they already cite.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentsDelete,
}

func init() {
	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	owner := ownerID()
	filenames, err := documentService.ListFilenames(cmd.Context(), owner)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(filenames) == 0 {
		cmd.Println("No documents uploaded yet. Use 'recall ingest' to add some.")
		return nil
	}

	cmd.Printf("Documents for owner %s:\n\n", owner)
	for _, name := range filenames {
		cmd.Printf("  %s\n", name)
	}
	cmd.Printf("\nTotal: %d documents\n", len(filenames))
	return nil
}

func runDocumentsDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	filename := args[0]
	if err := documentService.DeleteDocument(cmd.Context(), ownerID(), filename); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no document named %s", filename)
		}
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Deleted %s\n", filename)
	return nil
}
