package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Inspect ingested documents",
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := docStore.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list documents: %w", err)
		}
		if len(docs) == 0 {
			cmd.Println("No documents ingested yet.")
			return nil
		}
		for _, doc := range docs {
			cmd.Printf("%s  %-9s  %-5s  %s\n",
				doc.ID, doc.Status, doc.FileType, doc.Filename)
		}
		return nil
	},
}

var documentsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a document's extracted text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := docStore.Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("get document: %w", err)
		}
		cmd.Printf("ID:       %s\n", doc.ID)
		cmd.Printf("Filename: %s\n", doc.Filename)
		cmd.Printf("Type:     %s\n", doc.FileType)
		cmd.Printf("Status:   %s\n", doc.Status)
		cmd.Printf("Created:  %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
		if doc.Content != "" {
			cmd.Println()
			cmd.Println(doc.Content)
		}
		return nil
	},
}

var documentsSummaryCmd = &cobra.Command{
	Use:   "summary <id>",
	Short: "Summarise a document's extracted text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := docStore.Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("get document: %w", err)
		}
		cmd.Println(answerer.Summarise(cmd.Context(), doc.Content, summaryMaxLength))
		return nil
	},
}

func init() {
	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsShowCmd)
	documentsCmd.AddCommand(documentsSummaryCmd)
	rootCmd.AddCommand(documentsCmd)
}
