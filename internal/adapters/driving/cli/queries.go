package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "Inspect answered questions",
}

var queriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List answered questions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := queryStore.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list queries: %w", err)
		}
		if len(records) == 0 {
			cmd.Println("No questions answered yet.")
			return nil
		}
		for _, rec := range records {
			cmd.Printf("%s  %-8s  %s\n",
				rec.CreatedAt.Format("2006-01-02 15:04"), rec.Decision, rec.QueryText)
			if rec.DocumentID != "" {
				cmd.Printf("%18sdocument %s\n", "", rec.DocumentID)
			}
		}
		return nil
	},
}

func init() {
	queriesCmd.AddCommand(queriesListCmd)
	rootCmd.AddCommand(queriesCmd)
}
