package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/clauseworks/verdict-cli/internal/core/domain"
	"github.com/clauseworks/verdict-cli/internal/core/ports/driven"
	"github.com/clauseworks/verdict-cli/internal/logger"
)

var (
	askDocument string
	askTopK     int
	askJSON     bool
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question against the indexed documents",
	Long: `Retrieves the passages most relevant to the question and produces a
structured decision: approved or rejected, an optional amount, and the
justifying clauses. With --document the search is restricted to a single
ingested document.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askDocument, "document", "", "restrict retrieval to one document id")
	askCmd.Flags().IntVar(&askTopK, "top-k", 0, "number of passages to retrieve (0 selects the default)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the decision as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	question := args[0]
	if question == "" {
		return errors.New("question must not be empty")
	}

	topK := askTopK
	if topK <= 0 {
		topK = cfg.TopK
	}
	result, err := answerer.Answer(ctx, question, askDocument, topK)
	if err != nil {
		return fmt.Errorf("answer question: %w", err)
	}

	if err := recordQuery(cmd, question, result.Decision); err != nil {
		// Bookkeeping failure does not invalidate the answer.
		logger.Warn("Recording query failed: %v", err)
	}

	if askJSON {
		out, err := json.MarshalIndent(result.Decision, "", "  ")
		if err != nil {
			return fmt.Errorf("encode decision: %w", err)
		}
		cmd.Println(string(out))
		return nil
	}

	cmd.Printf("Decision: %s\n", result.Decision.Decision)
	if result.Decision.Amount != nil {
		cmd.Printf("Amount: %.2f\n", *result.Decision.Amount)
	}
	cmd.Printf("Passages retrieved: %d\n", result.RetrievedCount)
	cmd.Println()
	cmd.Println("Justification:")
	for _, entry := range result.Decision.Justification {
		cmd.Printf("  [%s] %s\n", entry.ClauseID, entry.Reason)
		if entry.Text != "" {
			cmd.Printf("      %s\n", entry.Text)
		}
	}
	return nil
}

// recordQuery stores the answered question for later review.
func recordQuery(cmd *cobra.Command, question string, decision domain.Decision) error {
	justification, err := json.Marshal(decision.Justification)
	if err != nil {
		return fmt.Errorf("encode justification: %w", err)
	}
	return queryStore.Save(cmd.Context(), driven.QueryRecord{
		ID:            uuid.New().String(),
		QueryText:     question,
		DocumentID:    askDocument,
		Decision:      string(decision.Decision),
		Amount:        decision.Amount,
		Justification: string(justification),
		CreatedAt:     time.Now(),
	})
}
