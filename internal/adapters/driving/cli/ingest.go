package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/clauseworks/verdict-cli/internal/core/domain"
	"github.com/clauseworks/verdict-cli/internal/fetch"
)

// summaryMaxLength bounds the optional post-ingest summary.
const summaryMaxLength = 500

var (
	ingestURL     string
	ingestSummary bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a document for retrieval",
	Long: `Extracts text from a document, splits it into passages, embeds them
and stores the vectors for similarity search. The document comes from a
local file or, with --url, is downloaded first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestURL, "url", "", "download the document from a URL")
	ingestCmd.Flags().BoolVar(&ingestSummary, "summary", false, "print a model-generated summary after ingest")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var (
		data     []byte
		filename string
		err      error
	)
	switch {
	case ingestURL != "" && len(args) > 0:
		return errors.New("pass a file or --url, not both")
	case ingestURL != "":
		data, filename, err = downloader.Download(ctx, ingestURL)
		if err != nil {
			return fmt.Errorf("download document: %w", err)
		}
	case len(args) == 1:
		data, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		filename = filepath.Base(args[0])
	default:
		return errors.New("a file path or --url is required")
	}

	doc := domain.Document{
		ID:        uuid.New().String(),
		Filename:  filename,
		FileType:  fetch.FileType(filename),
		Status:    domain.StatusPending,
		CreatedAt: time.Now(),
	}
	if err := docStore.Save(ctx, doc); err != nil {
		return fmt.Errorf("record document: %w", err)
	}

	result := ingestor.Ingest(ctx, doc.ID, data, doc.FileType)
	if !result.Success {
		if err := docStore.UpdateStatus(ctx, doc.ID, domain.StatusFailed, ""); err != nil {
			return fmt.Errorf("record failure: %w", err)
		}
		return fmt.Errorf("ingest failed: %s", result.Error)
	}

	if err := docStore.UpdateStatus(ctx, doc.ID, domain.StatusProcessed, result.Text); err != nil {
		return fmt.Errorf("record success: %w", err)
	}
	chunks := make([]domain.Chunk, len(result.VectorIDs))
	for i, vectorID := range result.VectorIDs {
		chunks[i] = domain.Chunk{DocumentID: doc.ID, Index: i, VectorID: vectorID}
	}
	if err := docStore.SaveChunks(ctx, chunks); err != nil {
		return fmt.Errorf("record chunks: %w", err)
	}

	cmd.Printf("Ingested %s\n", filename)
	cmd.Printf("  Document ID: %s\n", doc.ID)
	cmd.Printf("  Chunks indexed: %d\n", result.ChunkCount)

	if ingestSummary {
		cmd.Println()
		cmd.Println(answerer.Summarise(ctx, result.Text, summaryMaxLength))
	}
	return nil
}
