// Package cli provides the cobra command-line interface for Verdict.
package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/clauseworks/verdict-cli/internal/adapters/driven/ai"
	configfile "github.com/clauseworks/verdict-cli/internal/adapters/driven/config/file"
	"github.com/clauseworks/verdict-cli/internal/adapters/driven/storage/sqlite"
	"github.com/clauseworks/verdict-cli/internal/chunkers/recursive"
	"github.com/clauseworks/verdict-cli/internal/core/ports/driven"
	"github.com/clauseworks/verdict-cli/internal/core/ports/driving"
	"github.com/clauseworks/verdict-cli/internal/core/services"
	"github.com/clauseworks/verdict-cli/internal/extractors"
	"github.com/clauseworks/verdict-cli/internal/extractors/docx"
	"github.com/clauseworks/verdict-cli/internal/extractors/pdf"
	"github.com/clauseworks/verdict-cli/internal/extractors/plaintext"
	"github.com/clauseworks/verdict-cli/internal/fetch"
	"github.com/clauseworks/verdict-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
	dataDir   string
)

// Services wired up in initServices and shared by the commands.
var (
	cfg        configfile.Config
	ingestor   driving.Ingestor
	answerer   driving.Answerer
	docStore   driven.DocumentStore
	queryStore driven.QueryStore
	downloader *fetch.Downloader

	store    *sqlite.Store
	embedder driven.EmbeddingService
	index    driven.VectorIndex
	llm      driven.LLMService

	// servicesReady short-circuits initServices when the services have
	// already been wired, as tests do with fakes.
	servicesReady bool
)

var rootCmd = &cobra.Command{
	Use:   "verdict",
	Short: "Retrieval-augmented document decisioning",
	Long: `Verdict ingests documents (PDF, DOCX, plain text), indexes their
passages for similarity search and answers questions against them with
a structured approve/reject decision grounded in the retrieved text.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if cmd.Name() == "version" || servicesReady {
			return nil
		}
		return initServices(cmd)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		closeServices()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.verdict)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.verdict/data)")
}

// initServices builds the pipeline from configuration.
func initServices(cmd *cobra.Command) error {
	// API keys may live in a .env file next to the working directory.
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, relying on environment variables")
	}

	var err error
	cfg, err = configfile.Load(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := cmd.Context()

	embedder, err = ai.CreateEmbeddingService(cfg.Embedding)
	if err != nil {
		return fmt.Errorf("create embedding service: %w", err)
	}
	logger.Info("Embedding: %s (%d dimensions)", embedder.ModelName(), embedder.Dimensions())

	index, err = ai.CreateVectorIndex(ctx, cfg.Vector, embedder.Dimensions())
	if err != nil {
		return fmt.Errorf("create vector index: %w", err)
	}

	llm, err = ai.CreateLLMService(ctx, cfg.LLM)
	if err != nil {
		return fmt.Errorf("create LLM service: %w", err)
	}

	store, err = sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	docStore = store.DocumentStore()
	queryStore = store.QueryStore()

	fallback := plaintext.New()
	registry := extractors.NewRegistry(fallback)
	registry.Register(pdf.New())
	registry.Register(docx.New())
	registry.Register(fallback)

	chunker := recursive.New(
		recursive.WithChunkSize(cfg.Chunking.ChunkSize),
		recursive.WithOverlap(cfg.Chunking.Overlap),
	)

	ingestor = services.NewIngestService(registry, chunker, embedder, index)
	answerer = services.NewAnswerService(
		embedder,
		index,
		services.NewQueryAnalyzer(llm),
		services.NewDecisionSynthesizer(llm),
		llm,
	)
	downloader = fetch.New(nil)
	servicesReady = true
	return nil
}

// closeServices releases everything initServices opened.
func closeServices() {
	if store != nil {
		store.Close()
	}
	if embedder != nil {
		embedder.Close()
	}
	if index != nil {
		index.Close()
	}
	if llm != nil {
		llm.Close()
	}
}
