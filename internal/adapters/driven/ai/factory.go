// Package ai provides factory functions for creating the pipeline's
// embedding, vector index and LLM adapters from configuration.
package ai

import (
	"context"
	"fmt"
	"os"

	"github.com/clauseworks/verdict-cli/internal/adapters/driven/config/file"
	"github.com/clauseworks/verdict-cli/internal/adapters/driven/embedding/charstat"
	"github.com/clauseworks/verdict-cli/internal/adapters/driven/embedding/hash"
	"github.com/clauseworks/verdict-cli/internal/adapters/driven/embedding/huggingface"
	geminillm "github.com/clauseworks/verdict-cli/internal/adapters/driven/llm/gemini"
	openaillm "github.com/clauseworks/verdict-cli/internal/adapters/driven/llm/openai"
	vectormemory "github.com/clauseworks/verdict-cli/internal/adapters/driven/vector/memory"
	"github.com/clauseworks/verdict-cli/internal/adapters/driven/vector/qdrant"
	"github.com/clauseworks/verdict-cli/internal/core/domain"
	"github.com/clauseworks/verdict-cli/internal/core/ports/driven"
	"github.com/clauseworks/verdict-cli/internal/logger"
)

// CreateEmbeddingService builds the configured embedding strategy.
func CreateEmbeddingService(cfg file.EmbeddingConfig) (driven.EmbeddingService, error) {
	switch cfg.Strategy {
	case "", "hash":
		return hash.New(cfg.Dimensions), nil
	case "charstat":
		return charstat.New(cfg.Dimensions), nil
	case "huggingface":
		return huggingface.New(huggingface.Config{
			APIKey:     os.Getenv("HUGGINGFACE_API_KEY"),
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		})
	default:
		return nil, fmt.Errorf("%w: embedding strategy %q", domain.ErrUnsupportedType, cfg.Strategy)
	}
}

// CreateVectorIndex builds the configured vector index backend, sized
// to the embedding service's dimension.
func CreateVectorIndex(ctx context.Context, cfg file.VectorConfig, dimensions int) (driven.VectorIndex, error) {
	switch cfg.Backend {
	case "", "memory":
		return vectormemory.New(dimensions)
	case "qdrant":
		return qdrant.New(ctx, qdrant.Config{
			BaseURL:    cfg.URL,
			APIKey:     os.Getenv("QDRANT_API_KEY"),
			Collection: cfg.Collection,
		}, dimensions)
	default:
		return nil, fmt.Errorf("%w: vector backend %q", domain.ErrUnsupportedType, cfg.Backend)
	}
}

// CreateLLMService builds the configured LLM provider. An empty
// provider returns nil: the pipeline then runs on fallback decisions
// only.
func CreateLLMService(ctx context.Context, cfg file.LLMConfig) (driven.LLMService, error) {
	switch cfg.Provider {
	case "":
		logger.Info("No LLM provider configured, decisions use fallbacks only")
		return nil, nil
	case "gemini":
		return geminillm.New(ctx, geminillm.Config{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  cfg.Model,
		})
	case "openai":
		return openaillm.New(openaillm.Config{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	default:
		return nil, fmt.Errorf("%w: LLM provider %q", domain.ErrUnsupportedType, cfg.Provider)
	}
}
