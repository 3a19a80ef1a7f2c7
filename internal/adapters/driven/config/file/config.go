// Package file provides TOML-backed configuration for the Verdict CLI.
// Configuration lives in ~/.verdict/config.toml; API keys come from the
// environment so they never end up in the config file.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Defaults.
const (
	DefaultChunkSize  = 1000
	DefaultOverlap    = 200
	DefaultDimensions = 384
	DefaultTopK       = 10
)

// Config holds the CLI's pipeline configuration.
type Config struct {
	// Embedding selects the embedding strategy: "hash", "charstat" or
	// "huggingface".
	Embedding EmbeddingConfig `toml:"embedding"`

	// Vector selects the vector index backend: "memory" or "qdrant".
	Vector VectorConfig `toml:"vector"`

	// LLM selects the language model provider: "gemini", "openai" or
	// "" for none (fallback decisions only).
	LLM LLMConfig `toml:"llm"`

	// Chunking controls passage splitting.
	Chunking ChunkingConfig `toml:"chunking"`

	// TopK is the default number of passages retrieved per question.
	TopK int `toml:"top_k"`
}

// EmbeddingConfig configures the embedding strategy.
type EmbeddingConfig struct {
	Strategy   string `toml:"strategy"`
	Model      string `toml:"model"`
	Dimensions int    `toml:"dimensions"`
}

// VectorConfig configures the vector index backend.
type VectorConfig struct {
	Backend    string `toml:"backend"`
	URL        string `toml:"url"`
	Collection string `toml:"collection"`
}

// LLMConfig configures the language model provider.
type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url"`
}

// ChunkingConfig configures passage splitting.
type ChunkingConfig struct {
	ChunkSize int `toml:"chunk_size"`
	Overlap   int `toml:"overlap"`
}

// DefaultConfig returns the fully offline default configuration.
func DefaultConfig() Config {
	return Config{
		Embedding: EmbeddingConfig{Strategy: "hash", Dimensions: DefaultDimensions},
		Vector:    VectorConfig{Backend: "memory"},
		LLM:       LLMConfig{Provider: ""},
		Chunking:  ChunkingConfig{ChunkSize: DefaultChunkSize, Overlap: DefaultOverlap},
		TopK:      DefaultTopK,
	}
}

// Load reads the config file, filling defaults for anything unset.
// A missing file yields the defaults, not an error. If configDir is
// empty, defaults to ~/.verdict.
func Load(configDir string) (Config, error) {
	cfg := DefaultConfig()

	path, err := configPath(configDir)
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(&cfg)
	return cfg, nil
}

// Save writes the config file with restrictive permissions.
func Save(configDir string, cfg Config) error {
	path, err := configPath(configDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// configPath resolves the config file location.
func configPath(configDir string) (string, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".verdict")
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// applyDefaults fills zero values left by a partial config file.
func applyDefaults(cfg *Config) {
	if cfg.Embedding.Strategy == "" {
		cfg.Embedding.Strategy = "hash"
	}
	if cfg.Embedding.Dimensions <= 0 {
		cfg.Embedding.Dimensions = DefaultDimensions
	}
	if cfg.Vector.Backend == "" {
		cfg.Vector.Backend = "memory"
	}
	if cfg.Chunking.ChunkSize <= 0 {
		cfg.Chunking.ChunkSize = DefaultChunkSize
	}
	if cfg.Chunking.Overlap < 0 {
		cfg.Chunking.Overlap = DefaultOverlap
	}
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
}
