// Package huggingface provides an embedding service adapter using the
// Hugging Face Inference API's feature-extraction pipeline.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/clauseworks/verdict-cli/internal/core/ports/driven"
)

// Ensure Service implements the interface.
var _ driven.EmbeddingService = (*Service)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api-inference.huggingface.co/pipeline/feature-extraction"
	DefaultModel   = "intfloat/e5-base-v2"
	DefaultTimeout = 60 * time.Second
)

// Model dimensions for common sentence embedding models.
var modelDimensions = map[string]int{
	"intfloat/e5-small-v2": 384,
	"intfloat/e5-base-v2":  768,
	"intfloat/e5-large-v2": 1024,
}

// Config holds configuration for the Hugging Face embedding service.
type Config struct {
	// APIKey is the Hugging Face API token (required).
	APIKey string

	// BaseURL is the feature-extraction pipeline base URL.
	BaseURL string

	// Model is the embedding model to use (default: intfloat/e5-base-v2).
	Model string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration

	// Dimensions overrides the default dimension for the model.
	Dimensions int
}

// Service generates embeddings using the Hugging Face Inference API.
// e5-family models embed queries and passages asymmetrically, so each
// input is prefixed with "query: " or "passage: " according to its role.
type Service struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	model      string
	dimensions int
}

// featureRequest is the Inference API request format.
type featureRequest struct {
	Inputs  []string       `json:"inputs"`
	Options map[string]any `json:"options,omitempty"`
}

// New creates a new Hugging Face embedding service.
func New(cfg Config) (*Service, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("huggingface: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	dimensions := cfg.Dimensions
	if dimensions == 0 {
		var ok bool
		dimensions, ok = modelDimensions[cfg.Model]
		if !ok {
			dimensions = 768
		}
	}

	return &Service{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		dimensions: dimensions,
	}, nil
}

// Embed generates a vector embedding for the given text.
func (s *Service) Embed(ctx context.Context, text string, role driven.EmbeddingRole) ([]float64, error) {
	embeddings, err := s.EmbedBatch(ctx, []string{text}, role)
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("huggingface: no embedding returned")
	}
	return embeddings[0], nil
}

// EmbedBatch generates embeddings for multiple texts efficiently.
func (s *Service) EmbedBatch(ctx context.Context, texts []string, role driven.EmbeddingRole) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	inputs := make([]string, len(texts))
	for i, t := range texts {
		inputs[i] = prefixFor(role) + t
	}

	reqBody := featureRequest{
		Inputs:  inputs,
		Options: map[string]any{"wait_for_model": true},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/"+s.model,
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("huggingface error (status %d): %s", resp.StatusCode, string(body))
	}

	var embeddings [][]float64
	if err := json.Unmarshal(body, &embeddings); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("huggingface: expected %d embeddings, got %d", len(texts), len(embeddings))
	}
	for _, vec := range embeddings {
		if len(vec) != s.dimensions {
			return nil, fmt.Errorf("huggingface: model returned %d dimensions, configured for %d", len(vec), s.dimensions)
		}
	}

	return embeddings, nil
}

// prefixFor maps an embedding role to the e5 input prefix.
func prefixFor(role driven.EmbeddingRole) string {
	if role == driven.RoleQuery {
		return "query: "
	}
	return "passage: "
}

// Dimensions returns the embedding vector size.
func (s *Service) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *Service) ModelName() string {
	return s.model
}

// Ping validates the service is reachable by embedding a short probe.
func (s *Service) Ping(ctx context.Context) error {
	_, err := s.Embed(ctx, "ping", driven.RoleQuery)
	if err != nil {
		return fmt.Errorf("huggingface: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *Service) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
