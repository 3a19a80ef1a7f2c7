// Package gemini provides an LLM service adapter using the Google
// Gemini API via the google.golang.org/genai SDK.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/clauseworks/verdict-cli/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultModel is the default Gemini model.
const DefaultModel = "gemini-2.5-flash"

// summaryInputLimit bounds the content sent in a summary prompt.
const summaryInputLimit = 3000

// Config holds configuration for the Gemini LLM service.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// Model is the model to use (default: gemini-2.5-flash).
	Model string
}

// LLMService provides LLM operations using the Gemini API.
type LLMService struct {
	client *genai.Client
	model  string
}

// New creates a new Gemini LLM service.
func New(ctx context.Context, cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &LLMService{
		client: client,
		model:  cfg.Model,
	}, nil
}

// Generate produces text completion from a prompt.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	config := &genai.GenerateContentConfig{}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}
	if opts.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(opts.Temperature))
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return text, nil
}

// summarisePrompt is the document summary prompt.
const summarisePrompt = `Provide a concise summary of the following document in no more than %d characters:

Document:
%s

Summary:`

// Summarise creates a summary of document content.
func (s *LLMService) Summarise(ctx context.Context, content string, maxLength int) (string, error) {
	if len(content) > summaryInputLimit {
		content = content[:summaryInputLimit]
	}
	prompt := fmt.Sprintf(summarisePrompt, maxLength, content)

	result, err := s.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   maxLength / 4, // Rough estimate: 4 chars per token
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("summarise: %w", err)
	}
	return strings.TrimSpace(result), nil
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping validates the service is reachable with a minimal generation.
func (s *LLMService) Ping(ctx context.Context) error {
	_, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text("ping"), &genai.GenerateContentConfig{
		MaxOutputTokens: 1,
	})
	if err != nil {
		return fmt.Errorf("gemini: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	// The genai client holds no resources needing explicit cleanup.
	return nil
}
