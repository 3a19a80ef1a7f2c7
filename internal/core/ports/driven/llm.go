package driven

import "context"

// LLMService provides language model text generation for query analysis
// and decision synthesis.
//
// Implementations may include:
//   - Gemini (google.golang.org/genai)
//   - OpenAI-compatible APIs (OpenAI, Azure, local inference servers)
type LLMService interface {
	// Generate produces a text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Summarise creates a summary of document content bounded to
	// roughly maxLength characters.
	Summarise(ctx context.Context, content string, maxLength int) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}
