package driven

import "context"

// EmbeddingRole distinguishes passage embedding from query embedding.
// Some models embed the two sides asymmetrically (e.g. e5's "query: "
// and "passage: " prefixes); others ignore the role.
type EmbeddingRole string

const (
	RolePassage EmbeddingRole = "passage"
	RoleQuery   EmbeddingRole = "query"
)

// EmbeddingService generates fixed-dimension vector embeddings from text.
//
// Every implementation sharing one vector index must emit vectors of the
// identical declared dimension; a mismatch is a configuration error.
//
// Implementations include:
//   - hash (deterministic, content-hash derived, offline)
//   - charstat (deterministic, character statistics, offline)
//   - huggingface (model-backed via the Inference API)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string, role EmbeddingRole) ([]float64, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	EmbedBatch(ctx context.Context, texts []string, role EmbeddingRole) ([][]float64, error)

	// Dimensions returns the embedding vector size (e.g. 384, 768).
	Dimensions() int

	// ModelName returns the name of the embedding strategy or model.
	ModelName() string

	// Ping validates the service is usable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
