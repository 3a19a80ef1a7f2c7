package driven

import "context"

// Chunker splits extracted text into overlapping passages suitable for
// retrieval. Chunking is deterministic: the same text always yields the
// same sequence of passages.
type Chunker interface {
	// Chunk splits text into passages of at most the configured chunk
	// size, consecutive passages sharing the configured overlap of
	// context. Empty or whitespace-only text yields no passages.
	Chunk(ctx context.Context, text string) ([]string, error)
}
