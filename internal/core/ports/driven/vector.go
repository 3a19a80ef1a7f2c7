package driven

import (
	"context"

	"github.com/clauseworks/verdict-cli/internal/core/domain"
)

// VectorRecord is one (vector, passage, provenance) tuple to store.
type VectorRecord struct {
	// VectorID is globally unique across concurrent ingests.
	VectorID string

	// Vector is the embedding; its length must match the index dimension.
	Vector []float64

	// Text is the passage content stored alongside the vector.
	Text string

	// DocumentID identifies the source document.
	DocumentID string

	// ChunkIndex is the passage's ordinal position within the document.
	ChunkIndex int
}

// QueryFilter restricts a similarity search.
type QueryFilter struct {
	// DocumentID, when non-empty, limits results to one document's chunks.
	DocumentID string
}

// VectorIndex persists embeddings and answers nearest-neighbour queries.
//
// Upsert is idempotent per VectorID: re-upserting an id replaces its
// vector and metadata. Query returns at most topK results sorted by
// descending similarity; an empty index or no match yields an empty
// slice, never an error. Backend failures surface as errors and abort
// the caller's ingest or answer.
type VectorIndex interface {
	// Upsert stores a batch of records. The whole batch becomes visible
	// to subsequent queries or none of it does.
	Upsert(ctx context.Context, records []VectorRecord) error

	// Query finds the topK nearest stored vectors, optionally filtered.
	// A nil filter searches all documents.
	Query(ctx context.Context, vector []float64, topK int, filter *QueryFilter) ([]domain.RetrievalResult, error)

	// Close releases resources.
	Close() error
}
