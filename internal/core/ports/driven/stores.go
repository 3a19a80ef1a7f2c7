package driven

import (
	"context"
	"time"

	"github.com/clauseworks/verdict-cli/internal/core/domain"
)

// DocumentStore records document bookkeeping outside the pipeline.
// The pipeline itself never touches it; the driving layer records
// status after each ingest attempt.
type DocumentStore interface {
	// Save inserts a document record.
	Save(ctx context.Context, doc domain.Document) error

	// UpdateStatus moves a document to a terminal status and stores the
	// extracted content on success.
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, content string) error

	// SaveChunks records the chunk-to-vector-id mapping for a document.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// Get returns a document by id.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns all documents, newest first.
	List(ctx context.Context) ([]domain.Document, error)
}

// QueryRecord is one answered question with its decision.
type QueryRecord struct {
	ID            string
	QueryText     string
	DocumentID    string
	Decision      string
	Amount        *float64
	Justification string
	CreatedAt     time.Time
}

// QueryStore records answered questions for later review.
type QueryStore interface {
	// Save inserts a query record.
	Save(ctx context.Context, rec QueryRecord) error

	// List returns all query records, newest first.
	List(ctx context.Context) ([]QueryRecord, error)
}
