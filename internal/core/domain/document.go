package domain

import "time"

// DocumentStatus tracks the processing lifecycle of an ingested document.
// A document starts pending and moves exactly once to processed or failed;
// neither terminal state transitions again.
type DocumentStatus string

const (
	StatusPending   DocumentStatus = "pending"
	StatusProcessed DocumentStatus = "processed"
	StatusFailed    DocumentStatus = "failed"
)

// Document represents a source document submitted for ingestion.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Filename is the original file name (or the name inferred from a URL).
	Filename string

	// FileType is the declared or inferred type ("pdf", "docx", "txt", ...).
	FileType string

	// Content is the full extracted text.
	Content string

	// Status is the processing status.
	Status DocumentStatus

	// CreatedAt is when the document was first seen.
	CreatedAt time.Time
}

// Chunk is an ordered passage of a document's extracted text, the unit
// of retrieval. Chunks are immutable once created and identified by
// (DocumentID, Index).
type Chunk struct {
	// DocumentID links to the parent Document.
	DocumentID string

	// Index is the ordinal position within the document, contiguous from 0.
	Index int

	// Text is the passage content.
	Text string

	// VectorID is the identifier of the stored embedding for this chunk.
	VectorID string
}

// RetrievalResult is a read-only projection returned by similarity search.
// Results are ordered by descending score; higher means more relevant.
type RetrievalResult struct {
	// VectorID is the identifier of the matched vector.
	VectorID string

	// Score is the similarity between query and passage vectors.
	Score float64

	// Text is the matched passage content.
	Text string

	// DocumentID links back to the source document.
	DocumentID string

	// ChunkIndex is the passage's ordinal position within its document.
	ChunkIndex int
}
