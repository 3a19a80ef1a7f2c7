package driving

import (
	"context"

	"github.com/clauseworks/verdict-cli/internal/core/domain"
)

// IngestResult reports the outcome of one ingest attempt. Failures are
// structured, never panics: Success false plus a reason.
type IngestResult struct {
	// Success reports whether the document was fully indexed.
	Success bool

	// Error is the failure reason when Success is false.
	Error string

	// DocumentID identifies the ingested document.
	DocumentID string

	// Text is the full extracted text (empty on failure).
	Text string

	// ChunkCount is the number of passages indexed.
	ChunkCount int

	// VectorIDs are the stored vector identifiers, in chunk order.
	VectorIDs []string
}

// Ingestor turns a document into indexed passages.
type Ingestor interface {
	// Ingest extracts, chunks, embeds and indexes raw document bytes.
	// fileType is the declared or inferred type token ("pdf", "docx", ...).
	Ingest(ctx context.Context, documentID string, data []byte, fileType string) IngestResult
}

// AnswerStatus reports how an answer was produced.
type AnswerStatus string

const (
	// AnswerSuccess means at least one passage grounded the decision.
	AnswerSuccess AnswerStatus = "success"

	// AnswerNoResults means retrieval found nothing; the decision is the
	// defined no-results rejection and the model was not consulted.
	AnswerNoResults AnswerStatus = "no_results"
)

// AnswerResult is the outcome of one answer request. The Decision is
// always schema-valid, even when synthesis degraded to a fallback.
type AnswerResult struct {
	Status         AnswerStatus
	Decision       domain.Decision
	ParsedQuery    domain.ParsedQuery
	RetrievedCount int
}

// Answerer answers natural-language questions against indexed documents.
type Answerer interface {
	// Answer retrieves passages relevant to the question and synthesizes
	// a structured decision. documentID, when non-empty, restricts
	// retrieval to one document. topK <= 0 selects the default.
	Answer(ctx context.Context, question, documentID string, topK int) (AnswerResult, error)

	// Summarise produces a bounded-length summary of a document's text.
	Summarise(ctx context.Context, content string, maxLength int) string
}
