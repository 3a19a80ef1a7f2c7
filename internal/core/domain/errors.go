package domain

import "errors"

// Domain errors represent pipeline failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoTextExtracted indicates extraction produced empty or
	// whitespace-only text. Ingestion aborts before chunking.
	ErrNoTextExtracted = errors.New("no text extracted from document")

	// ErrNoChunks indicates chunking produced no passages.
	ErrNoChunks = errors.New("no chunks created from text")

	// ErrEmbeddingFailed indicates the embedding provider failed or
	// returned vectors of the wrong dimension.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrDimensionMismatch indicates an embedder and a vector index were
	// configured with different vector dimensions. This is a
	// configuration error, not a runtime-recoverable one.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrIndexUnavailable indicates the vector index backend failed or
	// returned a malformed response.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrDownloadFailed indicates a document could not be fetched from
	// its URL (non-2xx status, timeout, or transport error).
	ErrDownloadFailed = errors.New("document download failed")

	// ErrLLMUnavailable indicates the language model service is not
	// configured or unreachable.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrUnsupportedType indicates no extractor handles the file type.
	ErrUnsupportedType = errors.New("unsupported type")
)
