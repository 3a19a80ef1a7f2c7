package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/clauseworks/verdict-cli/internal/core/ports/driven"
	"github.com/clauseworks/verdict-cli/internal/core/ports/driving"
	"github.com/clauseworks/verdict-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// IngestService runs the ingest flow: extract, guard, chunk, guard,
// embed, upsert. Guard failures produce a structured failure result,
// never a panic or a raw error; recording document status is the
// caller's responsibility.
type IngestService struct {
	extractors driven.ExtractorRegistry
	chunker    driven.Chunker
	embedder   driven.EmbeddingService
	index      driven.VectorIndex
}

// NewIngestService creates an ingest service with explicit dependencies.
func NewIngestService(
	extractors driven.ExtractorRegistry,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
) *IngestService {
	return &IngestService{
		extractors: extractors,
		chunker:    chunker,
		embedder:   embedder,
		index:      index,
	}
}

// Ingest processes raw document bytes end to end. The vector index is
// only touched once extraction and chunking both produced output.
func (s *IngestService) Ingest(ctx context.Context, documentID string, data []byte, fileType string) driving.IngestResult {
	logger.Section("Document Ingest")
	logger.Debug("Document %s: %d bytes, type %q", documentID, len(data), fileType)

	text := s.extractors.ExtractText(ctx, data, fileType)
	if strings.TrimSpace(text) == "" {
		logger.Info("Document %s produced no text", documentID)
		return driving.IngestResult{
			Success:    false,
			Error:      "no text extracted from document",
			DocumentID: documentID,
		}
	}
	logger.Debug("Extracted %d characters", len(text))

	chunks, err := s.chunker.Chunk(ctx, text)
	if err != nil || len(chunks) == 0 {
		logger.Info("Document %s produced no chunks", documentID)
		return driving.IngestResult{
			Success:    false,
			Error:      "no chunks created from text",
			DocumentID: documentID,
		}
	}
	logger.Debug("Split into %d chunks", len(chunks))

	vectors, err := s.embedder.EmbedBatch(ctx, chunks, driven.RolePassage)
	if err != nil {
		logger.Warn("Embedding failed for document %s: %v", documentID, err)
		return driving.IngestResult{
			Success:    false,
			Error:      fmt.Sprintf("embedding failed: %v", err),
			DocumentID: documentID,
		}
	}

	records := make([]driven.VectorRecord, len(chunks))
	vectorIDs := make([]string, len(chunks))
	for i, chunk := range chunks {
		// Unique across concurrent ingests: id, position and a random suffix.
		vectorID := fmt.Sprintf("doc_%s_chunk_%d_%s", documentID, i, uuid.New().String()[:8])
		vectorIDs[i] = vectorID
		records[i] = driven.VectorRecord{
			VectorID:   vectorID,
			Vector:     vectors[i],
			Text:       chunk,
			DocumentID: documentID,
			ChunkIndex: i,
		}
	}

	if err := s.index.Upsert(ctx, records); err != nil {
		logger.Warn("Index upsert failed for document %s: %v", documentID, err)
		return driving.IngestResult{
			Success:    false,
			Error:      fmt.Sprintf("vector index upsert failed: %v", err),
			DocumentID: documentID,
		}
	}

	logger.Info("Document %s indexed: %d chunks", documentID, len(chunks))
	return driving.IngestResult{
		Success:    true,
		DocumentID: documentID,
		Text:       text,
		ChunkCount: len(chunks),
		VectorIDs:  vectorIDs,
	}
}
