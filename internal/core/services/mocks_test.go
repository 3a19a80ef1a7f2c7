package services

import (
	"context"
	"fmt"

	"github.com/clauseworks/verdict-cli/internal/core/domain"
	"github.com/clauseworks/verdict-cli/internal/core/ports/driven"
)

// mockExtractors returns a fixed text for every document.
type mockExtractors struct {
	text string
}

func (m *mockExtractors) ExtractText(_ context.Context, _ []byte, _ string) string {
	return m.text
}

// mockChunker returns fixed chunks, or an error.
type mockChunker struct {
	chunks []string
	err    error
}

func (m *mockChunker) Chunk(_ context.Context, _ string) ([]string, error) {
	return m.chunks, m.err
}

// mockEmbedder returns unit vectors of the configured dimension and
// counts calls.
type mockEmbedder struct {
	dimension  int
	err        error
	embedCalls int
	batchCalls int
}

func (m *mockEmbedder) vector() []float64 {
	v := make([]float64, m.dimension)
	v[0] = 1
	return v
}

func (m *mockEmbedder) Embed(_ context.Context, _ string, _ driven.EmbeddingRole) ([]float64, error) {
	m.embedCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.vector(), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string, _ driven.EmbeddingRole) ([][]float64, error) {
	m.batchCalls++
	if m.err != nil {
		return nil, m.err
	}
	vectors := make([][]float64, len(texts))
	for i := range texts {
		vectors[i] = m.vector()
	}
	return vectors, nil
}

func (m *mockEmbedder) Dimensions() int              { return m.dimension }
func (m *mockEmbedder) ModelName() string            { return "mock" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// mockIndex records upserts and serves canned query results.
type mockIndex struct {
	upserted    []driven.VectorRecord
	upsertErr   error
	results     []domain.RetrievalResult
	queryErr    error
	queryCalls  int
	upsertCalls int
	lastFilter  *driven.QueryFilter
	lastTopK    int
}

func (m *mockIndex) Upsert(_ context.Context, records []driven.VectorRecord) error {
	m.upsertCalls++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, records...)
	return nil
}

func (m *mockIndex) Query(_ context.Context, _ []float64, topK int, filter *driven.QueryFilter) ([]domain.RetrievalResult, error) {
	m.queryCalls++
	m.lastTopK = topK
	m.lastFilter = filter
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return m.results, nil
}

func (m *mockIndex) Close() error { return nil }

// mockLLM serves a canned response and records the prompts it saw.
type mockLLM struct {
	response      string
	generateErr   error
	summary       string
	summariseErr  error
	prompts       []string
	generateCalls int
}

func (m *mockLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.generateCalls++
	m.prompts = append(m.prompts, prompt)
	if m.generateErr != nil {
		return "", m.generateErr
	}
	return m.response, nil
}

func (m *mockLLM) Summarise(_ context.Context, _ string, _ int) (string, error) {
	if m.summariseErr != nil {
		return "", m.summariseErr
	}
	return m.summary, nil
}

func (m *mockLLM) ModelName() string            { return "mock" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// passage builds a retrieval result for tests.
func passage(i int, text string, score float64) domain.RetrievalResult {
	return domain.RetrievalResult{
		VectorID:   fmt.Sprintf("doc_test_chunk_%d_abcd1234", i),
		Score:      score,
		Text:       text,
		DocumentID: "test",
		ChunkIndex: i,
	}
}
