package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clauseworks/verdict-cli/internal/core/domain"
	"github.com/clauseworks/verdict-cli/internal/core/ports/driving"
)

func newAnswerService(embedder *mockEmbedder, index *mockIndex, llm *mockLLM) *AnswerService {
	// A nil *mockLLM must become a nil interface, not a typed nil.
	if llm == nil {
		return NewAnswerService(embedder, index, NewQueryAnalyzer(nil), NewDecisionSynthesizer(nil), nil)
	}
	return NewAnswerService(embedder, index, NewQueryAnalyzer(llm), NewDecisionSynthesizer(llm), llm)
}

func TestAnswerNoResultsSkipsModel(t *testing.T) {
	llm := &mockLLM{response: "should never be called"}
	index := &mockIndex{results: nil}
	svc := newAnswerService(&mockEmbedder{dimension: 4}, index, llm)

	result, err := svc.Answer(context.Background(), "is anything covered?", "", 0)
	require.NoError(t, err)

	assert.Equal(t, driving.AnswerNoResults, result.Status)
	assert.Equal(t, domain.NoResultsDecision(), result.Decision)
	assert.Equal(t, "is anything covered?", result.ParsedQuery.TargetTopic)
	assert.Zero(t, result.RetrievedCount)

	// With nothing retrieved the model must not be consulted at all.
	assert.Zero(t, llm.generateCalls)
}

func TestAnswerSuccess(t *testing.T) {
	llm := &mockLLM{response: `{
		"decision": "Approved",
		"amount": null,
		"justification": [{"clause_id": "clause_1", "text": "covered", "reason": "matches"}]
	}`}
	index := &mockIndex{results: []domain.RetrievalResult{
		passage(0, "covered", 0.9),
		passage(1, "also relevant", 0.8),
	}}
	svc := newAnswerService(&mockEmbedder{dimension: 4}, index, llm)

	result, err := svc.Answer(context.Background(), "is it covered?", "", 0)
	require.NoError(t, err)

	assert.Equal(t, driving.AnswerSuccess, result.Status)
	assert.Equal(t, domain.DecisionApproved, result.Decision.Decision)
	assert.Equal(t, 2, result.RetrievedCount)

	// One analysis call plus one synthesis call.
	assert.Equal(t, 2, llm.generateCalls)
	// Default retrieval depth applies when topK is not set.
	assert.Equal(t, DefaultTopK, index.lastTopK)
	assert.Nil(t, index.lastFilter)
}

func TestAnswerDocumentFilter(t *testing.T) {
	index := &mockIndex{results: []domain.RetrievalResult{passage(0, "clause", 0.9)}}
	svc := newAnswerService(&mockEmbedder{dimension: 4}, index, nil)

	_, err := svc.Answer(context.Background(), "q", "doc-42", 5)
	require.NoError(t, err)

	require.NotNil(t, index.lastFilter)
	assert.Equal(t, "doc-42", index.lastFilter.DocumentID)
	assert.Equal(t, 5, index.lastTopK)
}

func TestAnswerEmbedFailure(t *testing.T) {
	svc := newAnswerService(&mockEmbedder{dimension: 4, err: errors.New("offline")}, &mockIndex{}, nil)

	_, err := svc.Answer(context.Background(), "q", "", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embed question")
}

func TestAnswerQueryFailure(t *testing.T) {
	index := &mockIndex{queryErr: errors.New("index offline")}
	svc := newAnswerService(&mockEmbedder{dimension: 4}, index, nil)

	_, err := svc.Answer(context.Background(), "q", "", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query vector index")
}

func TestAnswerModelFailureDegradesToFallback(t *testing.T) {
	llm := &mockLLM{generateErr: errors.New("rate limited")}
	index := &mockIndex{results: []domain.RetrievalResult{passage(0, "a covered clause", 0.9)}}
	svc := newAnswerService(&mockEmbedder{dimension: 4}, index, llm)

	result, err := svc.Answer(context.Background(), "is it covered?", "", 0)
	require.NoError(t, err)

	// Analysis and synthesis both degrade; the answer still succeeds.
	assert.Equal(t, driving.AnswerSuccess, result.Status)
	assert.Equal(t, domain.DecisionApproved, result.Decision.Decision)
	assert.Equal(t, "is it covered?", result.ParsedQuery.TargetTopic)
	require.Len(t, result.Decision.Justification, 1)
	assert.Equal(t, "a covered clause", result.Decision.Justification[0].Text)
}

func TestSummarise(t *testing.T) {
	llm := &mockLLM{summary: "A policy covering surgery."}
	svc := newAnswerService(&mockEmbedder{dimension: 4}, &mockIndex{}, llm)

	assert.Equal(t, "A policy covering surgery.", svc.Summarise(context.Background(), "content", 500))
}

func TestSummariseUnavailable(t *testing.T) {
	tests := []struct {
		name string
		llm  *mockLLM
	}{
		{name: "no model", llm: nil},
		{name: "model error", llm: &mockLLM{summariseErr: errors.New("down")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAnswerService(&mockEmbedder{dimension: 4}, &mockIndex{}, tt.llm)
			got := svc.Summarise(context.Background(), "content", 500)
			assert.Equal(t, "Unable to generate summary due to system error.", got)
		})
	}
}
