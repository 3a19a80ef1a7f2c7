package services

import (
	"context"
	"fmt"

	"github.com/clauseworks/verdict-cli/internal/core/domain"
	"github.com/clauseworks/verdict-cli/internal/core/ports/driven"
	"github.com/clauseworks/verdict-cli/internal/core/ports/driving"
	"github.com/clauseworks/verdict-cli/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.Answerer = (*AnswerService)(nil)

// DefaultTopK is the default number of passages retrieved per question.
const DefaultTopK = 10

// unavailableSummary is returned when no summary can be produced.
const unavailableSummary = "Unable to generate summary due to system error."

// AnswerService runs the answer flow: embed the question, retrieve
// passages, analyse the question and synthesize a decision. Embedding
// and retrieval failures surface as errors; analysis and synthesis
// degrade internally and never abort the call.
type AnswerService struct {
	embedder    driven.EmbeddingService
	index       driven.VectorIndex
	analyzer    *QueryAnalyzer
	synthesizer *DecisionSynthesizer
	llm         driven.LLMService
}

// NewAnswerService creates an answer service with explicit dependencies.
func NewAnswerService(
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	analyzer *QueryAnalyzer,
	synthesizer *DecisionSynthesizer,
	llm driven.LLMService,
) *AnswerService {
	return &AnswerService{
		embedder:    embedder,
		index:       index,
		analyzer:    analyzer,
		synthesizer: synthesizer,
		llm:         llm,
	}
}

// Answer retrieves passages for the question and synthesizes a
// decision. With zero retrieved passages the defined no-results
// decision is returned and the language model is never consulted.
func (s *AnswerService) Answer(ctx context.Context, question, documentID string, topK int) (driving.AnswerResult, error) {
	logger.Section("Answer Request")
	logger.Debug("Question: %q, document filter: %q", question, documentID)

	if topK <= 0 {
		topK = DefaultTopK
	}

	queryVector, err := s.embedder.Embed(ctx, question, driven.RoleQuery)
	if err != nil {
		return driving.AnswerResult{}, fmt.Errorf("embed question: %w", err)
	}

	var filter *driven.QueryFilter
	if documentID != "" {
		filter = &driven.QueryFilter{DocumentID: documentID}
	}

	passages, err := s.index.Query(ctx, queryVector, topK, filter)
	if err != nil {
		return driving.AnswerResult{}, fmt.Errorf("query vector index: %w", err)
	}
	logger.Debug("Retrieved %d passages", len(passages))

	if len(passages) == 0 {
		logger.Info("No passages matched, returning no-results decision")
		return driving.AnswerResult{
			Status:         driving.AnswerNoResults,
			Decision:       domain.NoResultsDecision(),
			ParsedQuery:    domain.DefaultParsedQuery(question),
			RetrievedCount: 0,
		}, nil
	}

	parsed := s.analyzer.Analyze(ctx, question)
	decision := s.synthesizer.Synthesize(ctx, question, parsed, passages)

	return driving.AnswerResult{
		Status:         driving.AnswerSuccess,
		Decision:       decision,
		ParsedQuery:    parsed,
		RetrievedCount: len(passages),
	}, nil
}

// Summarise produces a bounded summary of document content, falling
// back to a fixed message when the model is unavailable or fails.
func (s *AnswerService) Summarise(ctx context.Context, content string, maxLength int) string {
	if s.llm == nil {
		return unavailableSummary
	}
	summary, err := s.llm.Summarise(ctx, content, maxLength)
	if err != nil {
		logger.Warn("summary generation failed: %v", err)
		return unavailableSummary
	}
	return summary
}
