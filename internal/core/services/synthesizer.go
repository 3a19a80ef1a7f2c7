package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/clauseworks/verdict-cli/internal/core/domain"
	"github.com/clauseworks/verdict-cli/internal/core/ports/driven"
	"github.com/clauseworks/verdict-cli/internal/llmjson"
	"github.com/clauseworks/verdict-cli/internal/logger"
)

// fallbackPreviewLen bounds cited passage text in fallback decisions.
const fallbackPreviewLen = 200

// fallbackClauseCount is how many top passages a fallback cites.
const fallbackClauseCount = 2

// synthesizePrompt instructs the model to produce the decision schema
// from the question and its grounding passages.
const synthesizePrompt = `You are an intelligent document processing agent. Based on the user query and retrieved document clauses, analyze the content and provide relevant information.

User Query: %q

Retrieved Document Clauses:
%s

Instructions:
1. Analyze the retrieved clauses against the user query
2. Decide "Approved" or "Rejected" based on whether the clauses support the request
3. Extract any relevant amounts/numbers if mentioned
4. Provide clear justification referencing specific clauses

Respond ONLY in this exact JSON format (no markdown, no code blocks):
{
    "decision": "Approved",
    "amount": null,
    "justification": [
        {
            "clause_id": "clause_1",
            "text": "exact relevant text from the clauses",
            "reason": "explanation of relevance to the query"
        }
    ]
}

Important: Return only valid JSON without any formatting or code blocks.`

// DecisionSynthesizer produces a structured decision from a question
// and its retrieved passages. It never fails: when the model's output
// cannot be parsed or validated, a deterministic fallback decision is
// built from the top retrieved passages.
type DecisionSynthesizer struct {
	llm driven.LLMService
}

// NewDecisionSynthesizer creates a decision synthesizer. llm may be
// nil, which forces the fallback for every call.
func NewDecisionSynthesizer(llm driven.LLMService) *DecisionSynthesizer {
	return &DecisionSynthesizer{llm: llm}
}

// Synthesize builds the decision prompt, invokes the model and parses
// the response. The parsed object must carry decision, amount and
// justification; anything less degrades to the fallback.
func (s *DecisionSynthesizer) Synthesize(
	ctx context.Context,
	question string,
	_ domain.ParsedQuery,
	passages []domain.RetrievalResult,
) domain.Decision {
	if s.llm == nil {
		return s.fallback(question, passages)
	}

	prompt := fmt.Sprintf(synthesizePrompt, question, clausesText(passages))
	response, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{Temperature: 0.2})
	if err != nil {
		logger.Warn("decision synthesis failed: %v", err)
		return s.fallback(question, passages)
	}

	if _, err := llmjson.DecodeObject(response, "decision", "amount", "justification"); err != nil {
		logger.Warn("decision synthesis returned invalid schema: %v", err)
		return s.fallback(question, passages)
	}

	var decision domain.Decision
	if err := llmjson.Decode(response, &decision); err != nil {
		logger.Warn("decision synthesis returned unparseable JSON: %v", err)
		return s.fallback(question, passages)
	}
	if len(decision.Justification) == 0 {
		logger.Warn("decision synthesis returned empty justification")
		return s.fallback(question, passages)
	}
	return decision
}

// clausesText enumerates each passage with its similarity score.
func clausesText(passages []domain.RetrievalResult) string {
	var sb strings.Builder
	for i, p := range passages {
		fmt.Fprintf(&sb, "Clause %d (Score: %.3f):\n%s\n\n", i+1, p.Score, p.Text)
	}
	return sb.String()
}

// fallback builds a deterministic decision from the top retrieved
// passages. With grounding present the decision defaults to Approved;
// with none it is the no-results rejection.
func (s *DecisionSynthesizer) fallback(question string, passages []domain.RetrievalResult) domain.Decision {
	if len(passages) == 0 {
		return domain.NoResultsDecision()
	}

	n := len(passages)
	if n > fallbackClauseCount {
		n = fallbackClauseCount
	}
	justification := make([]domain.JustificationEntry, 0, n)
	for i, p := range passages[:n] {
		justification = append(justification, domain.JustificationEntry{
			ClauseID: fmt.Sprintf("clause_%d", i+1),
			Text:     truncate(p.Text, fallbackPreviewLen),
			Reason:   fmt.Sprintf("Retrieved relevant content for query: %s", question),
		})
	}

	return domain.Decision{
		Decision:      domain.DecisionApproved,
		Amount:        nil,
		Justification: justification,
	}
}

// truncate bounds s to max bytes without splitting a rune, marking the
// cut with an ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
