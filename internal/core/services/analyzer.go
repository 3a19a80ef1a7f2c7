package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/clauseworks/verdict-cli/internal/core/domain"
	"github.com/clauseworks/verdict-cli/internal/core/ports/driven"
	"github.com/clauseworks/verdict-cli/internal/llmjson"
	"github.com/clauseworks/verdict-cli/internal/logger"
)

// analyzePrompt instructs the model to extract structured fields from a
// free-text question.
const analyzePrompt = `Extract the following fields from the user query and return as JSON:
- target_topic: The main topic or procedure mentioned
- age: Age if mentioned (null if not)
- gender: Gender if mentioned (null if not)
- policy_duration: Policy duration if mentioned (null if not)
- location: Location if mentioned (null if not)
- special_conditions: Any special conditions like waiting periods, exclusions (null if not)
- amount_requested: Any monetary amount mentioned (null if not)

Query: %q

Return ONLY valid JSON format without any markdown formatting or code blocks:`

// QueryAnalyzer extracts structured fields from a question, best-effort.
// Analysis failure never aborts the answer flow: the fallback carries
// the verbatim question as the topic and leaves every other field null.
type QueryAnalyzer struct {
	llm driven.LLMService
}

// NewQueryAnalyzer creates a query analyzer. llm may be nil, which
// forces the fallback for every question.
func NewQueryAnalyzer(llm driven.LLMService) *QueryAnalyzer {
	return &QueryAnalyzer{llm: llm}
}

// rawParsedQuery tolerates the model returning numbers where strings
// are expected (ages and amounts come back either way).
type rawParsedQuery struct {
	TargetTopic       json.RawMessage `json:"target_topic"`
	Age               json.RawMessage `json:"age"`
	Gender            json.RawMessage `json:"gender"`
	PolicyDuration    json.RawMessage `json:"policy_duration"`
	Location          json.RawMessage `json:"location"`
	SpecialConditions json.RawMessage `json:"special_conditions"`
	AmountRequested   json.RawMessage `json:"amount_requested"`
}

// Analyze invokes the model and parses its JSON response. It always
// returns a fully populated ParsedQuery.
func (a *QueryAnalyzer) Analyze(ctx context.Context, question string) domain.ParsedQuery {
	if a.llm == nil {
		return domain.DefaultParsedQuery(question)
	}

	prompt := fmt.Sprintf(analyzePrompt, question)
	response, err := a.llm.Generate(ctx, prompt, driven.GenerateOptions{Temperature: 0.1})
	if err != nil {
		logger.Warn("query analysis failed: %v", err)
		return domain.DefaultParsedQuery(question)
	}

	var raw rawParsedQuery
	if err := llmjson.Decode(response, &raw); err != nil {
		logger.Warn("query analysis returned unparseable JSON: %v", err)
		return domain.DefaultParsedQuery(question)
	}

	topic := rawToString(raw.TargetTopic)
	if topic == nil || *topic == "" {
		logger.Warn("query analysis response missing target_topic")
		return domain.DefaultParsedQuery(question)
	}

	return domain.ParsedQuery{
		TargetTopic:       *topic,
		Age:               rawToString(raw.Age),
		Gender:            rawToString(raw.Gender),
		PolicyDuration:    rawToString(raw.PolicyDuration),
		Location:          rawToString(raw.Location),
		SpecialConditions: rawToString(raw.SpecialConditions),
		AmountRequested:   rawToString(raw.AmountRequested),
	}
}

// rawToString converts a raw JSON value to a string pointer: strings
// are unquoted, numbers and booleans keep their literal form, null and
// absent values become nil.
func rawToString(raw json.RawMessage) *string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		lit := strconv.FormatFloat(n, 'f', -1, 64)
		return &lit
	}

	lit := string(raw)
	return &lit
}
