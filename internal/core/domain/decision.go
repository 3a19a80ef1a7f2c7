package domain

// ParsedQuery holds the structured fields extracted from a free-text
// question. Every field is always present; nil means the question did
// not mention it. TargetTopic falls back to the verbatim question when
// extraction fails.
type ParsedQuery struct {
	TargetTopic       string  `json:"target_topic"`
	Age               *string `json:"age"`
	Gender            *string `json:"gender"`
	PolicyDuration    *string `json:"policy_duration"`
	Location          *string `json:"location"`
	SpecialConditions *string `json:"special_conditions"`
	AmountRequested   *string `json:"amount_requested"`
}

// DefaultParsedQuery returns the fallback ParsedQuery for a question the
// model could not analyse: the topic is the question itself, everything
// else is unknown.
func DefaultParsedQuery(question string) ParsedQuery {
	return ParsedQuery{TargetTopic: question}
}

// DecisionOutcome is the overall determination of a synthesized decision.
type DecisionOutcome string

const (
	DecisionApproved DecisionOutcome = "Approved"
	DecisionRejected DecisionOutcome = "Rejected"
)

// JustificationEntry ties a decision back to a grounding passage.
type JustificationEntry struct {
	// ClauseID identifies the cited passage ("clause_1", "clause_2", ...)
	// or a synthetic source such as "none" or "system_fallback".
	ClauseID string `json:"clause_id"`

	// Text is the cited passage content, possibly truncated.
	Text string `json:"text"`

	// Reason explains the passage's relevance to the question.
	Reason string `json:"reason"`
}

// Decision is the structured outcome of an answer request.
// Justification is never empty: when no grounding passages were
// retrieved it holds one synthetic entry saying so.
type Decision struct {
	Decision      DecisionOutcome      `json:"decision"`
	Amount        *float64             `json:"amount"`
	Justification []JustificationEntry `json:"justification"`
}

// NoResultsDecision is the defined outcome for a question that matched
// no indexed passages. The language model is never consulted for it.
func NoResultsDecision() Decision {
	return Decision{
		Decision: DecisionRejected,
		Amount:   nil,
		Justification: []JustificationEntry{
			{
				ClauseID: "none",
				Text:     "No relevant document clauses found",
				Reason:   "Insufficient information to make a decision",
			},
		},
	}
}
