// Package llmjson parses JSON out of language model responses.
// Models frequently wrap their output in markdown code fences despite
// instructions not to; every call site shares the same strip-then-parse
// behaviour instead of re-implementing it.
package llmjson

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Strip removes a surrounding markdown code fence, with or without a
// language tag, and trims whitespace. Text without a fence is returned
// trimmed and otherwise untouched.
func Strip(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// Drop a language tag such as "json" on the opening fence.
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		firstLine := strings.TrimSpace(s[:idx])
		if firstLine != "" && !strings.ContainsAny(firstLine, "{}[]") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// Decode strips code fences from the response and unmarshals it into v.
func Decode(response string, v any) error {
	cleaned := Strip(response)
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("decode model response: %w", err)
	}
	return nil
}

// DecodeObject strips code fences, unmarshals the response into a
// generic object and verifies every required key is present. A missing
// key is a parse failure, same as malformed JSON.
func DecodeObject(response string, required ...string) (map[string]any, error) {
	var obj map[string]any
	if err := Decode(response, &obj); err != nil {
		return nil, err
	}
	for _, key := range required {
		if _, ok := obj[key]; !ok {
			return nil, fmt.Errorf("model response missing required key %q", key)
		}
	}
	return obj, nil
}
