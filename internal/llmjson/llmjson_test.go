package llmjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no fence",
			input: `{"decision": "Approved"}`,
			want:  `{"decision": "Approved"}`,
		},
		{
			name:  "fence with language tag",
			input: "```json\n{\"decision\": \"Approved\"}\n```",
			want:  `{"decision": "Approved"}`,
		},
		{
			name:  "fence without language tag",
			input: "```\n{\"decision\": \"Rejected\"}\n```",
			want:  `{"decision": "Rejected"}`,
		},
		{
			name:  "single line fence",
			input: "```{Campaign}```",
			want:  "{Campaign}",
		},
		{
			name:  "surrounding whitespace",
			input: "  \n```json\n[1, 2]\n```\n  ",
			want:  "[1, 2]",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Strip(tt.input))
		})
	}
}

func TestDecode(t *testing.T) {
	var out struct {
		Decision string `json:"decision"`
	}
	err := Decode("```json\n{\"decision\": \"Approved\"}\n```", &out)
	require.NoError(t, err)
	assert.Equal(t, "Approved", out.Decision)
}

func TestDecodeMalformed(t *testing.T) {
	var out map[string]any
	err := Decode("the model refuses to emit JSON", &out)
	assert.Error(t, err)
}

func TestDecodeObject(t *testing.T) {
	obj, err := DecodeObject(`{"decision": "Approved", "amount": null, "justification": []}`,
		"decision", "amount", "justification")
	require.NoError(t, err)
	assert.Equal(t, "Approved", obj["decision"])
	assert.Nil(t, obj["amount"])
}

func TestDecodeObjectMissingKey(t *testing.T) {
	_, err := DecodeObject(`{"decision": "Approved"}`, "decision", "justification")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "justification")
}
