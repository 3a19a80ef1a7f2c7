package extractors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubExtractor struct {
	types []string
	text  string
	err   error
}

func (s *stubExtractor) SupportedTypes() []string { return s.types }

func (s *stubExtractor) Extract(_ context.Context, _ []byte) (string, error) {
	return s.text, s.err
}

func TestExtractTextRoutesByType(t *testing.T) {
	pdf := &stubExtractor{types: []string{"pdf"}, text: "pdf text"}
	fallback := &stubExtractor{types: []string{"txt"}, text: "plain text"}

	r := NewRegistry(fallback)
	r.Register(pdf)
	r.Register(fallback)

	ctx := context.Background()
	assert.Equal(t, "pdf text", r.ExtractText(ctx, nil, "pdf"))
	assert.Equal(t, "pdf text", r.ExtractText(ctx, nil, "report.PDF"))
	assert.Equal(t, "pdf text", r.ExtractText(ctx, nil, "application/pdf; charset=binary"))
	assert.Equal(t, "plain text", r.ExtractText(ctx, nil, "txt"))
}

func TestExtractTextUnknownTypeFallsBack(t *testing.T) {
	fallback := &stubExtractor{text: "decoded anyway"}
	r := NewRegistry(fallback)

	assert.Equal(t, "decoded anyway", r.ExtractText(context.Background(), nil, "xyz"))
}

func TestExtractTextAbsorbsErrors(t *testing.T) {
	failing := &stubExtractor{types: []string{"pdf"}, err: errors.New("corrupt file")}
	r := NewRegistry(nil)
	r.Register(failing)

	// Failures surface as empty text, never as an error.
	assert.Equal(t, "", r.ExtractText(context.Background(), []byte("junk"), "pdf"))
}

func TestExtractTextNoExtractorNoFallback(t *testing.T) {
	r := NewRegistry(nil)
	assert.Equal(t, "", r.ExtractText(context.Background(), nil, "pdf"))
}

func TestNormaliseType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"pdf", "pdf"},
		{"PDF", "pdf"},
		{" .pdf ", "pdf"},
		{"report.PDF", "pdf"},
		{"application/pdf", "pdf"},
		{"application/pdf; charset=binary", "pdf"},
		{"text/plain", "plain"},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "docx"},
		{"application/msword", "docx"},
		{"contract.docx", "docx"},
		{"archive.tar.gz", "gz"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormaliseType(tt.input), "NormaliseType(%q)", tt.input)
	}
}
