// Package plaintext decodes raw bytes as text, permissively.
package plaintext

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/clauseworks/verdict-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents. It is also the fallback for
// unknown file types.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedTypes returns the file type tokens this extractor handles.
func (e *Extractor) SupportedTypes() []string {
	return []string{"txt", "text", "md", "csv", "json", "plain"}
}

// Extract decodes bytes as UTF-8, replacing invalid sequences instead
// of failing.
func (e *Extractor) Extract(_ context.Context, data []byte) (string, error) {
	s := string(data)
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
	}
	return s, nil
}
