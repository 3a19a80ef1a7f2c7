package extractors

import (
	"context"
	"strings"

	"github.com/clauseworks/verdict-cli/internal/core/ports/driven"
	"github.com/clauseworks/verdict-cli/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps file type tokens to extractors. A fallback extractor
// handles unknown types.
type Registry struct {
	byType   map[string]driven.Extractor
	fallback driven.Extractor
}

// NewRegistry creates a registry with the given fallback extractor.
func NewRegistry(fallback driven.Extractor) *Registry {
	return &Registry{
		byType:   make(map[string]driven.Extractor),
		fallback: fallback,
	}
}

// Register adds an extractor for all its supported types.
// Later registrations win on conflict.
func (r *Registry) Register(e driven.Extractor) {
	for _, t := range e.SupportedTypes() {
		r.byType[NormaliseType(t)] = e
	}
}

// ExtractText extracts text from raw bytes. Extraction failures are
// absorbed and logged: callers treat empty or whitespace-only text as
// the failure signal, not a distinct error.
func (r *Registry) ExtractText(ctx context.Context, data []byte, fileType string) string {
	token := NormaliseType(fileType)

	extractor, ok := r.byType[token]
	if !ok {
		logger.Debug("no extractor for type %q, falling back to plain text", fileType)
		extractor = r.fallback
	}
	if extractor == nil {
		return ""
	}

	text, err := extractor.Extract(ctx, data)
	if err != nil {
		logger.Warn("extraction failed for type %q: %v", token, err)
		return ""
	}
	return text
}

// NormaliseType reduces an extension, filename or content-type to a
// bare lower-case token: "report.PDF" -> "pdf",
// "application/pdf; charset=binary" -> "pdf".
func NormaliseType(fileType string) string {
	t := strings.ToLower(strings.TrimSpace(fileType))

	// Content-type: strip parameters and the media-type prefix.
	if idx := strings.IndexByte(t, ';'); idx >= 0 {
		t = strings.TrimSpace(t[:idx])
	}
	if idx := strings.LastIndexByte(t, '/'); idx >= 0 {
		t = t[idx+1:]
	}
	// OOXML content types end in the real token, e.g.
	// "vnd.openxmlformats-officedocument.wordprocessingml.document".
	if strings.Contains(t, "wordprocessingml") || t == "msword" || t == "document" {
		return "docx"
	}

	// Filename or dotted extension.
	if idx := strings.LastIndexByte(t, '.'); idx >= 0 {
		t = t[idx+1:]
	}
	return t
}
