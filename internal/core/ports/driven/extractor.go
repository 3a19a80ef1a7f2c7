package driven

import "context"

// Extractor turns raw document bytes of a specific file type into plain text.
// Each extractor handles one or more normalised type tokens ("pdf", "docx", ...).
type Extractor interface {
	// SupportedTypes returns the file type tokens this extractor handles.
	SupportedTypes() []string

	// Extract produces plain text from raw bytes. Page or paragraph
	// boundaries become newline separators.
	Extract(ctx context.Context, data []byte) (string, error)
}

// ExtractorRegistry selects an extractor for a declared or inferred file
// type and applies the pipeline's extraction failure policy.
type ExtractorRegistry interface {
	// ExtractText extracts text from raw bytes using the extractor
	// registered for fileType, falling back to plain-text decoding for
	// unknown types. Extraction errors are absorbed: the empty string is
	// the failure signal, never an error.
	ExtractText(ctx context.Context, data []byte, fileType string) string
}
