// Package pdf extracts text from PDF documents using UniPDF.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/unidoc/unipdf/v3/common/license"
	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"

	"github.com/clauseworks/verdict-cli/internal/core/ports/driven"
	"github.com/clauseworks/verdict-cli/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

var licenseOnce sync.Once

// Extractor handles PDF documents.
type Extractor struct{}

// New creates a new PDF extractor. The UniPDF licence key is read from
// the UNIDOC_LICENSE_KEY environment variable on first use.
func New() *Extractor {
	licenseOnce.Do(func() {
		key := os.Getenv("UNIDOC_LICENSE_KEY")
		if key == "" {
			logger.Warn("UNIDOC_LICENSE_KEY not set, PDF extraction may fail")
			return
		}
		if err := license.SetMeteredKey(key); err != nil {
			logger.Warn("failed to set UniPDF licence key: %v", err)
		}
	})
	return &Extractor{}
}

// SupportedTypes returns the file type tokens this extractor handles.
func (e *Extractor) SupportedTypes() []string {
	return []string{"pdf"}
}

// Extract pulls the text of every page, concatenated with newline
// separators between pages.
func (e *Extractor) Extract(_ context.Context, data []byte) (string, error) {
	reader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return "", fmt.Errorf("count pages: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= numPages; i++ {
		page, err := reader.GetPage(i)
		if err != nil {
			return "", fmt.Errorf("get page %d: %w", i, err)
		}

		ex, err := extractor.New(page)
		if err != nil {
			return "", fmt.Errorf("page %d extractor: %w", i, err)
		}

		text, err := ex.ExtractText()
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
