// Package fetch downloads documents from URLs for ingestion.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clauseworks/verdict-cli/internal/core/domain"
)

// DefaultTimeout bounds one document download. There is no retry: a
// timeout is a failure the caller reports.
const DefaultTimeout = 30 * time.Second

// maxDocumentSize caps a downloaded document at 64 MiB.
const maxDocumentSize = 64 << 20

// Downloader fetches documents over HTTP(S).
type Downloader struct {
	client *http.Client
}

// New creates a downloader. client may be nil, selecting a default
// client with DefaultTimeout.
func New(client *http.Client) *Downloader {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Downloader{client: client}
}

// Download fetches the document at rawURL and infers its filename from
// the URL path, the Content-Disposition header, or the content type,
// in that order of preference for the extension.
func (d *Downloader) Download(ctx context.Context, rawURL string) (data []byte, filename string, err error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, "", fmt.Errorf("%w: invalid URL %q", domain.ErrInvalidInput, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, "", fmt.Errorf("%w: create request: %w", domain.ErrDownloadFailed, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", domain.ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("%w: status %d from %s", domain.ErrDownloadFailed, resp.StatusCode, parsed.Host)
	}

	data, err = io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, "", fmt.Errorf("%w: read body: %w", domain.ErrDownloadFailed, err)
	}

	filename = inferFilename(parsed, resp.Header)
	return data, filename, nil
}

// inferFilename picks a filename for a downloaded document.
func inferFilename(u *url.URL, header http.Header) string {
	name := u.Path
	if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
		name = name[idx+1:]
	}

	if cd := header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if fn := params["filename"]; fn != "" {
				name = fn
			}
		}
	}

	if name == "" {
		name = "document"
	}

	// No extension: infer one from the content type.
	if !strings.Contains(name, ".") {
		ct := header.Get("Content-Type")
		switch {
		case strings.Contains(ct, "pdf"):
			name += ".pdf"
		case strings.Contains(ct, "word"), strings.Contains(ct, "docx"):
			name += ".docx"
		case strings.Contains(ct, "text"):
			name += ".txt"
		}
	}
	return name
}

// FileType returns the lower-case extension token for a filename, or
// "unknown" when it has none.
func FileType(filename string) string {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 || idx == len(filename)-1 {
		return "unknown"
	}
	return strings.ToLower(filename[idx+1:])
}
