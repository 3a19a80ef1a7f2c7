// Package qdrant provides a vector index adapter backed by a Qdrant
// server, speaking its REST API over net/http.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/clauseworks/verdict-cli/internal/core/domain"
	"github.com/clauseworks/verdict-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "http://localhost:6333"
	DefaultCollection = "verdict-documents"
	DefaultTimeout    = 30 * time.Second
)

// Config holds configuration for the Qdrant index.
type Config struct {
	// BaseURL is the Qdrant server URL (default: http://localhost:6333).
	BaseURL string

	// APIKey authenticates requests; empty for unsecured servers.
	APIKey string

	// Collection is the collection name (default: verdict-documents).
	Collection string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Index is a Qdrant-backed vector index using cosine distance.
type Index struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	collection string
	dimension  int
}

// New creates a Qdrant index client and ensures the collection exists
// with the given vector dimension.
func New(ctx context.Context, cfg Config, dimension int) (*Index, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("qdrant: invalid dimension %d", dimension)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	x := &Index{
		client:     &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		dimension:  dimension,
	}

	// Create the collection if missing. Qdrant answers 200 for an
	// existing collection with the same schema.
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	if err := x.do(ctx, http.MethodPut, fmt.Sprintf("/collections/%s", cfg.Collection), body, nil); err != nil {
		return nil, fmt.Errorf("%w: ensure collection: %w", domain.ErrIndexUnavailable, err)
	}
	return x, nil
}

// Upsert stores a batch of records with wait=true so the whole batch is
// visible to subsequent queries before Upsert returns.
func (x *Index) Upsert(ctx context.Context, records []driven.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]map[string]any, len(records))
	for i, rec := range records {
		if len(rec.Vector) != x.dimension {
			return fmt.Errorf("%w: got %d, index expects %d",
				domain.ErrDimensionMismatch, len(rec.Vector), x.dimension)
		}
		points[i] = map[string]any{
			"id":     pointID(rec.VectorID),
			"vector": rec.Vector,
			"payload": map[string]any{
				"vector_id":   rec.VectorID,
				"document_id": rec.DocumentID,
				"chunk_index": rec.ChunkIndex,
				"text":        rec.Text,
			},
		}
	}

	body := map[string]any{"points": points}
	path := fmt.Sprintf("/collections/%s/points?wait=true", x.collection)
	if err := x.do(ctx, http.MethodPut, path, body, nil); err != nil {
		return fmt.Errorf("%w: upsert: %w", domain.ErrIndexUnavailable, err)
	}
	return nil
}

// Query finds the topK nearest stored vectors, optionally restricted to
// one document via a payload filter.
func (x *Index) Query(ctx context.Context, vector []float64, topK int, filter *driven.QueryFilter) ([]domain.RetrievalResult, error) {
	if len(vector) != x.dimension {
		return nil, fmt.Errorf("%w: query vector has %d dimensions, index expects %d",
			domain.ErrDimensionMismatch, len(vector), x.dimension)
	}
	if topK <= 0 {
		return []domain.RetrievalResult{}, nil
	}

	req := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	if filter != nil && filter.DocumentID != "" {
		req["filter"] = map[string]any{
			"must": []map[string]any{
				{"key": "document_id", "match": map[string]any{"value": filter.DocumentID}},
			},
		}
	}

	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	path := fmt.Sprintf("/collections/%s/points/search", x.collection)
	if err := x.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, fmt.Errorf("%w: search: %w", domain.ErrIndexUnavailable, err)
	}

	results := make([]domain.RetrievalResult, 0, len(resp.Result))
	for _, r := range resp.Result {
		res := domain.RetrievalResult{Score: r.Score}
		if v, ok := r.Payload["vector_id"].(string); ok {
			res.VectorID = v
		}
		if v, ok := r.Payload["document_id"].(string); ok {
			res.DocumentID = v
		}
		if v, ok := r.Payload["chunk_index"].(float64); ok {
			res.ChunkIndex = int(v)
		}
		if v, ok := r.Payload["text"].(string); ok {
			res.Text = v
		}
		results = append(results, res)
	}
	return results, nil
}

// Close releases resources.
func (x *Index) Close() error {
	return nil
}

// pointID derives a UUID-shaped point id from a vector id. Qdrant only
// accepts integers or UUIDs as point ids, so the opaque vector id is
// kept in the payload and hashed into the id.
func pointID(vectorID string) string {
	const hexdigits = "0123456789abcdef"
	// FNV-1a over the vector id, spread across 16 bytes.
	var h uint64 = 14695981039346656037
	buf := make([]byte, 16)
	for i := 0; i < 16; i++ {
		for _, c := range []byte(vectorID) {
			h ^= uint64(c) + uint64(i)
			h *= 1099511628211
		}
		buf[i] = byte(h)
	}
	out := make([]byte, 0, 36)
	for i, b := range buf {
		if i == 4 || i == 6 || i == 8 || i == 10 {
			out = append(out, '-')
		}
		out = append(out, hexdigits[b>>4], hexdigits[b&0x0f])
	}
	return string(out)
}

// do sends one JSON request and decodes the response into out when
// non-nil. Any non-2xx status is an error.
func (x *Index) do(ctx context.Context, method, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, x.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if x.apiKey != "" {
		req.Header.Set("api-key", x.apiKey)
	}

	resp, err := x.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("qdrant %s %s: status %d: %s", method, path, resp.StatusCode, string(msg))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
