// Package charstat provides a deterministic embedding service built
// from character statistics. Each distinct character of the lowered
// text, in sorted order, contributes one component scaled by its code
// point. Crude, but stable and dependency-free.
package charstat

import (
	"context"
	"sort"
	"strings"

	"github.com/clauseworks/verdict-cli/internal/core/ports/driven"
)

// Ensure Service implements the interface.
var _ driven.EmbeddingService = (*Service)(nil)

// DefaultDimensions is the default vector size.
const DefaultDimensions = 384

// Service generates character-statistic embeddings.
type Service struct {
	dimensions int
}

// New creates a charstat embedding service. dimensions <= 0 selects the
// default.
func New(dimensions int) *Service {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &Service{dimensions: dimensions}
}

// Embed generates a deterministic vector for the given text.
// The role is ignored: charstat embeddings are symmetric.
func (s *Service) Embed(_ context.Context, text string, _ driven.EmbeddingRole) ([]float64, error) {
	vec := make([]float64, s.dimensions)

	seen := make(map[rune]struct{})
	for _, r := range strings.ToLower(text) {
		seen[r] = struct{}{}
	}

	chars := make([]rune, 0, len(seen))
	for r := range seen {
		chars = append(chars, r)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })

	for i, r := range chars {
		if i >= s.dimensions {
			break
		}
		vec[i] = float64(r%128) / 127.0
	}
	return vec, nil
}

// EmbedBatch generates embeddings for multiple texts.
func (s *Service) EmbedBatch(ctx context.Context, texts []string, role driven.EmbeddingRole) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		vec, err := s.Embed(ctx, t, role)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

// Dimensions returns the embedding vector size.
func (s *Service) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding strategy.
func (s *Service) ModelName() string {
	return "charstat"
}

// Ping validates the service is usable.
func (s *Service) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (s *Service) Close() error {
	return nil
}
