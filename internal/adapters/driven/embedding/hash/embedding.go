// Package hash provides a deterministic, offline embedding service.
// Vectors are derived from an MD5 digest chain over the text. They
// carry no semantics but are stable, cheap and collision-resistant
// enough for testing and offline retrieval.
package hash

import (
	"context"
	"crypto/md5"
	"math"

	"github.com/clauseworks/verdict-cli/internal/core/ports/driven"
)

// Ensure Service implements the interface.
var _ driven.EmbeddingService = (*Service)(nil)

// DefaultDimensions is the default vector size.
const DefaultDimensions = 384

// Service generates hash-derived embeddings.
type Service struct {
	dimensions int
}

// New creates a hash embedding service. dimensions <= 0 selects the
// default.
func New(dimensions int) *Service {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &Service{dimensions: dimensions}
}

// Embed generates a deterministic vector for the given text.
// The role is ignored: hash embeddings are symmetric.
func (s *Service) Embed(_ context.Context, text string, _ driven.EmbeddingRole) ([]float64, error) {
	return s.vector(text), nil
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

// vector expands an MD5 digest chain into a unit-length vector.
func (s *Service) vector(text string) []float64 {
	vec := make([]float64, s.dimensions)

	sum := md5.Sum([]byte(text))
	i := 0
	for i < s.dimensions {
		for _, b := range sum {
			if i >= s.dimensions {
				break
			}
			vec[i] = float64(b)/127.5 - 1.0
			i++
		}
		sum = md5.Sum(sum[:])
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// Dimensions returns the embedding vector size.
func (s *Service) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding strategy.
func (s *Service) ModelName() string {
	return "hash-md5"
}

// Ping validates the service is usable. Hash embeddings have no
// external dependency.
func (s *Service) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (s *Service) Close() error {
	return nil
}
