// Package memory provides an in-memory vector index using brute-force
// cosine similarity. It backs tests and fully offline runs.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/clauseworks/verdict-cli/internal/core/domain"
	"github.com/clauseworks/verdict-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// entry is one stored record plus its insertion sequence number, used
// for stable tie-breaking.
type entry struct {
	record driven.VectorRecord
	seq    int
}

// Index stores vectors in memory, keyed by vector id.
type Index struct {
	mu        sync.RWMutex
	dimension int
	entries   map[string]*entry
	nextSeq   int
}

// New creates an in-memory index for vectors of the given dimension.
func New(dimension int) (*Index, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("memory index: invalid dimension %d", dimension)
	}
	return &Index{
		dimension: dimension,
		entries:   make(map[string]*entry),
	}, nil
}

// Upsert stores a batch of records. Re-upserting a vector id replaces
// its previous vector and metadata.
func (x *Index) Upsert(_ context.Context, records []driven.VectorRecord) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	// Validate the whole batch before touching state, so a bad record
	// never leaves the batch partially visible.
	for _, rec := range records {
		if rec.VectorID == "" {
			return fmt.Errorf("memory index: empty vector id")
		}
		if len(rec.Vector) != x.dimension {
			return fmt.Errorf("%w: got %d, index expects %d",
				domain.ErrDimensionMismatch, len(rec.Vector), x.dimension)
		}
	}

	for _, rec := range records {
		if existing, ok := x.entries[rec.VectorID]; ok {
			existing.record = rec
			continue
		}
		x.entries[rec.VectorID] = &entry{record: rec, seq: x.nextSeq}
		x.nextSeq++
	}
	return nil
}

// Query finds the topK most similar stored vectors. An empty index or
// no match yields an empty slice.
func (x *Index) Query(_ context.Context, vector []float64, topK int, filter *driven.QueryFilter) ([]domain.RetrievalResult, error) {
	if len(vector) != x.dimension {
		return nil, fmt.Errorf("%w: query vector has %d dimensions, index expects %d",
			domain.ErrDimensionMismatch, len(vector), x.dimension)
	}
	if topK <= 0 {
		return []domain.RetrievalResult{}, nil
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	type scored struct {
		e     *entry
		score float64
	}
	candidates := make([]scored, 0, len(x.entries))
	for _, e := range x.entries {
		if filter != nil && filter.DocumentID != "" && e.record.DocumentID != filter.DocumentID {
			continue
		}
		candidates = append(candidates, scored{e: e, score: cosine(vector, e.record.Vector)})
	}

	// Descending score, ties broken by insertion order.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].e.seq < candidates[j].e.seq
	})

	if topK > len(candidates) {
		topK = len(candidates)
	}
	results := make([]domain.RetrievalResult, 0, topK)
	for _, c := range candidates[:topK] {
		rec := c.e.record
		results = append(results, domain.RetrievalResult{
			VectorID:   rec.VectorID,
			Score:      c.score,
			Text:       rec.Text,
			DocumentID: rec.DocumentID,
			ChunkIndex: rec.ChunkIndex,
		})
	}
	return results, nil
}

// Len returns the number of stored vectors.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entries)
}

// Close releases resources.
func (x *Index) Close() error {
	return nil
}

// cosine computes cosine similarity between two equal-length vectors.
func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
