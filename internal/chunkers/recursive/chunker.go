// Package recursive provides a boundary-aware overlapping text chunker.
//
// Chunks are cut on the best semantic boundary available inside each
// window, attempted in priority order: paragraph break, line break,
// sentence end, word break, then a hard character cut. Every chunk is a
// contiguous span of the input and consecutive chunks share trailing
// context, so no characters are lost at chunk boundaries.
package recursive

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/clauseworks/verdict-cli/internal/core/ports/driven"
)

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// DefaultChunkSize is the default maximum number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of overlapping characters.
const DefaultOverlap = 200

// separators, in boundary priority order.
var separators = []string{"\n\n", "\n", ". ", " "}

// Chunker splits text into overlapping passages.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the maximum chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between consecutive chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap must stay below chunk size or the window cannot advance.
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// ChunkSize returns the configured maximum chunk size.
func (c *Chunker) ChunkSize() int { return c.chunkSize }

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int { return c.overlap }

// Chunk splits text into passages of at most the configured chunk size.
// Empty or whitespace-only text yields no passages; text that fits in
// one window yields exactly one.
func (c *Chunker) Chunk(_ context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if len(text) <= c.chunkSize {
		return []string{text}, nil
	}

	estimated := len(text)/(c.chunkSize-c.overlap) + 1
	chunks := make([]string, 0, estimated)

	start := 0
	for start < len(text) {
		end := start + c.chunkSize
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}

		end = c.snap(text, start, end)
		if end <= start {
			// Window smaller than one rune: take the whole rune.
			_, size := utf8.DecodeRuneInString(text[start:])
			end = start + size
		}
		chunks = append(chunks, text[start:end])

		next := runeStart(text, end-c.overlap)
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks, nil
}

// snap moves a window end backward onto the best boundary in the latter
// part of the window. The cut always lands after the separator so the
// separator stays with the leading chunk.
func (c *Chunker) snap(text string, start, end int) int {
	// Never snap below half a window: keeps chunks close to the target
	// size and guarantees forward progress past the overlap.
	floor := start + c.chunkSize/2
	if floor <= start+c.overlap {
		floor = start + c.overlap + 1
	}
	if floor >= end {
		return runeStart(text, end)
	}

	window := text[floor:end]
	for _, sep := range separators {
		if idx := strings.LastIndex(window, sep); idx >= 0 {
			return floor + idx + len(sep)
		}
	}
	// Hard character cut: never split a multi-byte rune.
	return runeStart(text, end)
}

// runeStart moves i back to the start of the rune containing it.
func runeStart(text string, i int) int {
	for i > 0 && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}
