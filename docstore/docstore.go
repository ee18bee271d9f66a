package docstore

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the backing store could not answer at all. It is
// never swallowed here; the orchestrator decides how to degrade.
var ErrUnavailable = errors.New("document store unavailable")

type Store interface {
	// Search returns up to limit chunks ranked by descending similarity to the
	// query vector, restricted to the given source. An empty result is not an
	// error. Ties are broken by insertion order of the underlying chunk.
	Search(ctx context.Context, vector []float32, opts ...SearchOption) ([]Result, error)
	// ListPages returns the distinct page numbers for a source, ascending.
	ListPages(ctx context.Context, sourceId string) ([]int, error)
	// PageChunks returns every chunk of a page ordered by chunk index.
	// A page with no chunks yields an empty slice, not an error.
	PageChunks(ctx context.Context, sourceId string, pageNumber int) ([]Chunk, error)
}

// IsZeroVector reports whether every component of vec is zero. A degraded
// embedder substitutes a zero vector, and similarity against it is
// meaningless, so stores short-circuit it to an empty result set.
func IsZeroVector(vec []float32) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}
