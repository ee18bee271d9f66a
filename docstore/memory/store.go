package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/vamm-energy/policyagent/docstore"
)

// Store is an in-process document store backed by a slice. Useful for small
// corpora and tests; ranking scans every chunk.
type Store struct {
	options docstore.Options
	chunks  []docstore.Chunk
	mtx     sync.RWMutex
}

// Add indexes chunks in insertion order. Chunks without an id get one.
func (s *Store) Add(chunks ...docstore.Chunk) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, chunk := range chunks {
		if len(chunk.Id) == 0 {
			chunk.Id = uuid.New().String()
		}
		s.chunks = append(s.chunks, chunk)
	}
}

func (s *Store) Search(ctx context.Context, vector []float32, opts ...docstore.SearchOption) ([]docstore.Result, error) {
	options := docstore.NewSearchOptions(opts...)

	if options.Limit < 1 {
		return nil, nil
	}

	if docstore.IsZeroVector(vector) {
		return nil, nil
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	type ranked struct {
		result docstore.Result
		order  int
	}

	candidates := make([]ranked, 0, len(s.chunks))

	for i, chunk := range s.chunks {
		if len(options.SourceId) > 0 && chunk.SourceId != options.SourceId {
			continue
		}
		score := CosineSimilarity(vector, chunk.Embedding)
		if options.MinScore > 0 && score < options.MinScore {
			continue
		}
		candidates = append(candidates, ranked{
			result: docstore.Result{Chunk: chunk, Score: score},
			order:  i,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].result.Score != candidates[j].result.Score {
			return candidates[i].result.Score > candidates[j].result.Score
		}
		return candidates[i].order < candidates[j].order
	})

	if len(candidates) > options.Limit {
		candidates = candidates[:options.Limit]
	}

	results := make([]docstore.Result, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, c.result)
	}

	return results, nil
}

func (s *Store) ListPages(ctx context.Context, sourceId string) ([]int, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	seen := map[int]struct{}{}
	var pages []int

	for _, chunk := range s.chunks {
		if chunk.SourceId != sourceId {
			continue
		}
		if _, ok := seen[chunk.PageNumber]; ok {
			continue
		}
		seen[chunk.PageNumber] = struct{}{}
		pages = append(pages, chunk.PageNumber)
	}

	sort.Ints(pages)

	return pages, nil
}

func (s *Store) PageChunks(ctx context.Context, sourceId string, pageNumber int) ([]docstore.Chunk, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var chunks []docstore.Chunk

	for _, chunk := range s.chunks {
		if chunk.SourceId != sourceId || chunk.PageNumber != pageNumber {
			continue
		}
		chunks = append(chunks, chunk)
	}

	sort.SliceStable(chunks, func(i, j int) bool {
		return chunks[i].ChunkIndex < chunks[j].ChunkIndex
	})

	return chunks, nil
}

func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

func NewStore(opts ...docstore.Option) *Store {
	options := docstore.NewOptions(opts...)

	s := &Store{
		options: options,
		chunks:  []docstore.Chunk{},
		mtx:     sync.RWMutex{},
	}

	return s
}
