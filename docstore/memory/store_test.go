package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vamm-energy/policyagent/docstore"
)

func chunk(id, sourceId string, page, index int, content string, embedding []float32) docstore.Chunk {
	return docstore.Chunk{
		Id:         id,
		SourceId:   sourceId,
		PageNumber: page,
		ChunkIndex: index,
		Title:      "Siting Guide",
		Content:    content,
		Embedding:  embedding,
	}
}

func TestSearchRanksByDescendingSimilarity(t *testing.T) {
	store := NewStore()
	store.Add(
		chunk("a", "policy-docs", 1, 0, "solar permits", []float32{0, 1}),
		chunk("b", "policy-docs", 2, 0, "wind setbacks", []float32{1, 0}),
		chunk("c", "policy-docs", 3, 0, "zoning appeals", []float32{0.7, 0.7}),
	)

	results, err := store.Search(context.Background(), []float32{1, 0}, docstore.WithSourceId("policy-docs"))
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "b", results[0].Chunk.Id)
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i].Score, results[i-1].Score)
	}
}

func TestSearchRespectsLimit(t *testing.T) {
	store := NewStore()
	for i := 0; i < 10; i++ {
		store.Add(chunk("", "policy-docs", i, 0, "content", []float32{1, 0}))
	}

	results, err := store.Search(
		context.Background(),
		[]float32{1, 0},
		docstore.WithSourceId("policy-docs"),
		docstore.WithSearchLimit(3),
	)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestSearchFiltersBySource(t *testing.T) {
	store := NewStore()
	store.Add(
		chunk("a", "policy-docs", 1, 0, "relevant", []float32{1, 0}),
		chunk("b", "other-docs", 1, 0, "irrelevant", []float32{1, 0}),
	)

	results, err := store.Search(context.Background(), []float32{1, 0}, docstore.WithSourceId("policy-docs"))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Chunk.Id)
}

func TestSearchEmptyStoreReturnsNoResults(t *testing.T) {
	store := NewStore()

	results, err := store.Search(context.Background(), []float32{1, 0}, docstore.WithSourceId("policy-docs"))
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchZeroVectorShortCircuits(t *testing.T) {
	store := NewStore()
	store.Add(chunk("a", "policy-docs", 1, 0, "content", []float32{1, 0}))

	results, err := store.Search(context.Background(), []float32{0, 0}, docstore.WithSourceId("policy-docs"))
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchMinScoreFloor(t *testing.T) {
	store := NewStore()
	store.Add(
		chunk("relevant", "policy-docs", 1, 0, "permit requirements", []float32{0.92, 0.392}),
		chunk("unrelated", "policy-docs", 2, 0, "company picnic", []float32{0.10, 0.995}),
	)

	// No floor: both come back, ranked.
	results, err := store.Search(context.Background(), []float32{1, 0}, docstore.WithSourceId("policy-docs"))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "relevant", results[0].Chunk.Id)
	assert.Equal(t, "unrelated", results[1].Chunk.Id)

	// Floor configured: only the relevant chunk survives.
	results, err = store.Search(
		context.Background(),
		[]float32{1, 0},
		docstore.WithSourceId("policy-docs"),
		docstore.WithMinScore(0.5),
	)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "relevant", results[0].Chunk.Id)
}

func TestSearchBreaksTiesByInsertionOrder(t *testing.T) {
	store := NewStore()
	store.Add(
		chunk("first", "policy-docs", 1, 0, "same", []float32{1, 0}),
		chunk("second", "policy-docs", 2, 0, "same", []float32{1, 0}),
	)

	for i := 0; i < 5; i++ {
		results, err := store.Search(context.Background(), []float32{1, 0}, docstore.WithSourceId("policy-docs"))
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "first", results[0].Chunk.Id)
		assert.Equal(t, "second", results[1].Chunk.Id)
	}
}

func TestListPagesAscendingAndDistinct(t *testing.T) {
	store := NewStore()
	store.Add(
		chunk("", "policy-docs", 7, 0, "x", []float32{1, 0}),
		chunk("", "policy-docs", 2, 0, "x", []float32{1, 0}),
		chunk("", "policy-docs", 7, 1, "x", []float32{1, 0}),
		chunk("", "policy-docs", 4, 0, "x", []float32{1, 0}),
		chunk("", "other-docs", 1, 0, "x", []float32{1, 0}),
	)

	pages, err := store.ListPages(context.Background(), "policy-docs")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 7}, pages)
}

func TestPageChunksOrderedByChunkIndex(t *testing.T) {
	store := NewStore()
	store.Add(
		chunk("", "policy-docs", 2, 2, "C.", []float32{1, 0}),
		chunk("", "policy-docs", 2, 0, "A.", []float32{1, 0}),
		chunk("", "policy-docs", 2, 1, "B.", []float32{1, 0}),
	)

	chunks, err := store.PageChunks(context.Background(), "policy-docs", 2)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	var contents []string
	for _, c := range chunks {
		contents = append(contents, c.Content)
	}
	assert.Equal(t, []string{"A.", "B.", "C."}, contents)
}

func TestPageChunksMissingPage(t *testing.T) {
	store := NewStore()

	chunks, err := store.PageChunks(context.Background(), "policy-docs", 9)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 0}))
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1}, []float32{1, 0}))
}
