package failsafe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vamm-energy/policyagent/embedder"
)

type fakeEmbedder struct {
	vec []float32
	err error
}

func (e *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.vec, e.err
}

func TestEmbedPassesThroughOnSuccess(t *testing.T) {
	inner := &fakeEmbedder{vec: []float32{0.1, 0.2, 0.3}}
	e := NewEmbedder(inner, embedder.WithDimensions(3))

	vec, err := e.Embed(context.Background(), "wind setbacks")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestEmbedDegradesToZeroVector(t *testing.T) {
	inner := &fakeEmbedder{err: errors.New("quota exceeded")}
	e := NewEmbedder(inner, embedder.WithDimensions(4))

	vec, err := e.Embed(context.Background(), "wind setbacks")
	require.NoError(t, err)
	require.Len(t, vec, 4)
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestNewEmbedderRequiresInner(t *testing.T) {
	assert.Panics(t, func() {
		NewEmbedder(nil)
	})
}
