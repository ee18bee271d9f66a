package failsafe

import (
	"context"
	"log/slog"

	"github.com/vamm-energy/policyagent/embedder"
)

// failsafeEmbedder degrades instead of failing: when the wrapped embedder
// errors, it logs and returns a zero vector of the configured dimension so a
// request falls through to "no relevant match" rather than crashing.
type failsafeEmbedder struct {
	options embedder.Options
	inner   embedder.Embedder
}

func (e *failsafeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := e.inner.Embed(ctx, text)
	if err != nil {
		slog.WarnContext(ctx, "embedding degraded to zero vector", "error", err)
		return make([]float32, e.options.Dimensions), nil
	}
	return vec, nil
}

func NewEmbedder(inner embedder.Embedder, opts ...embedder.Option) embedder.Embedder {
	options := embedder.NewOptions(opts...)

	if inner == nil {
		panic("inner embedder is required")
	}

	return &failsafeEmbedder{
		options: options,
		inner:   inner,
	}
}
