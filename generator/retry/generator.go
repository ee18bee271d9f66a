package retry

import (
	"context"
	"log/slog"
	"time"

	"github.com/vamm-energy/policyagent/generator"
)

// retryGenerator re-attempts a failed call a small bounded number of times.
// Streams are only retried while being established; a stream that fails
// mid-flight is not restartable.
type retryGenerator struct {
	options generator.Options
	inner   generator.Generator
}

func (g *retryGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	var result string

	err := g.attempt(ctx, func() error {
		var err error
		result, err = g.inner.Generate(ctx, prompt)
		return err
	})

	return result, err
}

func (g *retryGenerator) Stream(ctx context.Context, prompt string) (generator.Stream, error) {
	var stream generator.Stream

	err := g.attempt(ctx, func() error {
		var err error
		stream, err = g.inner.Stream(ctx, prompt)
		return err
	})

	return stream, err
}

func (g *retryGenerator) attempt(ctx context.Context, call func() error) error {
	var lastErr error

	for i := 0; i <= g.options.Retries; i++ {
		if i > 0 {
			slog.WarnContext(ctx, "retrying generative call", "attempt", i, "error", lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(g.options.Backoff * time.Duration(i)):
			}
		}

		if lastErr = call(); lastErr == nil {
			return nil
		}
	}

	return lastErr
}

func NewGenerator(inner generator.Generator, opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	if inner == nil {
		panic("inner generator is required")
	}

	return &retryGenerator{
		options: options,
		inner:   inner,
	}
}
