package generator

import "context"

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Stream returns a finite, non-restartable sequence of text fragments.
	Stream(ctx context.Context, prompt string) (Stream, error)
}

// Stream yields fragments until io.EOF. Callers must Close it.
type Stream interface {
	Recv() (string, error)
	Close() error
}
