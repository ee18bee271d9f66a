package assembler

import "context"

type Option func(*Options)

type Options struct {
	TopK        int
	MinScore    float64
	DedupePages bool
	Context     context.Context
}

func WithTopK(k int) Option {
	return func(o *Options) {
		o.TopK = k
	}
}

// WithMinScore sets a similarity floor below which matches are discarded.
// Zero (the default) keeps every ranked match.
func WithMinScore(min float64) Option {
	return func(o *Options) {
		o.MinScore = min
	}
}

// WithDedupePages controls whether multiple chunks of the same page collapse
// to the highest-ranked one.
func WithDedupePages(dedupe bool) Option {
	return func(o *Options) {
		o.DedupePages = dedupe
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		TopK:        5,
		DedupePages: true,
		Context:     context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
