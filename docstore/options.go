package docstore

import "context"

type Option func(*Options)

type Options struct {
	Location string
	Context  context.Context
}

func WithLocation(loc string) Option {
	return func(o *Options) {
		o.Location = loc
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

type SearchOption func(*SearchOptions)

type SearchOptions struct {
	SourceId string
	Limit    int
	MinScore float64
	Context  context.Context
}

func WithSourceId(sourceId string) SearchOption {
	return func(o *SearchOptions) {
		o.SourceId = sourceId
	}
}

func WithSearchLimit(limit int) SearchOption {
	return func(o *SearchOptions) {
		o.Limit = limit
	}
}

// WithMinScore drops matches below the floor. Zero keeps everything.
func WithMinScore(min float64) SearchOption {
	return func(o *SearchOptions) {
		o.MinScore = min
	}
}

func NewSearchOptions(opts ...SearchOption) SearchOptions {
	options := SearchOptions{
		Limit:   5,
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
