package conversation

import (
	"context"

	"github.com/vamm-energy/policyagent/conversation/providers/sessions"
	"github.com/vamm-energy/policyagent/generator"
)

type Option func(*Options)

type Options struct {
	Budget     int
	Summarizer generator.Generator
	Store      sessions.Store
	Context    context.Context
}

// WithBudget caps the token estimate of a session's loadable memory.
func WithBudget(budget int) Option {
	return func(o *Options) {
		o.Budget = budget
	}
}

// WithSummarizer sets the model used to fold old turns into the rolling
// summary; conventionally the same model that answers.
func WithSummarizer(g generator.Generator) Option {
	return func(o *Options) {
		o.Summarizer = g
	}
}

func WithStore(store sessions.Store) Option {
	return func(o *Options) {
		o.Store = store
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Budget:  100,
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
