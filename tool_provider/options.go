package toolprovider

import (
	"context"

	"github.com/vamm-energy/policyagent/assembler"
)

type Option func(*Options)

type Options struct {
	Addrs     []string
	Assembler *assembler.Assembler
	SourceId  string
	Context   context.Context
}

func WithAddrs(addrs ...string) Option {
	return func(o *Options) {
		o.Addrs = addrs
	}
}

func WithAssembler(a *assembler.Assembler) Option {
	return func(o *Options) {
		o.Assembler = a
	}
}

func WithSourceId(sourceId string) Option {
	return func(o *Options) {
		o.SourceId = sourceId
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
