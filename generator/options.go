package generator

import (
	"context"
	"net/http"
	"time"
)

type Option func(*Options)

type Options struct {
	ApiKey       string
	Model        string
	PromptPrefix string
	Retries      int
	Backoff      time.Duration
	HttpClient   *http.Client
	Context      context.Context
}

func WithApiKey(apiKey string) Option {
	return func(o *Options) {
		o.ApiKey = apiKey
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithPromptPrefix(prefix string) Option {
	return func(o *Options) {
		o.PromptPrefix = prefix
	}
}

// WithRetries bounds how many times the retry decorator re-attempts a failed
// call beyond the first.
func WithRetries(retries int) Option {
	return func(o *Options) {
		o.Retries = retries
	}
}

func WithBackoff(backoff time.Duration) Option {
	return func(o *Options) {
		o.Backoff = backoff
	}
}

func WithHttpClient(client *http.Client) Option {
	return func(o *Options) {
		o.HttpClient = client
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Retries: 2,
		Backoff: 250 * time.Millisecond,
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
