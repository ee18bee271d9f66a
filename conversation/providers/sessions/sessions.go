package sessions

import (
	"context"
	"time"
)

type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// State is a session's memory: the lossy rolling summary plus the raw turns
// not yet folded into it.
type State struct {
	Summary string `json:"summary"`
	Turns   []Turn `json:"turns"`
}

// Store is the injectable backing store for session state. Implementations
// must return copies; callers mutate what they get back.
type Store interface {
	Load(ctx context.Context, sessionId string) (State, bool, error)
	Save(ctx context.Context, sessionId string, state State) error
	Delete(ctx context.Context, sessionId string) error
}

type Option func(*Options)

type Options struct {
	Context context.Context
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
