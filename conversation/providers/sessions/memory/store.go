package memory

import (
	"context"
	"sync"

	"github.com/vamm-energy/policyagent/conversation/providers/sessions"
)

type memoryStore struct {
	options sessions.Options
	states  map[string]sessions.State
	mtx     sync.RWMutex
}

func (s *memoryStore) Load(ctx context.Context, sessionId string) (sessions.State, bool, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	state, ok := s.states[sessionId]
	if !ok {
		return sessions.State{}, false, nil
	}

	cpy := sessions.State{
		Summary: state.Summary,
		Turns:   make([]sessions.Turn, len(state.Turns)),
	}
	copy(cpy.Turns, state.Turns)

	return cpy, true, nil
}

func (s *memoryStore) Save(ctx context.Context, sessionId string, state sessions.State) error {
	cpy := sessions.State{
		Summary: state.Summary,
		Turns:   make([]sessions.Turn, len(state.Turns)),
	}
	copy(cpy.Turns, state.Turns)

	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.states[sessionId] = cpy

	return nil
}

func (s *memoryStore) Delete(ctx context.Context, sessionId string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	delete(s.states, sessionId)

	return nil
}

func NewStore(opts ...sessions.Option) sessions.Store {
	options := sessions.NewOptions(opts...)

	s := &memoryStore{
		options: options,
		states:  map[string]sessions.State{},
		mtx:     sync.RWMutex{},
	}

	return s
}
