package rolling

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/vamm-energy/policyagent/conversation"
	"github.com/vamm-energy/policyagent/conversation/providers/sessions"
)

const summaryPrompt = `Progressively summarize the conversation below, building on the current summary. Keep the new summary brief.

Current summary:
%s

New lines of conversation:
%s

New summary:`

type rollingMemory struct {
	options conversation.Options
	locks   map[string]*sync.Mutex
	mtx     sync.Mutex
}

func (m *rollingMemory) Load(ctx context.Context, sessionId string) (string, error) {
	state, ok, err := m.options.Store.Load(ctx, sessionId)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	return render(state), nil
}

func (m *rollingMemory) Append(ctx context.Context, sessionId string, userTurn string, assistantTurn string) error {
	lock := m.sessionLock(sessionId)
	lock.Lock()
	defer lock.Unlock()

	state, _, err := m.options.Store.Load(ctx, sessionId)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	state.Turns = append(state.Turns,
		sessions.Turn{Role: "user", Content: userTurn, Timestamp: now},
		sessions.Turn{Role: "assistant", Content: assistantTurn, Timestamp: now},
	)

	m.fold(ctx, &state)

	return m.options.Store.Save(ctx, sessionId, state)
}

func (m *rollingMemory) Evict(ctx context.Context, sessionId string) error {
	m.mtx.Lock()
	delete(m.locks, sessionId)
	m.mtx.Unlock()

	return m.options.Store.Delete(ctx, sessionId)
}

// fold moves the oldest raw turns into the summary until the rendered memory
// fits the budget. The compression is lossy and irreversible.
func (m *rollingMemory) fold(ctx context.Context, state *sessions.State) {
	var popped []sessions.Turn
	for len(state.Turns) > 0 && conversation.EstimateTokens(render(*state)) > m.options.Budget {
		popped = append(popped, state.Turns[0])
		state.Turns = state.Turns[1:]
	}

	if len(popped) == 0 {
		return
	}

	folded := renderTurns(popped)

	summary, err := m.options.Summarizer.Generate(ctx, fmt.Sprintf(summaryPrompt, state.Summary, folded))
	if err != nil {
		slog.WarnContext(ctx, "summary fold failed, truncating instead", "error", err)
		summary = strings.TrimSpace(state.Summary + "\n" + folded)
	}

	state.Summary = strings.TrimSpace(summary)

	// The budget holds even if the summarizer rambles. The overhead charges
	// the retained turns plus the newline render puts before them.
	if conversation.EstimateTokens(render(*state)) > m.options.Budget {
		overhead := 0
		if len(state.Turns) > 0 {
			overhead = conversation.EstimateTokens("\n" + renderTurns(state.Turns))
		}
		state.Summary = conversation.TruncateToTokens(state.Summary, max(m.options.Budget-overhead, 0))
	}
}

func (m *rollingMemory) sessionLock(sessionId string) *sync.Mutex {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	lock, ok := m.locks[sessionId]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[sessionId] = lock
	}

	return lock
}

func render(state sessions.State) string {
	var parts []string
	if len(state.Summary) > 0 {
		parts = append(parts, state.Summary)
	}
	if turns := renderTurns(state.Turns); len(turns) > 0 {
		parts = append(parts, turns)
	}
	return strings.Join(parts, "\n")
}

func renderTurns(turns []sessions.Turn) string {
	var b strings.Builder
	for i, turn := range turns {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(turn.Role)
		b.WriteString(": ")
		b.WriteString(turn.Content)
	}
	return b.String()
}

func NewMemory(opts ...conversation.Option) conversation.Memory {
	options := conversation.NewOptions(opts...)

	if options.Store == nil {
		panic("session store is required")
	}

	if options.Summarizer == nil {
		panic("summarizer is required")
	}

	m := &rollingMemory{
		options: options,
		locks:   map[string]*sync.Mutex{},
		mtx:     sync.Mutex{},
	}

	return m
}
