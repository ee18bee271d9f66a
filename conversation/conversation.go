// Package conversation maintains per-session dialogue memory as a rolling,
// token-budgeted summary rather than a full transcript.
package conversation

import "context"

type Memory interface {
	// Load returns the summary text for a session. Unknown sessions yield the
	// empty string; they are created lazily on first append. The returned
	// text never exceeds the configured token budget.
	Load(ctx context.Context, sessionId string) (string, error)
	// Append folds one user/assistant exchange into the session's memory.
	// Appends for the same session are serialized; sessions are independent.
	Append(ctx context.Context, sessionId string, userTurn string, assistantTurn string) error
	// Evict drops a session's state entirely.
	Evict(ctx context.Context, sessionId string) error
}
