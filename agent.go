// Package policyagent answers questions about a policy document corpus with
// retrieval-augmented generation: every response is grounded in retrieved
// chunks, bounded conversation memory, and an honesty-first system prompt.
package policyagent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vamm-energy/policyagent/assembler"
	"github.com/vamm-energy/policyagent/conversation"
	"github.com/vamm-energy/policyagent/generator"
	toolprovider "github.com/vamm-energy/policyagent/tool_provider"
)

const defaultSystemPrompt = `You are an expert on renewable energy siting policies with access to comprehensive research and policy documents.

Your only job is to assist with renewable energy siting policy related questions and you don't answer other questions besides describing what you are able to do.

Don't ask the user before taking an action, just do it. Always look at the retrieved policy content below before answering; when it helps, also check the list of available pages and fetch full page content.

Always let the user know when you didn't find the content they're looking for - be honest. If the retrieved content says no relevant content was found, say so explicitly instead of guessing.`

type Agent struct {
	assembler     *assembler.Assembler
	memory        conversation.Memory
	generator     generator.Generator
	toolProviders map[string]toolprovider.ToolProvider
	systemPrompt  string
}

// Respond runs one grounded exchange: retrieve, load memory, compose,
// generate, then fold the completed turn into memory.
func (a *Agent) Respond(ctx context.Context, sessionId string, sourceId string, userInput string) (string, error) {
	if len(strings.TrimSpace(userInput)) == 0 {
		return "", errors.New("user input is required")
	}

	if handled, toolName, output, err := a.handleCommand(ctx, userInput); handled {
		if err != nil {
			return "", err
		}
		a.commitCommand(ctx, sessionId, userInput, toolName, output)
		return output, nil
	}

	prompt := a.buildPrompt(ctx, sourceId, sessionId, userInput)

	result, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	a.commit(ctx, sessionId, userInput, result)

	return result, nil
}

// RespondStream is Respond with incremental delivery: each fragment is handed
// to sink as it arrives. Memory is committed only once the full response has
// been assembled; a cancelled context or failing sink aborts the commit.
func (a *Agent) RespondStream(ctx context.Context, sessionId string, sourceId string, userInput string, sink func(fragment string) error) (string, error) {
	if len(strings.TrimSpace(userInput)) == 0 {
		return "", errors.New("user input is required")
	}

	if sink == nil {
		return "", errors.New("sink is required")
	}

	if handled, toolName, output, err := a.handleCommand(ctx, userInput); handled {
		if err != nil {
			return "", err
		}
		if err := sink(output); err != nil {
			return "", fmt.Errorf("delivery aborted: %w", err)
		}
		a.commitCommand(ctx, sessionId, userInput, toolName, output)
		return output, nil
	}

	prompt := a.buildPrompt(ctx, sourceId, sessionId, userInput)

	stream, err := a.generator.Stream(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	defer stream.Close()

	var b strings.Builder

	for {
		fragment, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		}

		b.WriteString(fragment)

		if err := sink(fragment); err != nil {
			return "", fmt.Errorf("delivery aborted: %w", err)
		}
	}

	result := b.String()

	a.commit(ctx, sessionId, userInput, result)

	return result, nil
}

// Capabilities lists the tool names the agent can invoke directly.
func (a *Agent) Capabilities() []string {
	names := make([]string, 0, len(a.toolProviders))
	for name := range a.toolProviders {
		names = append(names, name)
	}
	return names
}

func (a *Agent) Evict(ctx context.Context, sessionId string) error {
	return a.memory.Evict(ctx, sessionId)
}

// handleCommand runs a `tool:<name> <args>` command. It never touches memory;
// callers commit once the output has actually reached the client.
func (a *Agent) handleCommand(ctx context.Context, input string) (bool, string, string, error) {
	trimmed := strings.TrimSpace(input)
	lower := strings.ToLower(trimmed)

	if !strings.HasPrefix(lower, "tool:") {
		return false, "", "", nil
	}

	payload := strings.TrimSpace(trimmed[len("tool:"):])
	if len(payload) == 0 {
		return true, "", "", errors.New("tool name is missing")
	}

	name, args := splitCommand(payload)

	if len(a.toolProviders) == 0 {
		return true, "", "", errors.New("no tools available")
	}

	tp, ok := a.toolProviders[strings.ToLower(name)]
	if !ok {
		return true, "", "", fmt.Errorf("unknown tool: %s", name)
	}

	result, err := tp.Run(ctx, args)
	if err != nil {
		return true, "", "", err
	}

	return true, tp.Name(), result, nil
}

func (a *Agent) commitCommand(ctx context.Context, sessionId string, input string, toolName string, output string) {
	a.commit(ctx, sessionId, input, fmt.Sprintf("%s => %s", toolName, strings.TrimSpace(output)))
}

// buildPrompt merges, in fixed order: system instructions, retrieved context,
// conversation summary, and the raw user query. Retrieval always happens
// before composition; a failing retrieval degrades to the sentinel rather
// than aborting the request.
func (a *Agent) buildPrompt(ctx context.Context, sourceId string, sessionId string, input string) string {
	retrieved, err := a.assembler.Assemble(ctx, input, sourceId)
	if err != nil {
		slog.ErrorContext(ctx, "retrieval degraded", "source", sourceId, "error", err)
		retrieved = assembler.NoContentSentinel
	}

	summary, err := a.memory.Load(ctx, sessionId)
	if err != nil {
		slog.WarnContext(ctx, "failed to load conversation memory", "session", sessionId, "error", err)
		summary = ""
	}

	var sb bytes.Buffer
	sb.WriteString(a.systemPrompt)

	if len(a.toolProviders) > 0 {
		sb.WriteString("\n\nAvailable tools:\n")
		for _, tool := range a.toolProviders {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", tool.Name(), tool.Description()))
		}
		sb.WriteString("Invoke a tool by replying with the exact format `tool:<name> <input>` when it improves the answer.\n")
	}

	sb.WriteString("\nRetrieved policy content:\n")
	sb.WriteString(retrieved)
	sb.WriteString("\n")

	if len(summary) > 0 {
		sb.WriteString("\nSummary of the conversation so far:\n")
		sb.WriteString(summary)
		sb.WriteString("\n")
	}

	sb.WriteString("\nCurrent user message:\n")
	sb.WriteString(strings.TrimSpace(input))
	sb.WriteString("\n\nCompose the best possible assistant reply.\n")

	return sb.String()
}

// commit folds the finished exchange into memory. It runs unconditionally
// after a completed response, including degraded/no-content answers; a memory
// failure is logged, never surfaced as a request failure.
func (a *Agent) commit(ctx context.Context, sessionId string, userTurn string, assistantTurn string) {
	if err := a.memory.Append(ctx, sessionId, userTurn, assistantTurn); err != nil {
		slog.WarnContext(ctx, "failed to append conversation memory", "session", sessionId, "error", err)
	}
}

func New(
	asm *assembler.Assembler,
	memory conversation.Memory,
	gen generator.Generator,
	toolProviders map[string]toolprovider.ToolProvider,
	systemPrompt string,
) *Agent {
	if asm == nil {
		panic("assembler is required")
	}

	if memory == nil {
		panic("conversation memory is required")
	}

	if gen == nil {
		panic("generator is required")
	}

	if len(strings.TrimSpace(systemPrompt)) == 0 {
		systemPrompt = defaultSystemPrompt
	}

	return &Agent{
		assembler:     asm,
		memory:        memory,
		generator:     gen,
		toolProviders: toolProviders,
		systemPrompt:  systemPrompt,
	}
}
