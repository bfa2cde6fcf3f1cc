package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hupe1980/agentpipe/core"
	"github.com/hupe1980/agentpipe/model"
)

// ModelAgentOptions configures a ModelAgent instance.
//
// Use functional options with NewModelAgent to override defaults.
type ModelAgentOptions struct {
	Instruction Instruction
}

// ModelAgent implements core.Agent on top of a model.Model backend. Its only
// state is the fixed configuration (name, instruction) set at construction,
// which keeps a single instance safe for concurrent invocation from multiple
// workflow phases.
type ModelAgent struct {
	name        string      // Human-readable variant name
	llm         model.Model // Language model backend
	instruction Instruction // Persona / instructions for the model
}

// NewModelAgent creates a model-backed agent with sensible defaults.
//
// Parameters:
//   - name: Human-readable name used for attribution in responses
//   - llm: Language model implementation for text generation
//
// Returns a fully configured ModelAgent ready for invocation.
func NewModelAgent(name string, llm model.Model, optFns ...func(o *ModelAgentOptions)) *ModelAgent {
	opts := ModelAgentOptions{
		Instruction: NewInstructionFromText(fmt.Sprintf("You are %s, a helpful AI assistant.", name)),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &ModelAgent{
		name:        name,
		llm:         llm,
		instruction: opts.Instruction,
	}
}

// Name returns the agent's variant name.
func (a *ModelAgent) Name() string { return a.name }

// Model returns the backing language model.
func (a *ModelAgent) Model() model.Model { return a.llm }

// Process implements core.Agent. It resolves the agent's instruction, builds
// a normalized request from the task and context bundle, drains the model's
// response stream and wraps the final text into an attributed Response. All
// failure modes (backend error, cancellation, empty output) surface as a
// *core.AgentFailure.
func (a *ModelAgent) Process(ctx context.Context, task core.Task, bundle core.ContextBundle) (core.Response, error) {
	instructions, err := a.instruction.Resolve(task)
	if err != nil {
		return core.Response{}, core.NewAgentFailure(a.name, "instruction resolution failed", err)
	}

	req := model.Request{
		Instructions: instructions,
		Messages:     buildMessages(task, bundle),
	}

	start := time.Now()
	text, usage, err := drain(ctx, a.llm, req)
	if err != nil {
		reason := "backend error"
		if ctx.Err() != nil {
			reason = "call aborted"
		}
		return core.Response{}, core.NewAgentFailure(a.name, reason, err)
	}
	if text == "" {
		return core.Response{}, core.NewAgentFailure(a.name, "empty output", nil)
	}

	info := a.llm.Info()
	metadata := map[string]any{
		"model":       info.Name,
		"provider":    info.Provider,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if usage != nil {
		metadata["total_tokens"] = usage.TotalTokens
	}

	return core.NewResponse(a.name, text, metadata), nil
}

// buildMessages assembles the conversation: an optional context block
// (bundle entries plus caller-supplied task values) followed by the task
// description itself.
func buildMessages(task core.Task, bundle core.ContextBundle) []model.Message {
	var messages []model.Message

	if block := renderContext(task, bundle); block != "" {
		messages = append(messages, model.Message{Role: "user", Text: "Context:\n" + block})
	}
	messages = append(messages, model.Message{Role: "user", Text: task.Description()})

	return messages
}

// renderContext flattens bundle entries and task values into one block with
// deterministic key ordering.
func renderContext(task core.Task, bundle core.ContextBundle) string {
	var sb strings.Builder
	sb.WriteString(bundle.Render())

	values := task.Values()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "%s: %v", k, values[k])
	}

	return sb.String()
}

// drain consumes the model's channel pair, accumulating the final text (or
// streamed partials when no final chunk arrives) and returning usage when
// the backend reports it.
func drain(ctx context.Context, llm model.Model, req model.Request) (string, *model.TokenUsage, error) {
	respCh, errCh := llm.Generate(ctx, req)

	var partials strings.Builder
	var final string
	var usage *model.TokenUsage
	for {
		select {
		case resp, ok := <-respCh:
			if !ok {
				if err := <-errCh; err != nil {
					return "", nil, err
				}
				if final == "" {
					final = partials.String()
				}
				return final, usage, nil
			}
			if resp.Partial {
				partials.WriteString(resp.Text)
				continue
			}
			final = resp.Text
			if resp.Usage != nil {
				usage = resp.Usage
			}
		case <-ctx.Done():
			return "", nil, ctx.Err()
		}
	}
}
