package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/agentpipe/core"
)

// Call records one observed Process invocation.
type Call struct {
	Task   string
	Bundle core.ContextBundle
}

// StubAgent is a scripted core.Agent for workflow tests. Replies are chosen
// in priority order: queued replies (FIFO), exact task-description matches,
// then the fallback. Example:
//
//	critic := NewStubAgent("CriticAgent").Push(reject).Push(approve)
//
// All methods chain; the agent is safe for concurrent invocation.
type StubAgent struct {
	name     string
	mu       sync.Mutex
	queue    []string
	replies  map[string]string
	fallback string
	err      error
	delay    time.Duration
	calls    []Call
}

// NewStubAgent creates a scripted agent with the given name. With no further
// configuration it echoes the task description.
func NewStubAgent(name string) *StubAgent {
	return &StubAgent{name: name, replies: map[string]string{}}
}

// Reply registers content returned for an exact task description (chainable).
func (a *StubAgent) Reply(task, content string) *StubAgent {
	a.replies[task] = content
	return a
}

// Push appends content to the FIFO reply queue, consumed one entry per call
// before any other matching (chainable).
func (a *StubAgent) Push(content string) *StubAgent {
	a.queue = append(a.queue, content)
	return a
}

// Fallback sets the content returned when nothing else matches (chainable).
func (a *StubAgent) Fallback(content string) *StubAgent {
	a.fallback = content
	return a
}

// Fail makes every call return err (chainable).
func (a *StubAgent) Fail(err error) *StubAgent {
	a.err = err
	return a
}

// Delay makes every call block for d, or until the context ends (chainable).
func (a *StubAgent) Delay(d time.Duration) *StubAgent {
	a.delay = d
	return a
}

// Name implements core.Agent.
func (a *StubAgent) Name() string { return a.name }

// Process implements core.Agent.
func (a *StubAgent) Process(ctx context.Context, task core.Task, bundle core.ContextBundle) (core.Response, error) {
	a.mu.Lock()
	a.calls = append(a.calls, Call{Task: task.Description(), Bundle: bundle.Clone()})
	err := a.err
	delay := a.delay
	var queued string
	var hasQueued bool
	if len(a.queue) > 0 {
		queued, hasQueued = a.queue[0], true
		a.queue = a.queue[1:]
	}
	a.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return core.Response{}, core.NewAgentFailure(a.name, "call aborted", ctx.Err())
		}
	}
	if err != nil {
		return core.Response{}, core.NewAgentFailure(a.name, "scripted failure", err)
	}

	content := a.fallback
	if hasQueued {
		content = queued
	} else if reply, ok := a.replies[task.Description()]; ok {
		content = reply
	}
	if content == "" {
		content = fmt.Sprintf("%s output for: %s", a.name, task.Description())
	}

	return core.NewResponse(a.name, content, nil), nil
}

// Calls returns a copy of all observed invocations in call order.
func (a *StubAgent) Calls() []Call {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Call, len(a.calls))
	copy(out, a.calls)
	return out
}

// CallCount returns how many times Process ran.
func (a *StubAgent) CallCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.calls)
}
