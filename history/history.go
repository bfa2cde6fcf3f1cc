package history

import (
	"sync"

	"github.com/hupe1980/agentpipe/core"
)

// Log is an append-only, ordered record of agent responses scoped to one
// orchestrator's lifetime. It is safe for concurrent use: a single writer
// lock serializes appends, which defines "completion order" for concurrent
// fan-out calls. Entries are never mutated or removed individually; Clear is
// the only reset.
type Log struct {
	mu        sync.RWMutex
	responses []core.Response
}

// NewLog constructs an empty log.
func NewLog() *Log {
	return &Log{}
}

// Append adds a response to the log. Called internally by workflow steps as
// each agent call completes; external callers read via Snapshot.
func (l *Log) Append(resp core.Response) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.responses = append(l.responses, resp)
}

// Snapshot returns a defensive copy of the full response sequence in append
// order.
func (l *Log) Snapshot() []core.Response {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]core.Response, len(l.responses))
	copy(out, l.responses)
	return out
}

// Len returns the number of recorded responses.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.responses)
}

// Clear resets the log, e.g. between independent task runs.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.responses = nil
}
