package orchestrator

import (
	"fmt"
	"strings"
)

// WorkflowError wraps any failure that aborted a workflow, locating it by
// workflow, phase and (for hierarchical runs) iteration. The underlying
// cause, typically a *core.AgentFailure or *decision.ParseError, is reachable
// through errors.As.
type WorkflowError struct {
	Workflow  Workflow
	Phase     string
	Iteration int // 1-based, zero when not iterative
	Cause     error
}

// Error implements the error interface.
func (e *WorkflowError) Error() string {
	if e.Iteration > 0 {
		return fmt.Sprintf("%s workflow failed at phase %q (iteration %d): %v", e.Workflow, e.Phase, e.Iteration, e.Cause)
	}
	return fmt.Sprintf("%s workflow failed at phase %q: %v", e.Workflow, e.Phase, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *WorkflowError) Unwrap() error { return e.Cause }

// AggregateFailure reports that every subtask of a parallel fan-out failed,
// leaving nothing to aggregate. Individual causes stay addressable through
// errors.Is / errors.As.
type AggregateFailure struct {
	Causes []error
}

// Error implements the error interface.
func (e *AggregateFailure) Error() string {
	reasons := make([]string, len(e.Causes))
	for i, cause := range e.Causes {
		reasons[i] = cause.Error()
	}
	return fmt.Sprintf("all %d fan-out subtasks failed: %s", len(e.Causes), strings.Join(reasons, "; "))
}

// Unwrap exposes the per-subtask causes for multi-error matching.
func (e *AggregateFailure) Unwrap() []error { return e.Causes }

// Cancelled reports that the caller's context ended while a workflow was in
// flight. Work completed before cancellation remains in the history log and
// on the partial result.
type Cancelled struct {
	Workflow Workflow
	Phase    string
	Cause    error
}

// Error implements the error interface.
func (e *Cancelled) Error() string {
	return fmt.Sprintf("%s workflow cancelled during phase %q: %v", e.Workflow, e.Phase, e.Cause)
}

// Unwrap returns the context error (context.Canceled or
// context.DeadlineExceeded).
func (e *Cancelled) Unwrap() error { return e.Cause }
