package core

import "fmt"

// AgentFailure reports that an individual agent call could not produce valid
// output. Backend errors, timeouts and malformed or empty completions all
// surface through this one type; a per-call timeout is not a distinct error
// class. The orchestrator attaches workflow locus (phase, iteration) on top.
type AgentFailure struct {
	Agent  string // Name of the failing agent
	Reason string // Short human-readable classification
	Cause  error  // Underlying error, if any
}

// Error implements the error interface.
func (e *AgentFailure) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("agent %s failed: %s: %v", e.Agent, e.Reason, e.Cause)
	}
	return fmt.Sprintf("agent %s failed: %s", e.Agent, e.Reason)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *AgentFailure) Unwrap() error { return e.Cause }

// NewAgentFailure constructs an AgentFailure for the named agent.
func NewAgentFailure(agent, reason string, cause error) *AgentFailure {
	return &AgentFailure{Agent: agent, Reason: reason, Cause: cause}
}
