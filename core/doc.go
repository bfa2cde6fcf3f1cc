// Package core provides the foundational domain types used by agentpipe. It
// defines the core abstractions for:
//
//   - Tasks (immutable work descriptions with optional named context values)
//   - Responses (immutable, attributed results of single agent calls)
//   - ContextBundles (role-keyed prior content threaded between agent calls)
//   - Agents (the single opaque capability the orchestration layer depends on)
//   - AgentFailure (the per-call failure type shared by all agent variants)
//
// The package intentionally keeps implementation concerns (model backends,
// workflow orchestration, history tracking) out of scope, exposing small
// value types and one interface so that the orchestrator can be built against
// the abstract capability alone.
package core
