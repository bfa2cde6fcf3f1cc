package core

import "context"

// Agent defines the single capability the orchestration layer depends on.
//
// An agent maps (task, context bundle) to a text Response or an error. The
// four standard variants (Research, Analysis, Writer, Critic) differ only in
// configuration, never in interface or execution semantics, so the
// orchestrator contains no variant-specific control flow beyond "which agent
// fills which role".
//
// Implementations must:
//   - Be stateless across calls apart from fixed construction-time
//     configuration, so one instance can serve concurrent workflow phases
//   - Respect context cancellation and deadlines
//   - Return an *AgentFailure when the underlying computation cannot produce
//     valid output
type Agent interface {
	Name() string
	Process(ctx context.Context, task Task, bundle ContextBundle) (Response, error)
}

// Role identifies the slot an agent fills inside the orchestrator's roster.
type Role string

// Standard roster roles.
const (
	RoleResearch Role = "research"
	RoleAnalysis Role = "analysis"
	RoleWriter   Role = "writer"
	RoleCritic   Role = "critic"
)

// String returns the role's identifier.
func (r Role) String() string { return string(r) }
