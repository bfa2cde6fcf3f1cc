// Package agent provides the concrete agent implementation used by the
// orchestrator's roster. A single ModelAgent type drives any model.Model
// backend; the four standard variants (Research, Analysis, Writer, Critic)
// are plain persona configurations of it, never subtypes. Agents are
// stateless across calls apart from construction-time configuration, so one
// instance can safely serve concurrent workflow phases.
package agent
