// Package orchestrator implements the coordination engine that drives a fixed
// roster of agents (Research, Analysis, Writer, Critic) through three
// workflow patterns:
//
//   - Sequential: a strictly ordered Research → Analysis → Writer → Critic
//     chain where each step's output feeds the next step's context
//   - Parallel: bounded concurrent Research fan-out over subtasks, a join
//     barrier, deterministic aggregation by subtask index, then a sequential
//     Analysis → Writer tail
//   - Hierarchical: an iterative Research → Writer → Critic review loop in
//     which the Critic acts as supervisor, signalling approval through the
//     structured decision contract until approval or iteration exhaustion
//
// Every completed agent call is appended to the orchestrator's append-only
// history log in completion order; failed parallel fan-out calls append
// placeholder entries so the log keeps one record per subtask. Failure
// policy is explicit per workflow:
// Sequential and Hierarchical abort on the first failing call, Parallel
// tolerates partial fan-out failure and aborts only when every subtask
// fails. The engine performs no retries; failures carry workflow, phase and
// iteration so callers can decide.
package orchestrator
