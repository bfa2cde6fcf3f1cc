// Package agentpipe provides a high-level façade over the orchestration
// engine and the standard agent roster, enabling rapid construction of
// multi-agent text generation pipelines. Most applications interact with
// this package by:
//  1. Creating an AgentPipe via New() over a model backend (optionally
//     overriding configuration, logging or individual roster agents)
//  2. Running one of the workflow patterns (Sequential, Parallel,
//     Hierarchical) against a task
//  3. Inspecting the returned WorkflowResult and the shared history log
//
// The façade delegates coordination to orchestrator.Orchestrator while
// keeping setup and usage ergonomics concise. All defaults are safe for
// local development and testing; production deployments typically supply a
// provider-backed model, a config file and a structured logger.
package agentpipe

import (
	"context"

	"github.com/hupe1980/agentpipe/agent"
	"github.com/hupe1980/agentpipe/config"
	"github.com/hupe1980/agentpipe/core"
	"github.com/hupe1980/agentpipe/history"
	"github.com/hupe1980/agentpipe/logging"
	"github.com/hupe1980/agentpipe/model"
	"github.com/hupe1980/agentpipe/orchestrator"
)

// Options configures the AgentPipe instance.
type Options struct {
	// Config holds the engine's tunable settings (worker bound, per-call
	// timeout, iteration cap, log level and format).
	Config config.Config

	// Roster overrides for individual slots. Any nil slot is filled with
	// the standard persona over the backend passed to New.
	Research core.Agent
	Analysis core.Agent
	Writer   core.Agent
	Critic   core.Agent

	// Logger overrides the config-derived slog logger.
	Logger logging.Logger
}

// AgentPipe is the high-level façade aggregating the orchestration engine
// and the standard roster.
type AgentPipe struct {
	opts         Options
	orchestrator *orchestrator.Orchestrator
}

// New creates a new AgentPipe over the given model backend with optional
// overrides. Any roster slot left unset is initialized with its standard
// persona on that backend.
func New(llm model.Model, optFns ...func(o *Options)) (*AgentPipe, error) {
	opts := Options{
		Config: config.Default(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}

	if opts.Logger == nil {
		opts.Logger = logging.NewSlogLogger(logging.ParseLevel(opts.Config.LogLevel), opts.Config.LogFormat)
	}
	if opts.Research == nil {
		opts.Research = agent.NewResearchAgent(llm)
	}
	if opts.Analysis == nil {
		opts.Analysis = agent.NewAnalysisAgent(llm)
	}
	if opts.Writer == nil {
		opts.Writer = agent.NewWriterAgent(llm)
	}
	if opts.Critic == nil {
		opts.Critic = agent.NewCriticAgent(llm)
	}

	roster := orchestrator.Roster{
		Research: opts.Research,
		Analysis: opts.Analysis,
		Writer:   opts.Writer,
		Critic:   opts.Critic,
	}

	o, err := orchestrator.New(roster, func(oo *orchestrator.Options) {
		oo.MaxWorkers = opts.Config.MaxWorkers
		oo.CallTimeout = opts.Config.CallTimeout.Std()
		oo.MaxIterations = opts.Config.MaxIterations
		oo.Logger = opts.Logger
	})
	if err != nil {
		return nil, err
	}

	return &AgentPipe{opts: opts, orchestrator: o}, nil
}

// Sequential runs the Research → Analysis → Writer → Critic pipeline on the
// given task description.
func (p *AgentPipe) Sequential(ctx context.Context, task string) (*orchestrator.WorkflowResult, error) {
	return p.orchestrator.Sequential(ctx, core.NewTask(task, nil))
}

// Parallel fans the subtasks out to the Research agent, then runs the
// Analysis → Writer tail over the aggregated findings.
func (p *AgentPipe) Parallel(ctx context.Context, task string, subtasks []string) (*orchestrator.WorkflowResult, error) {
	sts := make([]core.Task, len(subtasks))
	for i, st := range subtasks {
		sts[i] = core.NewTask(st, nil)
	}
	return p.orchestrator.Parallel(ctx, core.NewTask(task, nil), sts)
}

// Hierarchical runs the iterative Research → Writer → Critic review loop.
// Pass zero maxIterations to use the configured cap.
func (p *AgentPipe) Hierarchical(ctx context.Context, task string, maxIterations int) (*orchestrator.WorkflowResult, error) {
	return p.orchestrator.Hierarchical(ctx, core.NewTask(task, nil), maxIterations)
}

// History returns a point-in-time copy of the shared response log.
func (p *AgentPipe) History() []core.Response { return p.orchestrator.History() }

// Metrics summarizes the shared response log.
func (p *AgentPipe) Metrics() history.Metrics { return p.orchestrator.Metrics() }

// ClearHistory empties the shared response log.
func (p *AgentPipe) ClearHistory() { p.orchestrator.ClearHistory() }
