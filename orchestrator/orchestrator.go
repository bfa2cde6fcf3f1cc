package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/hupe1980/agentpipe/core"
	"github.com/hupe1980/agentpipe/history"
	"github.com/hupe1980/agentpipe/logging"
)

// DefaultMaxWorkers bounds concurrent fan-out calls when no explicit limit
// is configured.
const DefaultMaxWorkers = 4

// DefaultMaxIterations caps hierarchical review rounds when no explicit
// limit is configured.
const DefaultMaxIterations = 2

// Roster is the fixed set of agents a workflow run draws from. All four
// slots must be populated; workflows address agents by slot, never by name.
type Roster struct {
	Research core.Agent
	Analysis core.Agent
	Writer   core.Agent
	Critic   core.Agent
}

// Agent returns the roster agent filling the given role, or nil for an
// unknown role.
func (r Roster) Agent(role core.Role) core.Agent {
	switch role {
	case core.RoleResearch:
		return r.Research
	case core.RoleAnalysis:
		return r.Analysis
	case core.RoleWriter:
		return r.Writer
	case core.RoleCritic:
		return r.Critic
	default:
		return nil
	}
}

func (r Roster) validate() error {
	if r.Research == nil || r.Analysis == nil || r.Writer == nil || r.Critic == nil {
		return errors.New("orchestrator: roster requires research, analysis, writer and critic agents")
	}
	return nil
}

// Options configures an Orchestrator instance.
//
// Use functional options with New to override defaults.
type Options struct {
	// MaxWorkers bounds concurrent research calls during parallel fan-out.
	MaxWorkers int

	// CallTimeout limits each individual agent call. Zero disables the
	// per-call deadline; the caller's context still applies.
	CallTimeout time.Duration

	// MaxIterations caps hierarchical review rounds.
	MaxIterations int

	Logger logging.Logger
}

// Orchestrator coordinates a roster of agents through the sequential,
// parallel and hierarchical workflow patterns. It owns the append-only
// history log shared by all runs; the roster agents themselves stay
// stateless across calls.
type Orchestrator struct {
	roster Roster
	log    *history.Log
	opts   Options
	logger *logging.WorkflowLogger
}

// New creates an orchestrator over the given roster.
func New(roster Roster, optFns ...func(o *Options)) (*Orchestrator, error) {
	opts := Options{
		MaxWorkers:    DefaultMaxWorkers,
		MaxIterations: DefaultMaxIterations,
		Logger:        logging.NewDefaultSlogLogger(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if err := roster.validate(); err != nil {
		return nil, err
	}
	if opts.MaxWorkers < 1 {
		return nil, errors.New("orchestrator: max workers must be at least 1")
	}
	if opts.MaxIterations < 1 {
		return nil, errors.New("orchestrator: max iterations must be at least 1")
	}
	return &Orchestrator{
		roster: roster,
		log:    history.NewLog(),
		opts:   opts,
		logger: logging.NewWorkflowLogger(opts.Logger),
	}, nil
}

// History returns a point-in-time copy of the shared response log, ordered
// by completion.
func (o *Orchestrator) History() []core.Response { return o.log.Snapshot() }

// Metrics summarizes the shared response log.
func (o *Orchestrator) Metrics() history.Metrics { return o.log.Metrics() }

// ClearHistory empties the shared response log. Concurrent workflow runs
// keep appending; only entries recorded before the call are dropped.
func (o *Orchestrator) ClearHistory() { o.log.Clear() }

// call runs one agent invocation under the configured per-call timeout,
// records the outcome and appends successful responses to the history log.
func (o *Orchestrator) call(ctx context.Context, wl *logging.WorkflowLogger, agent core.Agent, task core.Task, bundle core.ContextBundle) (core.Response, error) {
	callCtx := ctx
	if o.opts.CallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, o.opts.CallTimeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := agent.Process(callCtx, task, bundle)
	wl.LogAgentCall(agent.Name(), time.Since(start), err == nil, err)
	if err != nil {
		return core.Response{}, err
	}

	o.log.Append(resp)

	return resp, nil
}

// abort classifies a phase failure: caller-driven cancellation becomes a
// *Cancelled, everything else a *WorkflowError.
func abort(ctx context.Context, workflow Workflow, phase string, iteration int, cause error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &Cancelled{Workflow: workflow, Phase: phase, Cause: ctxErr}
	}
	return &WorkflowError{Workflow: workflow, Phase: phase, Iteration: iteration, Cause: cause}
}
