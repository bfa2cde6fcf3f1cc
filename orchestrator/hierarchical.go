package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/agentpipe/core"
	"github.com/hupe1980/agentpipe/decision"
	"github.com/hupe1980/agentpipe/logging"
)

// Bundle key carrying the Critic's revision feedback into the next
// iteration's research and writing phases.
const feedbackKey = "feedback"

// reviewState tracks where the hierarchical loop currently is; used for
// structured logging only.
type reviewState string

const (
	stateResearching reviewState = "researching"
	stateWriting     reviewState = "writing"
	stateReviewing   reviewState = "reviewing"
	stateApproved    reviewState = "approved"
	stateExhausted   reviewState = "exhausted"
)

// Hierarchical runs the iterative Research → Writer → Critic review loop.
// The Critic supervises: each round it must answer within the structured
// decision contract, and its feedback (when not approving) is carried into
// the next round's context. The loop ends on approval or after maxIterations
// rounds; zero or negative maxIterations selects the configured default.
// Exhaustion is a valid terminal outcome, not an error: the result then
// carries the last draft with Approved false.
func (o *Orchestrator) Hierarchical(ctx context.Context, task core.Task, maxIterations int) (*WorkflowResult, error) {
	wl := o.logger.WithWorkflow(string(WorkflowHierarchical))
	result := newResult(WorkflowHierarchical, task.Description())
	start := time.Now()

	if maxIterations <= 0 {
		maxIterations = o.opts.MaxIterations
	}

	reviewTask := core.NewTask(
		fmt.Sprintf("Review the draft on %q for approval.\n\n%s", task.Description(), decision.Contract),
		nil,
	)

	state := stateResearching
	feedback := ""
	for iter := 1; iter <= maxIterations; iter++ {
		il := wl.WithPhase(fmt.Sprintf("iteration-%d", iter))
		il.Debug("Starting review round", "state", string(state), "max_iterations", maxIterations)

		if err := ctx.Err(); err != nil {
			return o.hierarchicalAbort(ctx, wl, result, PhaseResearch, iter, start, err)
		}

		bundle := core.NewContextBundle()
		if feedback != "" {
			bundle = bundle.With(feedbackKey, feedback)
		}

		research, err := o.call(ctx, il, o.roster.Research, task, bundle)
		if err != nil {
			return o.hierarchicalAbort(ctx, wl, result, PhaseResearch, iter, start, err)
		}
		result.Phases[PhaseResearch] = research.Content

		state = stateWriting
		il.Debug("State transition", "state", string(state))
		writeTask := core.NewTask(fmt.Sprintf("Write a polished draft on: %s", task.Description()), nil)
		draft, err := o.call(ctx, il, o.roster.Writer, writeTask, bundle.With(PhaseResearch, research.Content))
		if err != nil {
			return o.hierarchicalAbort(ctx, wl, result, PhaseArticle, iter, start, err)
		}
		result.Phases[PhaseArticle] = draft.Content
		result.FinalOutput = draft.Content
		result.Iterations = iter

		state = stateReviewing
		il.Debug("State transition", "state", string(state))
		verdict, err := o.call(ctx, il, o.roster.Critic, reviewTask, core.NewContextBundle().With("draft", draft.Content))
		if err != nil {
			return o.hierarchicalAbort(ctx, wl, result, PhaseCritique, iter, start, err)
		}
		result.Phases[PhaseCritique] = verdict.Content

		d, err := decision.Parse(verdict.Content)
		if err != nil {
			return o.hierarchicalAbort(ctx, wl, result, PhaseCritique, iter, start, err)
		}
		result.Feedback = append(result.Feedback, d.Feedback)

		if d.Approved {
			state = stateApproved
			result.Approved = true
			il.Info("Draft approved", "state", string(state), "iterations", iter)
			wl.LogWorkflowRun(string(WorkflowHierarchical), iter*3, time.Since(start), true, nil)
			return result, nil
		}

		feedback = d.Feedback
		state = stateResearching
		il.Info("Draft rejected, carrying feedback forward", "feedback", d.Feedback)
	}

	state = stateExhausted
	wl.Info("Iteration cap reached, returning last draft", "state", string(state), "iterations", maxIterations)
	wl.LogWorkflowRun(string(WorkflowHierarchical), maxIterations*3, time.Since(start), true, nil)

	return result, nil
}

func (o *Orchestrator) hierarchicalAbort(ctx context.Context, wl *logging.WorkflowLogger, result *WorkflowResult, phase string, iter int, start time.Time, cause error) (*WorkflowResult, error) {
	result.Failure = &FailureMarker{Phase: phase, Iteration: iter, Cause: cause}
	wl.LogWorkflowRun(string(WorkflowHierarchical), len(result.Phases), time.Since(start), false, cause)
	return result, abort(ctx, WorkflowHierarchical, phase, iter, cause)
}
