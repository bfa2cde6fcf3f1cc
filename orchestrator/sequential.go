package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/agentpipe/core"
)

// Sequential runs the Research → Analysis → Writer → Critic pipeline on the
// given task. Each step receives the accumulated outputs of every earlier
// step through its context bundle. The first failing step aborts the run;
// the partial result keeps all completed phases and a failure marker for the
// aborted one.
func (o *Orchestrator) Sequential(ctx context.Context, task core.Task) (*WorkflowResult, error) {
	wl := o.logger.WithWorkflow(string(WorkflowSequential))
	result := newResult(WorkflowSequential, task.Description())
	start := time.Now()

	steps := []struct {
		phase string
		agent core.Agent
		task  core.Task
	}{
		{PhaseResearch, o.roster.Research, task},
		{PhaseAnalysis, o.roster.Analysis, core.NewTask(fmt.Sprintf("Analyze this research on: %s", task.Description()), nil)},
		{PhaseArticle, o.roster.Writer, core.NewTask(fmt.Sprintf("Write a comprehensive article on: %s", task.Description()), nil)},
		{PhaseCritique, o.roster.Critic, core.NewTask("Review and critique this article.", nil)},
	}

	bundle := core.NewContextBundle()
	for _, step := range steps {
		pl := wl.WithPhase(step.phase)

		if err := ctx.Err(); err != nil {
			result.Failure = &FailureMarker{Phase: step.phase, Cause: err}
			wl.LogWorkflowRun(string(WorkflowSequential), len(result.Phases), time.Since(start), false, err)
			return result, &Cancelled{Workflow: WorkflowSequential, Phase: step.phase, Cause: err}
		}

		pl.Debug("Starting phase", "task", step.task.Description())
		resp, err := o.call(ctx, pl, step.agent, step.task, bundle)
		if err != nil {
			result.Failure = &FailureMarker{Phase: step.phase, Cause: err}
			wl.LogWorkflowRun(string(WorkflowSequential), len(result.Phases), time.Since(start), false, err)
			return result, abort(ctx, WorkflowSequential, step.phase, 0, err)
		}

		result.Phases[step.phase] = resp.Content
		bundle = bundle.With(step.phase, resp.Content)
	}

	result.FinalOutput = result.Phases[PhaseArticle]
	wl.LogWorkflowRun(string(WorkflowSequential), len(result.Phases), time.Since(start), true, nil)

	return result, nil
}
