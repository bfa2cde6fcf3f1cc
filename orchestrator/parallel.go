package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/agentpipe/core"
	"github.com/hupe1980/agentpipe/logging"
)

// Parallel fans the given subtasks out to the Research agent under the
// configured worker bound, joins on all of them, aggregates successful
// findings in subtask order and runs the sequential Analysis → Writer tail
// over the aggregate. Individual subtask failures become placeholder slots;
// the run aborts only when every subtask fails or a tail phase fails.
func (o *Orchestrator) Parallel(ctx context.Context, task core.Task, subtasks []core.Task) (*WorkflowResult, error) {
	wl := o.logger.WithWorkflow(string(WorkflowParallel))
	result := newResult(WorkflowParallel, task.Description())
	start := time.Now()

	if len(subtasks) == 0 {
		err := errors.New("orchestrator: parallel workflow requires at least one subtask")
		result.Failure = &FailureMarker{Phase: PhaseResearch, Cause: err}
		return result, &WorkflowError{Workflow: WorkflowParallel, Phase: PhaseResearch, Cause: err}
	}

	result.ResearchResults = o.fanOut(ctx, wl.WithPhase(PhaseResearch), subtasks)

	if err := ctx.Err(); err != nil {
		result.Failure = &FailureMarker{Phase: PhaseResearch, Cause: err}
		wl.LogWorkflowRun(string(WorkflowParallel), successCount(result.ResearchResults), time.Since(start), false, err)
		return result, &Cancelled{Workflow: WorkflowParallel, Phase: PhaseResearch, Cause: err}
	}

	aggregated, err := aggregate(result.ResearchResults)
	if err != nil {
		result.Failure = &FailureMarker{Phase: PhaseResearch, Cause: err}
		wl.LogWorkflowRun(string(WorkflowParallel), 0, time.Since(start), false, err)
		return result, &WorkflowError{Workflow: WorkflowParallel, Phase: PhaseResearch, Cause: err}
	}
	result.Phases[PhaseResearch] = aggregated

	tail := []struct {
		phase string
		agent core.Agent
		task  core.Task
	}{
		{PhaseAnalysis, o.roster.Analysis, core.NewTask(fmt.Sprintf("Analyze all research findings for: %s", task.Description()), nil)},
		{PhaseFinalOutput, o.roster.Writer, core.NewTask(fmt.Sprintf("Create a comprehensive report on: %s", task.Description()), nil)},
	}

	bundle := core.NewContextBundle().With(PhaseResearch, aggregated)
	for _, step := range tail {
		pl := wl.WithPhase(step.phase)

		resp, err := o.call(ctx, pl, step.agent, step.task, bundle)
		if err != nil {
			result.Failure = &FailureMarker{Phase: step.phase, Cause: err}
			wl.LogWorkflowRun(string(WorkflowParallel), len(result.Phases), time.Since(start), false, err)
			return result, abort(ctx, WorkflowParallel, step.phase, 0, err)
		}

		result.Phases[step.phase] = resp.Content
		bundle = bundle.With(step.phase, resp.Content)
	}

	result.FinalOutput = result.Phases[PhaseFinalOutput]
	wl.LogWorkflowRun(string(WorkflowParallel), successCount(result.ResearchResults)+len(tail), time.Since(start), true, nil)

	return result, nil
}

// fanOut runs one research call per subtask with at most MaxWorkers in
// flight. Results land in their subtask's slot; the history log records one
// entry per subtask in completion order, with failed calls recorded as
// placeholder entries.
func (o *Orchestrator) fanOut(ctx context.Context, wl *logging.WorkflowLogger, subtasks []core.Task) []SubtaskResult {
	results := make([]SubtaskResult, len(subtasks))
	sem := make(chan struct{}, o.opts.MaxWorkers)

	var wg sync.WaitGroup
	for i, st := range subtasks {
		wg.Add(1)
		go func(i int, st core.Task) {
			defer wg.Done()

			results[i] = SubtaskResult{Index: i, Task: st.Description()}

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[i].Err = ctx.Err()
				o.log.Append(failurePlaceholder(o.roster.Research.Name(), st, ctx.Err()))
				return
			}

			resp, err := o.call(ctx, wl, o.roster.Research, st, core.NewContextBundle())
			if err != nil {
				results[i].Err = err
				o.log.Append(failurePlaceholder(o.roster.Research.Name(), st, err))
				return
			}
			results[i].Content = resp.Content
		}(i, st)
	}
	wg.Wait()

	return results
}

// failurePlaceholder keeps the one-entry-per-subtask shape of the log when a
// fan-out call fails: content empty, cause retained in metadata.
func failurePlaceholder(agentName string, task core.Task, err error) core.Response {
	return core.NewResponse(agentName, "", map[string]any{
		"failed":  true,
		"subtask": task.Description(),
		"error":   err.Error(),
	})
}

// aggregate joins successful findings in subtask order. When nothing
// succeeded it returns an *AggregateFailure carrying every cause.
func aggregate(results []SubtaskResult) (string, error) {
	var sections []string
	var causes []error
	for _, r := range results {
		if r.Failed() {
			causes = append(causes, r.Err)
			continue
		}
		sections = append(sections, fmt.Sprintf("Research on %q:\n%s", r.Task, r.Content))
	}

	if len(sections) == 0 {
		return "", &AggregateFailure{Causes: causes}
	}

	return strings.Join(sections, "\n\n"), nil
}

func successCount(results []SubtaskResult) int {
	n := 0
	for _, r := range results {
		if !r.Failed() {
			n++
		}
	}
	return n
}
