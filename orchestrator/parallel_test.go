package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hupe1980/agentpipe/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subtasks(descriptions ...string) []core.Task {
	out := make([]core.Task, len(descriptions))
	for i, d := range descriptions {
		out[i] = core.NewTask(d, nil)
	}
	return out
}

func TestParallel_HappyPath(t *testing.T) {
	r := newStubRoster()
	r.research.Reply("alpha", "findings on alpha").Reply("beta", "findings on beta").Reply("gamma", "findings on gamma")
	r.analysis.Fallback("combined analysis")
	r.writer.Fallback("final report")

	o := newTestOrchestrator(t, r)

	result, err := o.Parallel(context.Background(), core.NewTask("big topic", nil), subtasks("alpha", "beta", "gamma"))
	require.NoError(t, err)

	assert.Equal(t, WorkflowParallel, result.Workflow)
	require.Len(t, result.ResearchResults, 3)
	for i, want := range []string{"alpha", "beta", "gamma"} {
		assert.Equal(t, i, result.ResearchResults[i].Index)
		assert.Equal(t, want, result.ResearchResults[i].Task)
		assert.False(t, result.ResearchResults[i].Failed())
	}

	assert.Equal(t, "combined analysis", result.Phases[PhaseAnalysis])
	assert.Equal(t, "final report", result.Phases[PhaseFinalOutput])
	assert.Equal(t, "final report", result.FinalOutput)

	// All fan-out calls complete before the tail starts.
	hist := o.History()
	require.Len(t, hist, 5)
	for i := 0; i < 3; i++ {
		assert.Equal(t, "ResearchAgent", hist[i].AgentName)
	}
	assert.Equal(t, "AnalysisAgent", hist[3].AgentName)
	assert.Equal(t, "WriterAgent", hist[4].AgentName)

	// The analysis step receives the aggregate, not individual findings.
	bundle := r.analysis.Calls()[0].Bundle
	assert.Contains(t, bundle[PhaseResearch], "findings on alpha")
	assert.Contains(t, bundle[PhaseResearch], "findings on gamma")
}

// delayedResearch completes subtasks after per-task delays so completion
// order diverges from submission order.
type delayedResearch struct {
	delays map[string]time.Duration
}

func (d *delayedResearch) Name() string { return "ResearchAgent" }

func (d *delayedResearch) Process(ctx context.Context, task core.Task, _ core.ContextBundle) (core.Response, error) {
	select {
	case <-time.After(d.delays[task.Description()]):
	case <-ctx.Done():
		return core.Response{}, core.NewAgentFailure(d.Name(), "call aborted", ctx.Err())
	}
	return core.NewResponse(d.Name(), "findings on "+task.Description(), nil), nil
}

func TestParallel_AggregationOrderIndependentOfCompletion(t *testing.T) {
	r := newStubRoster()
	r.analysis.Fallback("combined analysis")
	r.writer.Fallback("final report")

	roster := r.roster()
	roster.Research = &delayedResearch{delays: map[string]time.Duration{
		"slow":   80 * time.Millisecond,
		"medium": 40 * time.Millisecond,
		"fast":   5 * time.Millisecond,
	}}

	o, err := New(roster)
	require.NoError(t, err)

	result, err := o.Parallel(context.Background(), core.NewTask("big topic", nil), subtasks("slow", "medium", "fast"))
	require.NoError(t, err)

	// Result slots follow subtask order.
	assert.Equal(t, "slow", result.ResearchResults[0].Task)
	assert.Equal(t, "fast", result.ResearchResults[2].Task)

	// The aggregate preserves subtask order too.
	agg := result.Phases[PhaseResearch]
	assert.Less(t, indexOf(t, agg, "findings on slow"), indexOf(t, agg, "findings on fast"))

	// History records completion order.
	hist := o.History()
	assert.Equal(t, "findings on fast", hist[0].Content)
	assert.Equal(t, "findings on slow", hist[2].Content)
}

func indexOf(t *testing.T, s, sub string) int {
	t.Helper()
	idx := strings.Index(s, sub)
	require.GreaterOrEqual(t, idx, 0)
	return idx
}

// failOnResearch fails exactly the listed subtasks and echoes the rest.
type failOnResearch struct {
	fail map[string]error
}

func (f *failOnResearch) Name() string { return "ResearchAgent" }

func (f *failOnResearch) Process(_ context.Context, task core.Task, _ core.ContextBundle) (core.Response, error) {
	if err, ok := f.fail[task.Description()]; ok {
		return core.Response{}, core.NewAgentFailure(f.Name(), "scripted failure", err)
	}
	return core.NewResponse(f.Name(), "findings on "+task.Description(), nil), nil
}

func TestParallel_PartialFailureTolerated(t *testing.T) {
	r := newStubRoster()
	r.analysis.Fallback("combined analysis")
	r.writer.Fallback("final report")

	sentinel := errors.New("rate limited")
	roster := r.roster()
	roster.Research = &failOnResearch{fail: map[string]error{"beta": sentinel}}

	o, err := New(roster)
	require.NoError(t, err)

	result, err := o.Parallel(context.Background(), core.NewTask("big topic", nil), subtasks("alpha", "beta", "gamma"))
	require.NoError(t, err)

	require.Len(t, result.ResearchResults, 3)
	assert.False(t, result.ResearchResults[0].Failed())
	assert.True(t, result.ResearchResults[1].Failed())
	assert.ErrorIs(t, result.ResearchResults[1].Err, sentinel)

	// Failed slot contributes nothing downstream.
	agg := result.Phases[PhaseResearch]
	assert.Contains(t, agg, "findings on alpha")
	assert.NotContains(t, agg, "beta")

	// The log keeps one entry per subtask; the failed one is a placeholder.
	hist := o.History()
	require.Len(t, hist, 5)
	placeholders := 0
	for _, resp := range hist[:3] {
		if failed, _ := resp.Metadata["failed"].(bool); failed {
			placeholders++
			assert.Empty(t, resp.Content)
			assert.Equal(t, "beta", resp.Metadata["subtask"])
		}
	}
	assert.Equal(t, 1, placeholders)
}

func TestParallel_TotalFailureAborts(t *testing.T) {
	r := newStubRoster()
	sentinel := errors.New("rate limited")
	r.research.Fail(sentinel)

	o := newTestOrchestrator(t, r)

	result, err := o.Parallel(context.Background(), core.NewTask("big topic", nil), subtasks("alpha", "beta"))

	var agg *AggregateFailure
	require.ErrorAs(t, err, &agg)
	assert.Len(t, agg.Causes, 2)

	var wfErr *WorkflowError
	require.ErrorAs(t, err, &wfErr)
	assert.Equal(t, PhaseResearch, wfErr.Phase)

	require.NotNil(t, result.Failure)
	assert.Zero(t, r.analysis.CallCount())
	assert.Zero(t, r.writer.CallCount())

	// Placeholders still land in the log, one per subtask.
	hist := o.History()
	require.Len(t, hist, 2)
	for _, resp := range hist {
		failed, _ := resp.Metadata["failed"].(bool)
		assert.True(t, failed)
	}
}

func TestParallel_NoSubtasks(t *testing.T) {
	r := newStubRoster()
	o := newTestOrchestrator(t, r)

	_, err := o.Parallel(context.Background(), core.NewTask("big topic", nil), nil)

	var wfErr *WorkflowError
	require.ErrorAs(t, err, &wfErr)
	assert.Zero(t, r.research.CallCount())
}

// gaugeResearch tracks the peak number of concurrent calls.
type gaugeResearch struct {
	current atomic.Int32
	peak    atomic.Int32
}

func (g *gaugeResearch) Name() string { return "ResearchAgent" }

func (g *gaugeResearch) Process(_ context.Context, task core.Task, _ core.ContextBundle) (core.Response, error) {
	cur := g.current.Add(1)
	defer g.current.Add(-1)

	for {
		peak := g.peak.Load()
		if cur <= peak || g.peak.CompareAndSwap(peak, cur) {
			break
		}
	}

	time.Sleep(20 * time.Millisecond)
	return core.NewResponse(g.Name(), "findings on "+task.Description(), nil), nil
}

func TestParallel_RespectsWorkerBound(t *testing.T) {
	r := newStubRoster()
	r.analysis.Fallback("combined analysis")
	r.writer.Fallback("final report")

	gauge := &gaugeResearch{}
	roster := r.roster()
	roster.Research = gauge

	o, err := New(roster, func(o *Options) { o.MaxWorkers = 2 })
	require.NoError(t, err)

	tasks := make([]string, 6)
	for i := range tasks {
		tasks[i] = fmt.Sprintf("subtask-%d", i)
	}

	_, err = o.Parallel(context.Background(), core.NewTask("big topic", nil), subtasks(tasks...))
	require.NoError(t, err)

	assert.LessOrEqual(t, gauge.peak.Load(), int32(2))
}

func TestParallel_CancellationDuringFanOut(t *testing.T) {
	r := newStubRoster()
	r.research.Delay(200 * time.Millisecond)

	o := newTestOrchestrator(t, r)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	defer wg.Wait()

	result, err := o.Parallel(ctx, core.NewTask("big topic", nil), subtasks("alpha", "beta"))

	var cancelled *Cancelled
	require.ErrorAs(t, err, &cancelled)
	assert.Equal(t, PhaseResearch, cancelled.Phase)

	require.Len(t, result.ResearchResults, 2)
	assert.True(t, result.ResearchResults[0].Failed())
	assert.Zero(t, r.analysis.CallCount())
}
