package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/agentpipe/core"
	"github.com/hupe1980/agentpipe/decision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHierarchical_ApprovedFirstRound(t *testing.T) {
	r := newStubRoster()
	r.writer.Fallback("the draft")
	r.critic.Push(decision.Format(true, "well sourced and clear"))

	o := newTestOrchestrator(t, r)

	result, err := o.Hierarchical(context.Background(), core.NewTask("go generics", nil), 3)
	require.NoError(t, err)

	assert.True(t, result.Approved)
	assert.Equal(t, 1, result.Iterations)
	assert.Equal(t, "the draft", result.FinalOutput)
	assert.Equal(t, []string{"well sourced and clear"}, result.Feedback)

	// One round is research, draft, verdict.
	hist := o.History()
	require.Len(t, hist, 3)
	assert.Equal(t, "ResearchAgent", hist[0].AgentName)
	assert.Equal(t, "WriterAgent", hist[1].AgentName)
	assert.Equal(t, "CriticAgent", hist[2].AgentName)

	// The review task carries the structured response contract and the
	// draft travels in the bundle.
	criticCall := r.critic.Calls()[0]
	assert.Contains(t, criticCall.Task, `"approved"`)
	assert.Equal(t, "the draft", criticCall.Bundle["draft"])
}

func TestHierarchical_FeedbackCarriedForward(t *testing.T) {
	r := newStubRoster()
	r.writer.Push("first draft").Push("second draft")
	r.critic.
		Push(decision.Format(false, "add citations")).
		Push(decision.Format(true, "much better"))

	o := newTestOrchestrator(t, r)

	result, err := o.Hierarchical(context.Background(), core.NewTask("go generics", nil), 3)
	require.NoError(t, err)

	assert.True(t, result.Approved)
	assert.Equal(t, 2, result.Iterations)
	assert.Equal(t, "second draft", result.FinalOutput)
	assert.Equal(t, []string{"add citations", "much better"}, result.Feedback)

	// Round one starts clean, round two carries the rejection feedback.
	researchCalls := r.research.Calls()
	require.Len(t, researchCalls, 2)
	assert.NotContains(t, researchCalls[0].Bundle, feedbackKey)
	assert.Equal(t, "add citations", researchCalls[1].Bundle[feedbackKey])

	writerCalls := r.writer.Calls()
	require.Len(t, writerCalls, 2)
	assert.Equal(t, "add citations", writerCalls[1].Bundle[feedbackKey])

	require.Len(t, o.History(), 6)
}

func TestHierarchical_IterationCap(t *testing.T) {
	r := newStubRoster()
	r.writer.Fallback("the draft")
	r.critic.Fallback(decision.Format(false, "still not good enough"))

	o := newTestOrchestrator(t, r)

	result, err := o.Hierarchical(context.Background(), core.NewTask("go generics", nil), 2)
	require.NoError(t, err)

	// Exhaustion is a valid outcome: last draft, not approved.
	assert.False(t, result.Approved)
	assert.Equal(t, 2, result.Iterations)
	assert.Equal(t, "the draft", result.FinalOutput)
	assert.Len(t, result.Feedback, 2)

	assert.Equal(t, 2, r.research.CallCount())
	assert.Equal(t, 2, r.writer.CallCount())
	assert.Equal(t, 2, r.critic.CallCount())
}

func TestHierarchical_DefaultIterations(t *testing.T) {
	r := newStubRoster()
	r.critic.Fallback(decision.Format(false, "keep revising"))

	o := newTestOrchestrator(t, r, func(o *Options) { o.MaxIterations = 1 })

	result, err := o.Hierarchical(context.Background(), core.NewTask("go generics", nil), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Iterations)
}

func TestHierarchical_UnparseableVerdict(t *testing.T) {
	r := newStubRoster()
	r.writer.Fallback("the draft")
	r.critic.Fallback("Looks good to me, ship it!")

	o := newTestOrchestrator(t, r)

	result, err := o.Hierarchical(context.Background(), core.NewTask("go generics", nil), 3)

	var wfErr *WorkflowError
	require.ErrorAs(t, err, &wfErr)
	assert.Equal(t, WorkflowHierarchical, wfErr.Workflow)
	assert.Equal(t, PhaseCritique, wfErr.Phase)
	assert.Equal(t, 1, wfErr.Iteration)

	var parseErr *decision.ParseError
	require.ErrorAs(t, err, &parseErr)

	// The round's research and draft stay on the partial result.
	require.NotNil(t, result.Failure)
	assert.Equal(t, 1, result.Failure.Iteration)
	assert.Equal(t, "the draft", result.Phases[PhaseArticle])

	// No second round after a contract violation.
	assert.Equal(t, 1, r.research.CallCount())
}

func TestHierarchical_AgentFailureMidRound(t *testing.T) {
	r := newStubRoster()
	sentinel := errors.New("model unavailable")
	r.writer.Fail(sentinel)

	o := newTestOrchestrator(t, r)

	result, err := o.Hierarchical(context.Background(), core.NewTask("go generics", nil), 3)

	var wfErr *WorkflowError
	require.ErrorAs(t, err, &wfErr)
	assert.Equal(t, PhaseArticle, wfErr.Phase)
	assert.ErrorIs(t, err, sentinel)

	require.NotNil(t, result.Failure)
	assert.Contains(t, result.Phases, PhaseResearch)
	assert.Zero(t, r.critic.CallCount())

	// Only the completed research call reached the log.
	require.Len(t, o.History(), 1)
}

func TestHierarchical_Cancellation(t *testing.T) {
	r := newStubRoster()

	o := newTestOrchestrator(t, r)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Hierarchical(ctx, core.NewTask("go generics", nil), 3)

	var cancelled *Cancelled
	require.ErrorAs(t, err, &cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}
