package orchestrator

// Workflow identifies one of the engine's coordination patterns.
type Workflow string

// Supported workflows.
const (
	WorkflowSequential   Workflow = "sequential"
	WorkflowParallel     Workflow = "parallel"
	WorkflowHierarchical Workflow = "hierarchical"
)

// Phase names shared by results, failure markers and history ordering.
const (
	PhaseResearch    = "research"
	PhaseAnalysis    = "analysis"
	PhaseArticle     = "article"
	PhaseCritique    = "critique"
	PhaseFinalOutput = "final_output"
)

// SubtaskResult is one slot of a parallel fan-out, ordered by the original
// subtask index regardless of completion order. Failed slots retain their
// cause and contribute no content to aggregation.
type SubtaskResult struct {
	Index   int    `json:"index"`
	Task    string `json:"task"`
	Content string `json:"content,omitempty"`
	Err     error  `json:"-"`
}

// Failed reports whether this slot is a failure placeholder.
func (s SubtaskResult) Failed() bool { return s.Err != nil }

// FailureMarker identifies where a workflow stopped and why. It appears on
// partial results so already-completed phases remain inspectable.
type FailureMarker struct {
	Phase     string `json:"phase"`
	Iteration int    `json:"iteration,omitempty"` // Hierarchical only, 1-based
	Cause     error  `json:"-"`
}

// WorkflowResult is the terminal bundle returned by one workflow call. Phases
// maps phase name to produced content; workflow-specific fields are populated
// only by the workflow that defines them. Results are not retained by the
// engine; the history log is the durable trace.
type WorkflowResult struct {
	Workflow Workflow          `json:"workflow"`
	Task     string            `json:"task"`
	Phases   map[string]string `json:"phases"`

	// FinalOutput is the Writer's last produced content, duplicated out of
	// Phases for convenience.
	FinalOutput string `json:"final_output,omitempty"`

	// Parallel only: per-subtask outcomes ordered by subtask index.
	ResearchResults []SubtaskResult `json:"research_results,omitempty"`

	// Hierarchical only.
	Approved   bool     `json:"approved,omitempty"`
	Iterations int      `json:"iterations,omitempty"`
	Feedback   []string `json:"feedback,omitempty"`

	// Failure is set when the workflow aborted; completed phases stay
	// populated.
	Failure *FailureMarker `json:"failure,omitempty"`
}

func newResult(workflow Workflow, task string) *WorkflowResult {
	return &WorkflowResult{
		Workflow: workflow,
		Task:     task,
		Phases:   make(map[string]string, 4),
	}
}
