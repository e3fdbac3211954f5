package workflow

import (
	"time"

	"github.com/xraph/simflow/artifact"
	"github.com/xraph/simflow/id"
)

// RunState represents the lifecycle state of a workflow run. It shares
// the step status value space plus "not_started".
type RunState string

const (
	// RunStateNotStarted means no step has been dispatched yet.
	RunStateNotStarted RunState = "not_started"
	// RunStateRunning means a step is currently executing.
	RunStateRunning RunState = "running"
	// RunStateCompleted means every step finished successfully.
	RunStateCompleted RunState = "completed"
	// RunStateFailed means a step failed and the run aborted.
	RunStateFailed RunState = "failed"
	// RunStateCancelled means the run was cancelled cooperatively.
	RunStateCancelled RunState = "cancelled"
)

// Run represents a single execution of a workflow. It owns the ordered
// step list, the artifact registry, and the results mapping accumulated
// from postprocess stages.
type Run struct {
	ID        id.RunID           `json:"id"`
	Workflow  string             `json:"workflow"`
	State     RunState           `json:"state"`
	Steps     []*Step            `json:"steps"`
	Results   map[string]any     `json:"results"`
	Artifacts *artifact.Registry `json:"-"`
	OutputDir string             `json:"output_dir"`
	Error     string             `json:"error,omitempty"`

	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewRun creates a run in the not-started state.
func NewRun(workflowName, outputDir string) *Run {
	return &Run{
		ID:        id.NewRunID(),
		Workflow:  workflowName,
		State:     RunStateNotStarted,
		Results:   make(map[string]any),
		Artifacts: artifact.NewRegistry(),
		OutputDir: outputDir,
	}
}

// Summary returns the summaries of all steps in execution order.
func (r *Run) Summary() []Summary {
	out := make([]Summary, len(r.Steps))
	for i, s := range r.Steps {
		out[i] = s.Summarize()
	}
	return out
}

// Result is the structured report returned for a successful run.
type Result struct {
	Status    string           `json:"status"` // always "completed"
	Workflow  string           `json:"workflow"`
	Steps     []*Step          `json:"steps"`
	Results   map[string]any   `json:"results"`
	Artifacts []artifact.Entry `json:"artifacts"`
	OutputDir string           `json:"output_dir"`
}
