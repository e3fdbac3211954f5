package workflow

import (
	"time"

	"github.com/xraph/simflow/id"
)

// Status represents the lifecycle state of a single step.
type Status string

const (
	// StatusPending means the step has been created but not dispatched.
	StatusPending Status = "pending"
	// StatusRunning means the step's dispatcher call is in flight.
	StatusRunning Status = "running"
	// StatusCompleted means the step finished successfully.
	StatusCompleted Status = "completed"
	// StatusFailed means the step's dispatcher reported an error.
	StatusFailed Status = "failed"
	// StatusCancelled means the step was cancelled cooperatively.
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// Step records one pipeline step of a run. Created by the engine when it
// begins the step and mutated only by the engine.
type Step struct {
	ID          id.StepID  `json:"id"`
	Name        string     `json:"name"` // "<stage>.<operation>"
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
	Result      any        `json:"result,omitempty"`
}

// NewStep creates a pending step.
func NewStep(name, description string) *Step {
	return &Step{
		ID:          id.NewStepID(),
		Name:        name,
		Description: description,
		Status:      StatusPending,
	}
}

// Duration returns the elapsed time between start and completion, or
// zero if the step has not yet recorded both timestamps.
func (s *Step) Duration() time.Duration {
	if s.StartedAt == nil || s.CompletedAt == nil {
		return 0
	}
	return s.CompletedAt.Sub(*s.StartedAt)
}

// Summary is the observable projection of a step.
type Summary struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      Status        `json:"status"`
	Duration    time.Duration `json:"duration"`
	Error       string        `json:"error,omitempty"`
	HasResult   bool          `json:"has_result"`
}

// Summarize returns the step's summary.
func (s *Step) Summarize() Summary {
	return Summary{
		Name:        s.Name,
		Description: s.Description,
		Status:      s.Status,
		Duration:    s.Duration(),
		Error:       s.Error,
		HasResult:   s.Result != nil,
	}
}
