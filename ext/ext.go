// Package ext defines the extension system for Simflow.
// Extensions are notified of lifecycle events (run started, step
// completed, run failed, etc.) and can react to them — logging,
// metrics, audit trails, notifications.
//
// Each lifecycle hook is a separate interface so extensions opt in only
// to the events they care about.
package ext

import (
	"context"
	"time"

	"github.com/xraph/simflow/workflow"
)

// Extension is the base interface all extensions must implement.
type Extension interface {
	// Name returns a unique human-readable name for the extension.
	Name() string
}

// ──────────────────────────────────────────────────
// Step lifecycle hooks
// ──────────────────────────────────────────────────

// StepStarted is called when a pipeline step begins executing.
type StepStarted interface {
	OnStepStarted(ctx context.Context, r *workflow.Run, step *workflow.Step) error
}

// StepCompleted is called after a pipeline step completes.
type StepCompleted interface {
	OnStepCompleted(ctx context.Context, r *workflow.Run, step *workflow.Step, elapsed time.Duration) error
}

// StepFailed is called when a pipeline step fails.
type StepFailed interface {
	OnStepFailed(ctx context.Context, r *workflow.Run, step *workflow.Step, err error) error
}

// ──────────────────────────────────────────────────
// Run lifecycle hooks
// ──────────────────────────────────────────────────

// RunStarted is called when a workflow run begins.
type RunStarted interface {
	OnRunStarted(ctx context.Context, r *workflow.Run) error
}

// RunCompleted is called after a workflow run finishes successfully.
type RunCompleted interface {
	OnRunCompleted(ctx context.Context, r *workflow.Run, elapsed time.Duration) error
}

// RunFailed is called when a workflow run fails.
type RunFailed interface {
	OnRunFailed(ctx context.Context, r *workflow.Run, err error) error
}

// RunCancelled is called when a workflow run is cancelled.
type RunCancelled interface {
	OnRunCancelled(ctx context.Context, r *workflow.Run) error
}

// Shutdown is called during graceful shutdown.
type Shutdown interface {
	OnShutdown(ctx context.Context) error
}
