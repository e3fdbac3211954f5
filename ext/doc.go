// Package ext defines the extension system for Simflow.
//
// Extensions are notified of lifecycle events and can react to them —
// recording metrics, writing audit trails, sending notifications, etc.
// Each lifecycle hook is a separate interface so extensions opt in only
// to the events they care about.
//
// # Implementing an Extension
//
//	type MyExtension struct{}
//
//	func (e *MyExtension) Name() string { return "my-extension" }
//
//	// Opt in to specific hooks by implementing their interfaces.
//	func (e *MyExtension) OnStepCompleted(ctx context.Context, r *workflow.Run, step *workflow.Step, elapsed time.Duration) error {
//	    log.Printf("step %s completed in %s", step.Name, elapsed)
//	    return nil
//	}
//
// # Step Lifecycle Hooks
//
//   - [StepStarted] — a pipeline step began executing
//   - [StepCompleted] — a step finished successfully
//   - [StepFailed] — a step failed
//
// # Run Lifecycle Hooks
//
//   - [RunStarted] — workflow run began
//   - [RunCompleted] — workflow run finished successfully
//   - [RunFailed] — workflow run failed
//   - [RunCancelled] — workflow run was cancelled
//   - [Shutdown] — the engine is shutting down gracefully
//
// The [Registry] fans out each event to all registered extensions that
// implement the corresponding hook interface.
package ext
