// Package middleware provides composable middleware for step execution.
// Middleware wraps stage dispatch synchronously and can modify execution
// (recover from panics, log, add tracing, etc.).
package middleware

import (
	"context"

	"github.com/xraph/simflow/stage"
	"github.com/xraph/simflow/workflow"
)

// Handler is the terminal function that executes the stage operation.
type Handler func(ctx context.Context) (*stage.Output, error)

// Middleware wraps a Handler with cross-cutting logic.
// It receives the current context, the step being executed, and the
// next handler to call. Middleware MUST call next to continue the chain
// (unless short-circuiting on error).
type Middleware func(ctx context.Context, step *workflow.Step, next Handler) (*stage.Output, error)

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
//
// Example: Chain(logging, recover, tracing) executes as:
//
//	logging → recover → tracing → handler
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, step *workflow.Step, next Handler) (*stage.Output, error) {
		// Build the chain from the end backwards.
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) (*stage.Output, error) {
				return mw(ctx, step, prev)
			}
		}
		return h(ctx)
	}
}

// stageOf extracts the stage key from a "stage.operation" step name.
func stageOf(stepName string) string {
	for i := 0; i < len(stepName); i++ {
		if stepName[i] == '.' {
			return stepName[:i]
		}
	}
	return stepName
}
