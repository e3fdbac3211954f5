// Package workflow defines workflow runs, steps, step status transitions,
// and the pipeline registry.
//
// A Run executes an ordered sequence of (stage, operation) pairs. Each
// pair becomes a Step whose lifecycle the engine drives:
//
//	pending → running → completed
//	                  → failed
//	                  → cancelled
//
// Terminal statuses admit no further transitions. Steps are retained for
// the lifetime of the run and returned in the final report — never
// deleted.
//
// # Key Types
//
//   - [Pair] — one (stage, operation) pipeline step
//   - [Registry] — maps workflow names to ordered step sequences
//   - [Run] — a single workflow execution with its steps, artifacts,
//     and accumulated postprocess results
//   - [Step] — one executed pipeline step
//   - [Result] — the structured report of a successful run
package workflow
