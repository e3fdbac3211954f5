// Package adapter defines the capability interfaces the engine drives.
//
// The engine never talks to a CAD kernel or a solver directly; it calls
// these contracts and tool-specific adapters implement them. A Geometry
// adapter wraps a modeling kernel (model loading, parametric edits,
// geometry export). An Analysis adapter wraps a meshing or solving tool;
// the engine holds two Analysis instances, one in the mesher role and one
// in the solver role, both against the same contract.
//
// Adapters own all blocking behavior: launching solver processes,
// round-tripping to a kernel service, timeouts, and any cancellation
// granularity finer than "stop before the next step". From the engine's
// perspective every call is synchronous for its full duration.
//
// An adapter that has lost its session (tool not running, RPC endpoint
// gone) reports it by returning an error wrapping
// simflow.ErrAdapterUnavailable; the stages treat that as fatal even in
// operations that otherwise tolerate per-item failures.
package adapter
