// Package engine wires all Simflow subsystems together. It creates the
// extension registry, workflow registry, middleware chain, and stage
// dispatchers, and provides the RunWorkflow/Cancel/StepSummary
// operations.
//
// This package exists to break the import cycle: the root simflow
// package defines Config and the sentinel errors (imported by stage,
// workflow, etc.) and so cannot import those packages back. The engine
// package sits above all subsystem packages and below the application
// layer.
package engine
