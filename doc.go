// Package simflow provides a composable pipeline orchestration engine that
// drives a CAD design artifact through geometry preparation, mesh generation,
// solver setup/execution, and result post-processing.
//
// Simflow is designed as a library, not a service. Import it, plug in a
// geometry adapter and two analysis adapters (one in the mesher role, one
// in the solver role), and run predefined or custom workflows.
//
// # Quick Start
//
//	eng := engine.New(geomAdapter, meshAdapter, solverAdapter,
//	    engine.WithLogger(logger),
//	)
//
//	result, err := eng.RunWorkflow(ctx, "stress_analysis", simflow.Config{
//	    CADFile:    "bracket.FCStd",
//	    Parameters: map[string]float64{"Length": 120},
//	    Material:   "steel",
//	}, nil)
//
// # Architecture
//
// Each pipeline phase (geometry, mesher, analysis, postprocess) is a Stage
// that translates operation names into capability-interface calls. Steps
// run strictly one at a time; artifacts produced by completed steps are
// recorded in an insertion-ordered registry and located by later stages
// through typed artifact kinds, with a legacy extension match as fallback.
//
// All entity IDs use TypeID — type-prefixed, K-sortable, UUIDv7-based,
// compile-time safe identifiers.
package simflow
