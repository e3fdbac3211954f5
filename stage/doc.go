// Package stage implements the four pipeline phase dispatchers.
//
// Each phase (geometry, mesher, analysis, postprocess) is a Stage that
// translates an operation name into capability-interface calls against
// the run configuration and the artifact registry. Dispatching an
// operation the stage does not recognize fails immediately with a
// configuration error naming the operation.
package stage
