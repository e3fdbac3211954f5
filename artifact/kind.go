package artifact

import "strings"

// Kind classifies an artifact by its role in the pipeline.
type Kind string

// Kind constants for the artifact roles the stages exchange.
const (
	// KindUnknown marks an entry registered without a kind tag.
	// Such entries are matched by the legacy name and extension rules only.
	KindUnknown Kind = ""

	// KindModel is a native CAD model reference (the loaded design file).
	KindModel Kind = "model"

	// KindGeometry is an exported geometry-exchange file.
	KindGeometry Kind = "geometry"

	// KindMesh is a generated mesh file.
	KindMesh Kind = "mesh"

	// KindSolverInput is an assembled solver input deck.
	KindSolverInput Kind = "solver_input"

	// KindResult is a solver result file.
	KindResult Kind = "result"
)

// Extensions returns the lowercased file extensions conventionally
// carrying this kind. Used by the legacy extension fallback.
func (k Kind) Extensions() []string {
	switch k {
	case KindModel:
		return []string{".fcstd", ".sldprt", ".sldasm"}
	case KindGeometry:
		return []string{".step", ".stp"}
	case KindMesh:
		return []string{".msh", ".inp"}
	case KindSolverInput:
		return []string{".inp", ".dat"}
	case KindResult:
		return []string{".vtk", ".frd", ".rst", ".odb"}
	default:
		return nil
	}
}

// nameMatch reports whether a step with this name conventionally
// produces the given kind. This is the legacy naming heuristic kept for
// entries registered without a kind tag.
func nameMatch(k Kind, stepName string) bool {
	switch k {
	case KindGeometry:
		return strings.HasSuffix(stepName, "export_step")
	case KindMesh:
		return strings.HasSuffix(stepName, "generate_mesh")
	case KindSolverInput:
		return strings.HasPrefix(stepName, "analysis.setup_")
	default:
		return false
	}
}
