package adapter

import (
	"context"

	"github.com/xraph/simflow"
)

// Format enumerates the file formats exchanged between tools.
type Format string

// Format constants, grouped by role.
const (
	// Native CAD formats.
	FormatFCStd  Format = "FCStd"
	FormatSLDPRT Format = "sldprt"
	FormatSLDASM Format = "sldasm"

	// Geometry exchange formats.
	FormatSTEP Format = "step"
	FormatSTL  Format = "stl"
	FormatIGES Format = "iges"
	FormatBREP Format = "brep"

	// Mesh formats.
	FormatMSH Format = "msh"
	FormatINP Format = "inp"
	FormatBDF Format = "bdf"
	FormatCAS Format = "cas"

	// Result formats.
	FormatVTK Format = "vtk"
	FormatFRD Format = "frd"
	FormatODB Format = "odb"
	FormatRST Format = "rst"
)

// Info describes a connected tool adapter.
type Info struct {
	// Name is the tool name, e.g. "freecad" or "calculix".
	Name string `json:"name"`
	// Role is "geometry" or "analysis".
	Role string `json:"role"`
	// Version is the tool version string, if known.
	Version string `json:"version,omitempty"`
}

// Geometry is the contract a CAD-kernel adapter implements.
type Geometry interface {
	// Connect establishes a session with the CAD tool.
	Connect(ctx context.Context) error

	// LoadModel opens the model at path in the connected session.
	LoadModel(ctx context.Context, path string) error

	// GetParameter returns the current value of a named model parameter.
	GetParameter(ctx context.Context, name string) (float64, error)

	// SetParameter assigns a named model parameter. An unrecognized
	// parameter name is an ordinary error; a lost session must wrap
	// simflow.ErrAdapterUnavailable.
	SetParameter(ctx context.Context, name string, value float64) error

	// Rebuild recomputes the model, applying pending parameter changes.
	Rebuild(ctx context.Context) error

	// ExportSTEP writes the current model to outputPath as a STEP file.
	ExportSTEP(ctx context.Context, outputPath string) error

	// SupportedFormats lists the export formats this adapter handles.
	SupportedFormats() []Format

	// Info describes the underlying tool.
	Info() Info
}

// SimulationSpec is the configuration an Analysis adapter receives when
// setting up a simulation.
type SimulationSpec struct {
	AnalysisType   string               `json:"analysis_type"`
	Material       string               `json:"material"`
	Loads          []simflow.Load       `json:"loads,omitempty"`
	Constraints    []simflow.Constraint `json:"constraints,omitempty"`
	SolverSettings map[string]any       `json:"solver_settings,omitempty"`
}

// Analysis is the contract a mesh-generator or solver adapter implements.
type Analysis interface {
	// Connect establishes a session with the analysis tool.
	Connect(ctx context.Context) error

	// GenerateMesh meshes geometryFile into meshFile with the given
	// target element size.
	GenerateMesh(ctx context.Context, geometryFile, meshFile string, elementSize float64) error

	// SetupSimulation assembles a solver input deck from a mesh file and
	// a simulation spec, returning the path of the written input file.
	SetupSimulation(ctx context.Context, meshFile string, spec SimulationSpec) (string, error)

	// RunSimulation executes the solver against inputFile, writing
	// results under outputDir.
	RunSimulation(ctx context.Context, inputFile, outputDir string) error

	// ReadResults parses a result file into a structured mapping.
	ReadResults(ctx context.Context, resultFile string) (map[string]any, error)

	// SupportedAnalysisTypes lists analysis types this adapter handles,
	// e.g. ["static", "modal", "thermal"].
	SupportedAnalysisTypes() []string

	// Info describes the underlying tool.
	Info() Info
}
