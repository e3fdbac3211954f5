package engine_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/xraph/simflow"
	"github.com/xraph/simflow/adapter"
	"github.com/xraph/simflow/artifact"
	"github.com/xraph/simflow/engine"
	"github.com/xraph/simflow/stage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeGeometry is a compliant in-memory CAD adapter.
type fakeGeometry struct {
	loadErr error
	params  map[string]float64
	loaded  string
}

func newFakeGeometry() *fakeGeometry {
	return &fakeGeometry{params: make(map[string]float64)}
}

func (f *fakeGeometry) Connect(_ context.Context) error { return nil }

func (f *fakeGeometry) LoadModel(_ context.Context, path string) error {
	if f.loadErr != nil {
		return f.loadErr
	}
	f.loaded = path
	return nil
}

func (f *fakeGeometry) GetParameter(_ context.Context, name string) (float64, error) {
	v, ok := f.params[name]
	if !ok {
		return 0, fmt.Errorf("no parameter %q", name)
	}
	return v, nil
}

func (f *fakeGeometry) SetParameter(_ context.Context, name string, value float64) error {
	f.params[name] = value
	return nil
}

func (f *fakeGeometry) Rebuild(_ context.Context) error { return nil }

func (f *fakeGeometry) ExportSTEP(_ context.Context, outputPath string) error {
	return os.WriteFile(outputPath, []byte("ISO-10303-21;\n"), 0o644)
}

func (f *fakeGeometry) SupportedFormats() []adapter.Format {
	return []adapter.Format{adapter.FormatFCStd, adapter.FormatSTEP}
}

func (f *fakeGeometry) Info() adapter.Info {
	return adapter.Info{Name: "fake-cad", Role: "geometry"}
}

// fakeAnalysis is a compliant in-memory mesher/solver adapter whose
// operations write real files, so artifact existence checks pass.
type fakeAnalysis struct {
	meshErr error
	runErr  error
	results map[string]any
}

func (f *fakeAnalysis) Connect(_ context.Context) error { return nil }

func (f *fakeAnalysis) GenerateMesh(_ context.Context, _, meshFile string, _ float64) error {
	if f.meshErr != nil {
		return f.meshErr
	}
	return os.WriteFile(meshFile, []byte("$MeshFormat\n"), 0o644)
}

func (f *fakeAnalysis) SetupSimulation(_ context.Context, meshFile string, spec adapter.SimulationSpec) (string, error) {
	inputFile := filepath.Join(filepath.Dir(meshFile), spec.AnalysisType+".inp")
	if err := os.WriteFile(inputFile, []byte("*HEADING\n"), 0o644); err != nil {
		return "", err
	}
	return inputFile, nil
}

func (f *fakeAnalysis) RunSimulation(_ context.Context, _, outputDir string) error {
	if f.runErr != nil {
		return f.runErr
	}
	return os.WriteFile(filepath.Join(outputDir, "results.frd"), []byte("1C\n"), 0o644)
}

func (f *fakeAnalysis) ReadResults(_ context.Context, _ string) (map[string]any, error) {
	if f.results != nil {
		return f.results, nil
	}
	return map[string]any{"max_stress": 142.7}, nil
}

func (f *fakeAnalysis) SupportedAnalysisTypes() []string {
	return []string{"static_analysis", "modal_analysis", "topology_optimization"}
}

func (f *fakeAnalysis) Info() adapter.Info {
	return adapter.Info{Name: "fake-solver", Role: "analysis"}
}

// funcStage dispatches every operation to a single function. Used to
// inject blocking or cancelling behavior into a pipeline.
type funcStage struct {
	name string
	fn   func(ctx context.Context, op string) (*stage.Output, error)
}

func (s *funcStage) Name() string { return s.name }

func (s *funcStage) Execute(ctx context.Context, op string, _ simflow.Config, _ *artifact.Registry) (*stage.Output, error) {
	return s.fn(ctx, op)
}

// newTestEngine builds an engine over fresh fakes with logging discarded.
func newTestEngine(opts ...engine.Option) (*engine.Engine, *fakeGeometry, *fakeAnalysis) {
	geom := newFakeGeometry()
	solver := &fakeAnalysis{}
	opts = append([]engine.Option{engine.WithLogger(discardLogger())}, opts...)
	return engine.New(geom, solver, solver, opts...), geom, solver
}

// writeCAD creates a placeholder CAD file for load_model.
func writeCAD(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "bracket.FCStd")
	if err := os.WriteFile(path, []byte("fcstd"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
