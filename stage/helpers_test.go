package stage_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xraph/simflow/adapter"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeGeometry is a scriptable in-memory CAD adapter.
type fakeGeometry struct {
	connectErr error
	loadErr    error
	rebuildErr error
	exportErr  error

	// paramErrs maps parameter names to the error SetParameter returns.
	paramErrs map[string]error

	params    map[string]float64
	loaded    string
	setCalls  []string
	rebuilds  int
	connected bool
}

func newFakeGeometry() *fakeGeometry {
	return &fakeGeometry{params: make(map[string]float64)}
}

func (f *fakeGeometry) Connect(_ context.Context) error {
	if f.connectErr != nil {
		return f.connectErr
	}
	f.connected = true
	return nil
}

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
	f.setCalls = append(f.setCalls, name)
	if err := f.paramErrs[name]; err != nil {
		return err
	}
	f.params[name] = value
	return nil
}

func (f *fakeGeometry) Rebuild(_ context.Context) error {
	if f.rebuildErr != nil {
		return f.rebuildErr
	}
	f.rebuilds++
	return nil
}

func (f *fakeGeometry) ExportSTEP(_ context.Context, outputPath string) error {
	if f.exportErr != nil {
		return f.exportErr
	}
	return os.WriteFile(outputPath, []byte("ISO-10303-21;\n"), 0o644)
}

func (f *fakeGeometry) SupportedFormats() []adapter.Format {
	return []adapter.Format{adapter.FormatFCStd, adapter.FormatSTEP}
}

func (f *fakeGeometry) Info() adapter.Info {
	return adapter.Info{Name: "fake-cad", Role: "geometry"}
}

// fakeAnalysis is a scriptable in-memory mesher/solver adapter. Its
// operations write real files so artifact existence checks pass.
type fakeAnalysis struct {
	connectErr error
	meshErr    error
	setupErr   error
	runErr     error
	readErr    error

	// results is returned by ReadResults when set.
	results map[string]any

	meshedFrom string
	solvedWith string
	readFrom   string
}

func (f *fakeAnalysis) Connect(_ context.Context) error { return f.connectErr }

func (f *fakeAnalysis) GenerateMesh(_ context.Context, geometryFile, meshFile string, _ float64) error {
	if f.meshErr != nil {
		return f.meshErr
	}
	f.meshedFrom = geometryFile
	return os.WriteFile(meshFile, []byte("$MeshFormat\n"), 0o644)
}

func (f *fakeAnalysis) SetupSimulation(_ context.Context, meshFile string, spec adapter.SimulationSpec) (string, error) {
	if f.setupErr != nil {
		return "", f.setupErr
	}
	inputFile := filepath.Join(filepath.Dir(meshFile), spec.AnalysisType+".inp")
	if err := os.WriteFile(inputFile, []byte("*HEADING\n"), 0o644); err != nil {
		return "", err
	}
	return inputFile, nil
}

func (f *fakeAnalysis) RunSimulation(_ context.Context, inputFile, outputDir string) error {
	if f.runErr != nil {
		return f.runErr
	}
	f.solvedWith = inputFile
	return os.WriteFile(filepath.Join(outputDir, "results.frd"), []byte("1C\n"), 0o644)
}

func (f *fakeAnalysis) ReadResults(_ context.Context, resultFile string) (map[string]any, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	f.readFrom = resultFile
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

var errToolDown = errors.New("tool not responding")
