package stage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xraph/simflow"
	"github.com/xraph/simflow/adapter"
	"github.com/xraph/simflow/artifact"
)

// Analysis drives an analysis adapter in the solver role: simulation
// setup ("setup_<analysis_type>" operations) and solver execution.
type Analysis struct {
	adapter adapter.Analysis
	logger  *slog.Logger
}

// NewAnalysis creates the analysis stage.
func NewAnalysis(a adapter.Analysis, logger *slog.Logger) *Analysis {
	return &Analysis{adapter: a, logger: logger}
}

// Name implements Stage.
func (a *Analysis) Name() string { return "analysis" }

// Execute implements Stage.
func (a *Analysis) Execute(ctx context.Context, op string, cfg simflow.Config, reg *artifact.Registry) (*Output, error) {
	switch {
	case strings.HasPrefix(op, "setup_"):
		return a.setup(ctx, strings.TrimPrefix(op, "setup_"), cfg, reg)
	case op == "solve":
		return a.solve(ctx, cfg, reg)
	default:
		return nil, fmt.Errorf("analysis operation %q: %w", op, simflow.ErrUnknownOperation)
	}
}

func (a *Analysis) setup(ctx context.Context, analysisType string, cfg simflow.Config, reg *artifact.Registry) (*Output, error) {
	meshFile, err := resolveExisting(reg, artifact.KindMesh)
	if err != nil {
		return nil, fmt.Errorf("setup %s: %w", analysisType, err)
	}

	if err := a.adapter.Connect(ctx); err != nil {
		return nil, fmt.Errorf("%w: connect solver: %v", simflow.ErrAdapterUnavailable, err)
	}

	spec := adapter.SimulationSpec{
		AnalysisType:   analysisType,
		Material:       cfg.Material,
		Loads:          cfg.Loads,
		Constraints:    cfg.Constraints,
		SolverSettings: cfg.SolverSettings,
	}

	inputFile, err := a.adapter.SetupSimulation(ctx, meshFile, spec)
	if err != nil {
		return nil, fmt.Errorf("setup %s simulation: %w", analysisType, err)
	}

	a.logger.Debug("simulation configured",
		slog.String("analysis_type", analysisType),
		slog.String("mesh", meshFile),
		slog.String("input", inputFile),
	)

	return &Output{
		File: inputFile,
		Kind: artifact.KindSolverInput,
		Values: map[string]any{
			"file":          inputFile,
			"analysis_type": analysisType,
		},
	}, nil
}

// solve runs the solver against the assembled input deck. It completes
// with a status payload and registers no artifact; result files are
// located later under the configured output directory.
func (a *Analysis) solve(ctx context.Context, cfg simflow.Config, reg *artifact.Registry) (*Output, error) {
	inputFile, err := resolveExisting(reg, artifact.KindSolverInput)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	if err := a.adapter.RunSimulation(ctx, inputFile, cfg.OutputDir); err != nil {
		return nil, fmt.Errorf("run simulation %s: %w", inputFile, err)
	}

	return &Output{
		Values: map[string]any{
			"status":     "solved",
			"input_file": inputFile,
		},
	}, nil
}
