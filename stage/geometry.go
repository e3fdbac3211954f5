package stage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/xraph/simflow"
	"github.com/xraph/simflow/adapter"
	"github.com/xraph/simflow/artifact"
)

// Geometry drives the CAD-kernel adapter: model loading, parametric
// edits, rebuild, and geometry export.
type Geometry struct {
	adapter adapter.Geometry
	logger  *slog.Logger
}

// NewGeometry creates the geometry stage.
func NewGeometry(a adapter.Geometry, logger *slog.Logger) *Geometry {
	return &Geometry{adapter: a, logger: logger}
}

// Name implements Stage.
func (g *Geometry) Name() string { return "geometry" }

// Execute implements Stage.
func (g *Geometry) Execute(ctx context.Context, op string, cfg simflow.Config, _ *artifact.Registry) (*Output, error) {
	switch op {
	case "load_model":
		return g.loadModel(ctx, cfg)
	case "set_parameters":
		return g.setParameters(ctx, cfg)
	case "rebuild":
		return g.rebuild(ctx)
	case "export_step":
		return g.exportSTEP(ctx, cfg)
	default:
		return nil, fmt.Errorf("geometry operation %q: %w", op, simflow.ErrUnknownOperation)
	}
}

func (g *Geometry) loadModel(ctx context.Context, cfg simflow.Config) (*Output, error) {
	if cfg.CADFile == "" {
		return nil, fmt.Errorf("cad_file: %w", simflow.ErrMissingConfig)
	}

	if err := g.adapter.Connect(ctx); err != nil {
		return nil, fmt.Errorf("%w: connect geometry: %v", simflow.ErrAdapterUnavailable, err)
	}
	if err := g.adapter.LoadModel(ctx, cfg.CADFile); err != nil {
		return nil, fmt.Errorf("load model %s: %w", cfg.CADFile, err)
	}

	return &Output{
		File:   cfg.CADFile,
		Kind:   artifact.KindModel,
		Values: map[string]any{"file": cfg.CADFile},
	}, nil
}

// setParameters applies each configured parameter. A single parameter
// the adapter rejects is logged and skipped, so one unrecognized name
// does not block an otherwise-valid rebuild. A lost adapter session
// aborts the step.
func (g *Geometry) setParameters(ctx context.Context, cfg simflow.Config) (*Output, error) {
	names := make([]string, 0, len(cfg.Parameters))
	for name := range cfg.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := cfg.Parameters[name]
		if err := g.adapter.SetParameter(ctx, name, value); err != nil {
			if errors.Is(err, simflow.ErrAdapterUnavailable) {
				return nil, fmt.Errorf("set parameter %s: %w", name, err)
			}
			g.logger.Warn("parameter not applied",
				slog.String("parameter", name),
				slog.Float64("value", value),
				slog.String("error", err.Error()),
			)
		}
	}

	return &Output{Values: map[string]any{"parameters": cfg.Parameters}}, nil
}

func (g *Geometry) rebuild(ctx context.Context) (*Output, error) {
	if err := g.adapter.Rebuild(ctx); err != nil {
		return nil, fmt.Errorf("rebuild model: %w", err)
	}
	return &Output{Values: map[string]any{"status": "rebuilt"}}, nil
}

func (g *Geometry) exportSTEP(ctx context.Context, cfg simflow.Config) (*Output, error) {
	out := filepath.Join(cfg.OutputDir, "model.step")
	if err := g.adapter.ExportSTEP(ctx, out); err != nil {
		return nil, fmt.Errorf("export step %s: %w", out, err)
	}

	return &Output{
		File:   out,
		Kind:   artifact.KindGeometry,
		Values: map[string]any{"file": out},
	}, nil
}
