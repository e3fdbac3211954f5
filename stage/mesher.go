package stage

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/xraph/simflow"
	"github.com/xraph/simflow/adapter"
	"github.com/xraph/simflow/artifact"
)

// Mesher drives an analysis adapter in the mesh-generator role.
type Mesher struct {
	adapter adapter.Analysis
	logger  *slog.Logger
}

// NewMesher creates the mesher stage.
func NewMesher(a adapter.Analysis, logger *slog.Logger) *Mesher {
	return &Mesher{adapter: a, logger: logger}
}

// Name implements Stage.
func (m *Mesher) Name() string { return "mesher" }

// Execute implements Stage.
func (m *Mesher) Execute(ctx context.Context, op string, cfg simflow.Config, reg *artifact.Registry) (*Output, error) {
	switch op {
	case "generate_mesh":
		return m.generateMesh(ctx, cfg, reg)
	default:
		return nil, fmt.Errorf("mesher operation %q: %w", op, simflow.ErrUnknownOperation)
	}
}

func (m *Mesher) generateMesh(ctx context.Context, cfg simflow.Config, reg *artifact.Registry) (*Output, error) {
	geomFile, err := resolveExisting(reg, artifact.KindGeometry)
	if err != nil {
		return nil, fmt.Errorf("generate mesh: %w", err)
	}

	if err := m.adapter.Connect(ctx); err != nil {
		return nil, fmt.Errorf("%w: connect mesher: %v", simflow.ErrAdapterUnavailable, err)
	}

	meshFile := filepath.Join(cfg.OutputDir, "mesh.msh")
	if err := m.adapter.GenerateMesh(ctx, geomFile, meshFile, cfg.MeshElementSize); err != nil {
		return nil, fmt.Errorf("generate mesh from %s: %w", geomFile, err)
	}

	m.logger.Debug("mesh generated",
		slog.String("geometry", geomFile),
		slog.String("mesh", meshFile),
		slog.Float64("element_size", cfg.MeshElementSize),
	)

	return &Output{
		File: meshFile,
		Kind: artifact.KindMesh,
		Values: map[string]any{
			"file":         meshFile,
			"element_size": cfg.MeshElementSize,
		},
	}, nil
}
