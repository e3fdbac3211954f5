package engine

import (
	"context"

	"github.com/xraph/simflow"
	"github.com/xraph/simflow/workflow"
)

// RunStaticAnalysis runs the stress_analysis pipeline against a CAD file
// with a conventional static load case: a 1000 N force along z and a
// fixed constraint on the bottom face, on the default material. Use
// RunWorkflow directly for full control over loads and constraints.
func (e *Engine) RunStaticAnalysis(ctx context.Context, cadFile string, parameters map[string]float64) (*workflow.Result, error) {
	cfg := simflow.Config{
		CADFile:    cadFile,
		Parameters: parameters,
		Material:   simflow.DefaultMaterial,
		Loads: []simflow.Load{
			{Type: "force", Value: 1000, Direction: "z"},
		},
		Constraints: []simflow.Constraint{
			{Type: "fixed", Location: "bottom"},
		},
	}
	return e.RunWorkflow(ctx, "stress_analysis", cfg, nil)
}
