package stage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xraph/simflow"
	"github.com/xraph/simflow/adapter"
	"github.com/xraph/simflow/artifact"
)

// mockFrequencies is the fallback payload returned by extract_frequencies
// when no modal result file exists. It is a mock-mode value for runs
// without a real solver attached, not a measured result.
var mockFrequencies = []float64{10.5, 25.3, 42.8, 67.1}

// Postprocess reads solver result files and extracts structured results.
// It shares the solver-role analysis adapter for result parsing.
type Postprocess struct {
	adapter adapter.Analysis
	logger  *slog.Logger
}

// NewPostprocess creates the postprocess stage.
func NewPostprocess(a adapter.Analysis, logger *slog.Logger) *Postprocess {
	return &Postprocess{adapter: a, logger: logger}
}

// Name implements Stage.
func (p *Postprocess) Name() string { return "postprocess" }

// Execute implements Stage.
func (p *Postprocess) Execute(ctx context.Context, op string, cfg simflow.Config, reg *artifact.Registry) (*Output, error) {
	switch op {
	case "extract_stress":
		return p.extractResults(ctx, cfg, reg, "stress")
	case "extract_optimized_shape":
		return p.extractResults(ctx, cfg, reg, "optimized shape")
	case "extract_frequencies":
		return p.extractFrequencies(ctx, cfg)
	default:
		return nil, fmt.Errorf("postprocess operation %q: %w", op, simflow.ErrUnknownOperation)
	}
}

// extractResults locates a result file, preferring the canonical
// "results.<ext>" under the output directory over the registry's
// extension fallback, and merges its contents into the run results.
func (p *Postprocess) extractResults(ctx context.Context, cfg simflow.Config, reg *artifact.Registry, what string) (*Output, error) {
	resultFile := findCanonicalResult(cfg.OutputDir)
	if resultFile == "" {
		if path, err := resolveExisting(reg, artifact.KindResult); err == nil {
			resultFile = path
		}
	}
	if resultFile == "" {
		return nil, fmt.Errorf("extract %s: no result file under %s: %w", what, cfg.OutputDir, simflow.ErrArtifactNotFound)
	}

	results, err := p.adapter.ReadResults(ctx, resultFile)
	if err != nil {
		return nil, fmt.Errorf("read results %s: %w", resultFile, err)
	}

	return &Output{Values: results, Results: results}, nil
}

// extractFrequencies reads modal results when present. When no modal
// result file exists it degrades to a fixed mock payload instead of
// failing; the mock payload is returned as the step result but is NOT
// merged into the run's accumulated results.
func (p *Postprocess) extractFrequencies(ctx context.Context, cfg simflow.Config) (*Output, error) {
	resultFile := filepath.Join(cfg.OutputDir, "modal_results.json")
	if _, err := os.Stat(resultFile); err == nil {
		results, readErr := p.adapter.ReadResults(ctx, resultFile)
		if readErr != nil {
			return nil, fmt.Errorf("read modal results %s: %w", resultFile, readErr)
		}
		return &Output{Values: results, Results: results}, nil
	}

	p.logger.Warn("no modal result file, returning mock frequencies",
		slog.String("expected", resultFile),
	)

	return &Output{
		Values: map[string]any{"natural_frequencies": mockFrequencies},
	}, nil
}

// findCanonicalResult probes the output directory for "results.<ext>"
// over the known result extensions, returning the first that exists.
func findCanonicalResult(dir string) string {
	for _, ext := range artifact.KindResult.Extensions() {
		path := filepath.Join(dir, "results"+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
