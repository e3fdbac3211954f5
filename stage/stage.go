package stage

import (
	"context"
	"fmt"
	"os"

	"github.com/xraph/simflow"
	"github.com/xraph/simflow/artifact"
)

// Output is what a stage operation produces.
type Output struct {
	// File is the artifact path this step produced, empty when the
	// operation yields no artifact (e.g. analysis.solve).
	File string

	// Kind tags the produced artifact for registry resolution.
	Kind artifact.Kind

	// Values is the step's opaque result payload, stored on the step.
	Values map[string]any

	// Results holds postprocess extractions; the engine merges them
	// into the run's accumulated results mapping.
	Results map[string]any
}

// Stage executes named operations for one pipeline phase.
type Stage interface {
	// Name returns the stage key used in (stage, operation) pairs.
	Name() string

	// Execute runs one operation against the run configuration and the
	// artifact registry. The config has been normalized by the engine.
	Execute(ctx context.Context, op string, cfg simflow.Config, reg *artifact.Registry) (*Output, error)
}

// resolveExisting resolves an artifact of the given kind and verifies
// that the path exists on disk. A resolution miss or a missing file is
// a missing-artifact error.
func resolveExisting(reg *artifact.Registry, kind artifact.Kind) (string, error) {
	path, err := reg.Resolve(kind)
	if err != nil {
		return "", err
	}
	if _, statErr := os.Stat(path); statErr != nil {
		return "", fmt.Errorf("%s artifact %s: %w", kind, path, simflow.ErrArtifactNotFound)
	}
	return path, nil
}
