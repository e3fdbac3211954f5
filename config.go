package simflow

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load describes a single applied load.
type Load struct {
	Type      string  `yaml:"type" json:"type"`
	Value     float64 `yaml:"value" json:"value"`
	Direction string  `yaml:"direction,omitempty" json:"direction,omitempty"`
}

// Constraint describes a single boundary condition.
type Constraint struct {
	Type     string `yaml:"type" json:"type"`
	Location string `yaml:"location,omitempty" json:"location,omitempty"`
}

// Config is the caller-supplied, read-only configuration consumed
// throughout a workflow run.
type Config struct {
	// CADFile is the path to the source design model.
	CADFile string `yaml:"cad_file" json:"cad_file"`

	// Parameters maps model parameter names to the values applied
	// by geometry.set_parameters.
	Parameters map[string]float64 `yaml:"parameters" json:"parameters,omitempty"`

	// MeshElementSize is the target element size for mesh generation.
	MeshElementSize float64 `yaml:"mesh_element_size" json:"mesh_element_size,omitempty"`

	// OutputDir is where exported geometry, meshes, solver decks, and
	// results are written.
	OutputDir string `yaml:"output_dir" json:"output_dir,omitempty"`

	// Material names or describes the material assigned during
	// simulation setup.
	Material string `yaml:"material" json:"material,omitempty"`

	// Loads are the load descriptors passed to simulation setup.
	Loads []Load `yaml:"loads" json:"loads,omitempty"`

	// Constraints are the boundary-condition descriptors passed to
	// simulation setup.
	Constraints []Constraint `yaml:"constraints" json:"constraints,omitempty"`

	// SolverSettings is an opaque mapping forwarded to the solver adapter.
	SolverSettings map[string]any `yaml:"solver_settings" json:"solver_settings,omitempty"`
}

// Defaults applied by Normalized.
const (
	DefaultMeshElementSize = 2.0
	DefaultOutputDir       = "./workflow_output"
	DefaultMaterial        = "steel"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MeshElementSize: DefaultMeshElementSize,
		OutputDir:       DefaultOutputDir,
		Material:        DefaultMaterial,
	}
}

// Normalized returns a copy of c with zero-valued optional fields
// replaced by their defaults. The engine normalizes the config once
// before dispatching any step, so stages can rely on the defaults.
func (c Config) Normalized() Config {
	if c.MeshElementSize <= 0 {
		c.MeshElementSize = DefaultMeshElementSize
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.Material == "" {
		c.Material = DefaultMaterial
	}
	return c
}

// LoadConfig reads a YAML run configuration from path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}
