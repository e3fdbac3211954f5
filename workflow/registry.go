package workflow

import (
	"slices"
	"sync"
)

// Pair identifies one (stage, operation) pipeline step.
type Pair struct {
	Stage     string `yaml:"stage" json:"stage"`
	Operation string `yaml:"operation" json:"operation"`
}

// Name returns the step name "<stage>.<operation>".
func (p Pair) Name() string { return p.Stage + "." + p.Operation }

// predefined holds the fixed set of named pipelines.
var predefined = map[string][]Pair{
	"stress_analysis": {
		{Stage: "geometry", Operation: "load_model"},
		{Stage: "geometry", Operation: "set_parameters"},
		{Stage: "geometry", Operation: "rebuild"},
		{Stage: "geometry", Operation: "export_step"},
		{Stage: "mesher", Operation: "generate_mesh"},
		{Stage: "analysis", Operation: "setup_static_analysis"},
		{Stage: "analysis", Operation: "solve"},
		{Stage: "postprocess", Operation: "extract_stress"},
	},
	"modal_analysis": {
		{Stage: "geometry", Operation: "load_model"},
		{Stage: "geometry", Operation: "export_step"},
		{Stage: "mesher", Operation: "generate_mesh"},
		{Stage: "analysis", Operation: "setup_modal_analysis"},
		{Stage: "analysis", Operation: "solve"},
		{Stage: "postprocess", Operation: "extract_frequencies"},
	},
	"topology_optimization": {
		{Stage: "geometry", Operation: "load_model"},
		{Stage: "geometry", Operation: "export_step"},
		{Stage: "mesher", Operation: "generate_mesh"},
		{Stage: "analysis", Operation: "setup_topology_optimization"},
		{Stage: "analysis", Operation: "solve"},
		{Stage: "postprocess", Operation: "extract_optimized_shape"},
	},
}

// Registry maps workflow names to ordered step sequences. A new registry
// is seeded with the predefined pipelines; additional pipelines can be
// registered. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	pipelines map[string][]Pair
}

// NewRegistry creates a registry seeded with the predefined pipelines.
func NewRegistry() *Registry {
	pipelines := make(map[string][]Pair, len(predefined))
	for name, pairs := range predefined {
		pipelines[name] = slices.Clone(pairs)
	}
	return &Registry{pipelines: pipelines}
}

// Register adds or replaces a named pipeline.
func (r *Registry) Register(name string, steps []Pair) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pipelines[name] = slices.Clone(steps)
}

// Get returns the ordered step sequence for a workflow name.
func (r *Registry) Get(name string) ([]Pair, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pairs, ok := r.pipelines[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(pairs), true
}

// Names returns all registered workflow names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.pipelines))
	for name := range r.pipelines {
		names = append(names, name)
	}
	return names
}
