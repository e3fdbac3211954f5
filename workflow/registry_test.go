package workflow_test

import (
	"slices"
	"testing"

	"github.com/xraph/simflow/workflow"
)

func TestRegistry_PredefinedPipelines(t *testing.T) {
	reg := workflow.NewRegistry()

	tests := []struct {
		name  string
		steps int
		first string
		last  string
	}{
		{"stress_analysis", 8, "geometry.load_model", "postprocess.extract_stress"},
		{"modal_analysis", 6, "geometry.load_model", "postprocess.extract_frequencies"},
		{"topology_optimization", 6, "geometry.load_model", "postprocess.extract_optimized_shape"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs, ok := reg.Get(tt.name)
			if !ok {
				t.Fatalf("pipeline %q not registered", tt.name)
			}
			if len(pairs) != tt.steps {
				t.Fatalf("len = %d, want %d", len(pairs), tt.steps)
			}
			if got := pairs[0].Name(); got != tt.first {
				t.Errorf("first = %q, want %q", got, tt.first)
			}
			if got := pairs[len(pairs)-1].Name(); got != tt.last {
				t.Errorf("last = %q, want %q", got, tt.last)
			}
		})
	}
}

func TestRegistry_StressAnalysisOrder(t *testing.T) {
	reg := workflow.NewRegistry()
	pairs, _ := reg.Get("stress_analysis")

	want := []string{
		"geometry.load_model",
		"geometry.set_parameters",
		"geometry.rebuild",
		"geometry.export_step",
		"mesher.generate_mesh",
		"analysis.setup_static_analysis",
		"analysis.solve",
		"postprocess.extract_stress",
	}
	got := make([]string, len(pairs))
	for i, p := range pairs {
		got[i] = p.Name()
	}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	reg := workflow.NewRegistry()
	if _, ok := reg.Get("thermal_runaway"); ok {
		t.Error("expected unknown pipeline to be absent")
	}
}

func TestRegistry_RegisterCustomPipeline(t *testing.T) {
	reg := workflow.NewRegistry()
	steps := []workflow.Pair{
		{Stage: "geometry", Operation: "load_model"},
		{Stage: "geometry", Operation: "export_step"},
	}
	reg.Register("export_only", steps)

	got, ok := reg.Get("export_only")
	if !ok {
		t.Fatal("registered pipeline not found")
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	// Mutating the returned slice must not affect the registry.
	got[0].Operation = "mutated"
	again, _ := reg.Get("export_only")
	if again[0].Operation != "load_model" {
		t.Error("Get returned registry-backed slice instead of a copy")
	}
}

func TestRegistry_Names(t *testing.T) {
	reg := workflow.NewRegistry()
	names := reg.Names()
	if len(names) != 3 {
		t.Fatalf("len(names) = %d, want 3", len(names))
	}
	for _, want := range []string{"stress_analysis", "modal_analysis", "topology_optimization"} {
		if !slices.Contains(names, want) {
			t.Errorf("names missing %q", want)
		}
	}
}
