package artifact_test

import (
	"errors"
	"testing"

	"github.com/xraph/simflow"
	"github.com/xraph/simflow/artifact"
)

func TestRegistry_InsertionOrder(t *testing.T) {
	r := artifact.NewRegistry()
	r.Put("geometry.export_step", "/tmp/model.step", artifact.KindGeometry)
	r.Put("mesher.generate_mesh", "/tmp/mesh.msh", artifact.KindMesh)
	r.Put("analysis.setup_static_analysis", "/tmp/case.inp", artifact.KindSolverInput)

	entries := r.Entries()
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	want := []string{"geometry.export_step", "mesher.generate_mesh", "analysis.setup_static_analysis"}
	for i, e := range entries {
		if e.Step != want[i] {
			t.Errorf("entries[%d].Step = %q, want %q", i, e.Step, want[i])
		}
	}
}

func TestRegistry_PutReplacesInPlace(t *testing.T) {
	r := artifact.NewRegistry()
	r.Put("geometry.export_step", "/tmp/a.step", artifact.KindGeometry)
	r.Put("mesher.generate_mesh", "/tmp/mesh.msh", artifact.KindMesh)
	r.Put("geometry.export_step", "/tmp/b.step", artifact.KindGeometry)

	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (one entry per step name)", r.Len())
	}
	got, ok := r.Get("geometry.export_step")
	if !ok || got != "/tmp/b.step" {
		t.Errorf("Get = %q, %v; want /tmp/b.step, true", got, ok)
	}
	if r.Entries()[0].Step != "geometry.export_step" {
		t.Error("replacement moved the entry out of its original position")
	}
}

func TestRegistry_ResolveByKind(t *testing.T) {
	r := artifact.NewRegistry()
	r.Put("geometry.load_model", "/tmp/part.FCStd", artifact.KindModel)
	r.Put("geometry.export_step", "/tmp/model.step", artifact.KindGeometry)

	got, err := r.Resolve(artifact.KindGeometry)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "/tmp/model.step" {
		t.Errorf("Resolve = %q, want /tmp/model.step", got)
	}
}

func TestRegistry_ModelNeverSatisfiesGeometry(t *testing.T) {
	r := artifact.NewRegistry()
	r.Put("geometry.load_model", "/tmp/part.FCStd", artifact.KindModel)

	if _, err := r.Resolve(artifact.KindGeometry); err == nil {
		t.Fatal("expected error: loaded model reference must not resolve as exchange geometry")
	}
}

func TestRegistry_ResolveByNameConvention(t *testing.T) {
	// Untagged entries fall back to the producing-step naming rule.
	// The export_step entry wins even though a later entry also ends
	// in .step.
	r := artifact.NewRegistry()
	r.Put("geometry.export_step", "/tmp/model.step", artifact.KindUnknown)
	r.Put("some.other_op", "/tmp/unrelated.step", artifact.KindUnknown)

	got, err := r.Resolve(artifact.KindGeometry)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "/tmp/model.step" {
		t.Errorf("Resolve = %q, want name-convention match /tmp/model.step", got)
	}
}

func TestRegistry_ResolveByExtensionFallback(t *testing.T) {
	r := artifact.NewRegistry()
	r.Put("some.other_op", "/tmp/x.stp", artifact.KindUnknown)

	got, err := r.Resolve(artifact.KindGeometry)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "/tmp/x.stp" {
		t.Errorf("Resolve = %q, want extension fallback /tmp/x.stp", got)
	}
}

func TestRegistry_ResolveSolverInputByPrefix(t *testing.T) {
	r := artifact.NewRegistry()
	r.Put("analysis.setup_modal_analysis", "/tmp/case.inp", artifact.KindUnknown)

	got, err := r.Resolve(artifact.KindSolverInput)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "/tmp/case.inp" {
		t.Errorf("Resolve = %q, want /tmp/case.inp", got)
	}
}

func TestRegistry_ResolveNoCandidate(t *testing.T) {
	r := artifact.NewRegistry()
	r.Put("geometry.load_model", "/tmp/part.FCStd", artifact.KindModel)

	_, err := r.Resolve(artifact.KindMesh)
	if err == nil {
		t.Fatal("expected error for absent mesh artifact")
	}
	if !errors.Is(err, simflow.ErrArtifactNotFound) {
		t.Errorf("error = %v, want ErrArtifactNotFound", err)
	}
}

func TestKind_Extensions(t *testing.T) {
	tests := []struct {
		kind artifact.Kind
		want int
	}{
		{artifact.KindGeometry, 2},
		{artifact.KindMesh, 2},
		{artifact.KindSolverInput, 2},
		{artifact.KindResult, 4},
		{artifact.KindUnknown, 0},
	}
	for _, tt := range tests {
		if got := len(tt.kind.Extensions()); got != tt.want {
			t.Errorf("%s extensions = %d, want %d", tt.kind, got, tt.want)
		}
	}
}
