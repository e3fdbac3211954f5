package stage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xraph/simflow"
	"github.com/xraph/simflow/artifact"
	"github.com/xraph/simflow/stage"
)

// writeArtifact creates a file under dir and registers it so existence
// checks downstream of the registry succeed.
func writeArtifact(t *testing.T, reg *artifact.Registry, dir, step, name string, kind artifact.Kind) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	reg.Put(step, path, kind)
	return path
}

func TestMesherGenerateMesh(t *testing.T) {
	dir := t.TempDir()
	reg := artifact.NewRegistry()
	geomFile := writeArtifact(t, reg, dir, "geometry.export_step", "model.step", artifact.KindGeometry)

	fake := &fakeAnalysis{}
	m := stage.NewMesher(fake, discardLogger())

	cfg := simflow.Config{OutputDir: dir, MeshElementSize: 1.5}
	out, err := m.Execute(context.Background(), "generate_mesh", cfg, reg)
	if err != nil {
		t.Fatalf("generate_mesh: %v", err)
	}

	if fake.meshedFrom != geomFile {
		t.Errorf("meshed from %q, want %q", fake.meshedFrom, geomFile)
	}
	want := filepath.Join(dir, "mesh.msh")
	if out.File != want {
		t.Errorf("File = %q, want %q", out.File, want)
	}
	if out.Kind != artifact.KindMesh {
		t.Errorf("Kind = %q, want %q", out.Kind, artifact.KindMesh)
	}
	if got := out.Values["element_size"]; got != 1.5 {
		t.Errorf("element_size = %v, want 1.5", got)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("mesh file missing: %v", err)
	}
}

func TestMesherNoGeometryArtifact(t *testing.T) {
	m := stage.NewMesher(&fakeAnalysis{}, discardLogger())

	cfg := simflow.Config{OutputDir: t.TempDir()}
	_, err := m.Execute(context.Background(), "generate_mesh", cfg, artifact.NewRegistry())
	if !errors.Is(err, simflow.ErrArtifactNotFound) {
		t.Fatalf("err = %v, want ErrArtifactNotFound", err)
	}
}

func TestMesherGeometryFileGone(t *testing.T) {
	reg := artifact.NewRegistry()
	reg.Put("geometry.export_step", filepath.Join(t.TempDir(), "missing.step"), artifact.KindGeometry)
	m := stage.NewMesher(&fakeAnalysis{}, discardLogger())

	cfg := simflow.Config{OutputDir: t.TempDir()}
	_, err := m.Execute(context.Background(), "generate_mesh", cfg, reg)
	if !errors.Is(err, simflow.ErrArtifactNotFound) {
		t.Fatalf("err = %v, want ErrArtifactNotFound", err)
	}
}

func TestMesherConnectFailure(t *testing.T) {
	dir := t.TempDir()
	reg := artifact.NewRegistry()
	writeArtifact(t, reg, dir, "geometry.export_step", "model.step", artifact.KindGeometry)

	m := stage.NewMesher(&fakeAnalysis{connectErr: errToolDown}, discardLogger())

	_, err := m.Execute(context.Background(), "generate_mesh", simflow.Config{OutputDir: dir}, reg)
	if !errors.Is(err, simflow.ErrAdapterUnavailable) {
		t.Fatalf("err = %v, want ErrAdapterUnavailable", err)
	}
}

func TestMesherUnknownOperation(t *testing.T) {
	m := stage.NewMesher(&fakeAnalysis{}, discardLogger())

	_, err := m.Execute(context.Background(), "refine_mesh", simflow.Config{}, artifact.NewRegistry())
	if !errors.Is(err, simflow.ErrUnknownOperation) {
		t.Fatalf("err = %v, want ErrUnknownOperation", err)
	}
}
