package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/gosection/pkg/geometry"
	"github.com/philipparndt/gosection/pkg/mesh"
	"github.com/philipparndt/gosection/pkg/openscad"
	"github.com/philipparndt/gosection/pkg/stl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Box.STL")
	f, err := os.Create(path)
	require.NoError(t, err)
	box := mesh.CenteredBox(geometry.NewVector3(0, 0, 0), geometry.NewVector3(2, 2, 2))
	require.NoError(t, stl.WriteASCII(f, stl.FromMesh("", box)))
	require.NoError(t, f.Close())

	src, err := Loader{}.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Box", src.Name)
	assert.Equal(t, 12, src.Mesh.TriangleCount())
	assert.Equal(t, []string{path}, src.Dependencies)
}

func TestLoadUnsupported(t *testing.T) {
	_, err := Loader{}.Load(context.Background(), "part.obj")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestLoadMissingSTL(t *testing.T) {
	_, err := Loader{}.Load(context.Background(), filepath.Join(t.TempDir(), "gone.stl"))
	assert.Error(t, err)
}

func TestLoadSCADWithoutOpenSCAD(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.scad")
	require.NoError(t, os.WriteFile(path, []byte("cube(1);\n"), 0o644))

	_, err := Loader{OpenSCAD: "openscad-does-not-exist"}.Load(context.Background(), path)
	assert.ErrorIs(t, err, openscad.ErrNotInstalled)
}
