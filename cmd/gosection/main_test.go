package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/philipparndt/gosection/internal/loader"
	"github.com/philipparndt/gosection/pkg/export"
	"github.com/philipparndt/gosection/pkg/geometry"
	"github.com/philipparndt/gosection/pkg/mesh"
	"github.com/philipparndt/gosection/pkg/stl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is written by the watch callback while the test reads it
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func writeSTL(t *testing.T, path string, m mesh.Mesh) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, stl.WriteBinary(f, stl.FromMesh("test", m)))
	require.NoError(t, f.Close())
}

func unitBox() mesh.Mesh {
	return mesh.Box(geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 1, 1))
}

func boxFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "box.stl")
	writeSTL(t, path, unitBox())
	return path
}

func execute(ctx context.Context, out *syncBuffer, args ...string) error {
	cmd := newRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(append([]string{"-q"}, args...))
	return cmd.ExecuteContext(ctx)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out syncBuffer
	err := execute(context.Background(), &out, args...)
	return out.String(), err
}

func TestSectionCommand(t *testing.T) {
	out, err := run(t, "section", boxFile(t), "--point", "0.5,0.5,0.5", "--normal", "0,0,1")
	require.NoError(t, err)

	assert.Contains(t, out, "Curve: polygon")
	assert.Contains(t, out, "Closed: true")
	assert.Contains(t, out, "Loops: 1")
	assert.Contains(t, out, "Loop 0: closed, 4 points")
	assert.Contains(t, out, "Perimeter: 4.000000 units")
	assert.Contains(t, out, "Area: 1.000000 square units")
	assert.Contains(t, out, "front:")
	assert.Contains(t, out, "Pipeline: 12 triangles")
}

func TestSectionCommandMiss(t *testing.T) {
	out, err := run(t, "section", boxFile(t), "--point", "0,0,5")
	require.NoError(t, err)
	assert.Contains(t, out, "Loops: 0")
	assert.Contains(t, out, "Closed: false")
}

func TestSectionCommandJSON(t *testing.T) {
	out, err := run(t, "section", boxFile(t), "--point", "0.5,0.5,0.5", "--json")
	require.NoError(t, err)

	var data export.SectionData
	require.NoError(t, json.Unmarshal([]byte(out), &data))
	assert.Equal(t, "polygon", data.Curve)
	assert.True(t, data.Closed)
	require.Len(t, data.Loops, 1)
	assert.Len(t, data.Loops[0].Points, 4)
	assert.Equal(t, 12, data.Stats.Triangles)
}

func TestSectionCommandExports(t *testing.T) {
	dir := t.TempDir()
	geo := filepath.Join(dir, "cut.geojson")
	dxf := filepath.Join(dir, "cut.dxf")
	img := filepath.Join(dir, "cut.png")

	_, err := run(t, "section", boxFile(t), "--point", "0.5,0.5,0.5",
		"--geojson", geo, "--dxf", dxf, "--png", img, "--png-width", "200", "--view", "front,top")
	require.NoError(t, err)

	data, err := os.ReadFile(geo)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"FeatureCollection"`)
	assert.Contains(t, string(data), `"view":"top"`)

	data, err = os.ReadFile(dxf)
	require.NoError(t, err)
	assert.Contains(t, string(data), "FRONT")
	assert.Contains(t, string(data), "LWPOLYLINE")

	data, err = os.ReadFile(img)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestSectionCommandConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "cut.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("simplify = false\nviews = [\"top\"]\n"), 0o644))

	out, err := run(t, "--config", cfg, "section", boxFile(t), "--point", "0.5,0.5,0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Loop 0: closed, 8 points")
	assert.Contains(t, out, "top:")
	assert.NotContains(t, out, "front:")
}

func TestSectionCommandErrors(t *testing.T) {
	box := boxFile(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad normal", []string{"section", box, "--normal", "1,2"}, "--normal"},
		{"zero normal", []string{"section", box, "--normal", "0,0,0"}, "must not be zero"},
		{"bad point", []string{"section", box, "--point", "a,b,c"}, "--point"},
		{"bad view", []string{"section", box, "--view", "isometric"}, "isometric"},
		{"bad branch", []string{"section", box, "--branch", "random"}, "random"},
		{"missing file", []string{"section", filepath.Join(t.TempDir(), "nope.stl")}, "nope.stl"},
		{"no file", []string{"section"}, "arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSectionCommandUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.obj")
	require.NoError(t, os.WriteFile(path, []byte("v 0 0 0\n"), 0o644))

	_, err := run(t, "section", path)
	assert.ErrorIs(t, err, loader.ErrUnsupported)
}

func TestCylinderCommand(t *testing.T) {
	out, err := run(t, "cylinder", "--radius", "2", "--height", "4", "--point", "0,0,1")
	require.NoError(t, err)
	assert.Contains(t, out, "Curve: circle")
	assert.Contains(t, out, "Radius: 2.000000 units")
	assert.Contains(t, out, "Center: (0.000000, 0.000000, 1.000000)")
	assert.Contains(t, out, "Loops: 1")

	out, err = run(t, "cylinder", "--normal", "1,0,1")
	require.NoError(t, err)
	assert.Contains(t, out, "Curve: ellipse")
	assert.Contains(t, out, "Minor: 1.000000 units")

	out, err = run(t, "cylinder", "--height", "2", "--point", "0,0,5")
	require.NoError(t, err)
	assert.Contains(t, out, "Loops: 0")
}

func TestCylinderCommandAlongAxis(t *testing.T) {
	out, err := run(t, "cylinder", "--height", "2", "--normal", "1,0,0", "--point", "0.5,0,0")
	require.NoError(t, err)
	assert.Contains(t, out, "Curve: polygon")
	assert.Contains(t, out, "Loops: 1")
}

func TestCylinderCommandSTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cyl.stl")
	_, err := run(t, "cylinder", "--segments", "16", "--stl", path)
	require.NoError(t, err)

	model, err := stl.Parse(path)
	require.NoError(t, err)
	assert.Equal(t, 16*4, model.TriangleCount())
}

func TestCylinderCommandErrors(t *testing.T) {
	_, err := run(t, "cylinder", "--radius", "0")
	assert.ErrorContains(t, err, "--radius")

	_, err = run(t, "cylinder", "--axis", "0,0,0")
	assert.ErrorContains(t, err, "--axis")
}

func TestConeCommand(t *testing.T) {
	tests := []struct {
		normal string
		want   string
	}{
		{"0,0,1", "circle"},
		{"0.2,0,1", "ellipse"},
		{"1,0,1", "parabola"},
		{"1,0,0.2", "hyperbola"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			out, err := run(t, "cone", "--half-angle", "45", "--normal", tt.normal)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}

	_, err := run(t, "cone", "--half-angle", "90")
	assert.ErrorContains(t, err, "--half-angle")
}

func TestSolidCommand(t *testing.T) {
	out, err := run(t, "solid", "tube", "--radius", "2", "--inner-radius", "1", "--height", "4",
		"--cells", "40", "--point", "0,0,0.21")
	require.NoError(t, err)
	assert.Contains(t, out, "Loops: 2")
	assert.Contains(t, out, "closed, hole")

	out, err = run(t, "solid", "box", "--size", "2,2,2", "--cells", "20", "--point", "0,0,0.13")
	require.NoError(t, err)
	assert.Contains(t, out, "Loops: 1")

	_, err = run(t, "solid", "sphere")
	assert.ErrorContains(t, err, "sphere")

	_, err = run(t, "solid", "tube", "--inner-radius", "3")
	assert.Error(t, err)
}

func TestProjectCommand(t *testing.T) {
	out, err := run(t, "project", boxFile(t), "--point", "0.5,0.5,0.5", "--normal", "0,1,0", "--view", "front,top")
	require.NoError(t, err)

	assert.Contains(t, out, "[front]\nloop 0 (closed):")
	assert.Contains(t, out, "[top]\nloop 0 (closed):")
	// the horizontal cut collapses to a line seen from the front
	assert.Contains(t, out, "0.500000")
	assert.NotContains(t, out, "[side-a]")
}

func TestInfoCommand(t *testing.T) {
	out, err := run(t, "info", boxFile(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Name: test")
	assert.Contains(t, out, "Triangles: 12")
	assert.Contains(t, out, "Surface Area: 6.000000 square units")
	assert.Contains(t, out, "Width (X): 1.000000 units")
}

func TestVersionFlag(t *testing.T) {
	out, err := run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
}

func TestWatchCommand(t *testing.T) {
	path := boxFile(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- execute(ctx, &out, "watch", path, "--point", "0.5,0.5,0.5", "--debounce", "20ms")
	}()

	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("Loops: 1"))
	}, 5*time.Second, 10*time.Millisecond)

	two := mesh.Merge(unitBox(), mesh.Box(geometry.NewVector3(3, 0, 0), geometry.NewVector3(4, 1, 1)))
	writeSTL(t, path, two)

	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("Loops: 2"))
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
