// Package loader turns .stl and .scad files into meshes.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gosection/pkg/mesh"
	"github.com/philipparndt/gosection/pkg/openscad"
	"github.com/philipparndt/gosection/pkg/stl"
)

// ErrUnsupported is returned for file types other than .stl and .scad
var ErrUnsupported = errors.New("unsupported file type")

// Source is a loaded model
type Source struct {
	Path string
	Name string
	Mesh mesh.Mesh
	// Dependencies lists the files whose change invalidates the mesh,
	// starting with Path itself
	Dependencies []string
}

// Loader loads models, rendering OpenSCAD sources with the given binary
type Loader struct {
	OpenSCAD string
	Logger   *slog.Logger
}

// Load reads an STL file or renders an OpenSCAD file
func (l Loader) Load(ctx context.Context, path string) (*Source, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(absPath), filepath.Ext(absPath))

	switch ext := strings.ToLower(filepath.Ext(absPath)); ext {
	case ".scad":
		logger.Info("rendering OpenSCAD file", "file", path)
		renderer := openscad.NewRenderer(filepath.Dir(absPath)).
			WithBinary(l.OpenSCAD).
			WithLogger(logger)

		deps, err := renderer.ResolveDependencies(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve dependencies: %w", err)
		}
		m, err := renderer.RenderMesh(ctx, absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to render OpenSCAD file: %w", err)
		}
		return &Source{Path: absPath, Name: name, Mesh: m, Dependencies: deps}, nil

	case ".stl":
		model, err := stl.Parse(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse STL file: %w", err)
		}
		if model.Name != "" {
			name = model.Name
		}
		logger.Debug("loaded STL", "file", path, "triangles", model.TriangleCount())
		return &Source{Path: absPath, Name: name, Mesh: model.Mesh(), Dependencies: []string{absPath}}, nil

	default:
		return nil, fmt.Errorf("%w: %q (expected .stl or .scad)", ErrUnsupported, ext)
	}
}
