package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gosection/pkg/section"
	"github.com/philipparndt/gosection/pkg/solid"
	"github.com/philipparndt/gosection/pkg/stl"
	"github.com/spf13/cobra"
)

func newSolidCmd(a *app) *cobra.Command {
	var (
		plane   planeFlags
		exports exportFlags
		size    string
		rotate  string
		radius  float64
		inner   float64
		height  float64
		cells   int
		stlOut  string
	)
	cmd := &cobra.Command{
		Use:   "solid box|cylinder|tube",
		Short: "Tessellate a primitive solid and cut it",
		Long: `Build a box, cylinder or tube as a signed distance field, tessellate it
with marching cubes and cut the mesh like a loaded model. Tubes produce a
section with a hole.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"box", "cylinder", "tube"},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := plane.plane()
			if err != nil {
				return err
			}
			views, err := a.cfg.ViewList()
			if err != nil {
				return err
			}

			var s solid.Solid
			switch args[0] {
			case "box":
				v, err := parseVector(size)
				if err != nil {
					return fmt.Errorf("--size: %w", err)
				}
				s, err = solid.Box(v)
				if err != nil {
					return err
				}
			case "cylinder":
				if s, err = solid.Cylinder(height, radius); err != nil {
					return err
				}
			case "tube":
				if s, err = solid.Tube(height, radius, inner); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown solid %q (expected box, cylinder or tube)", args[0])
			}

			r, err := parseVector(rotate)
			if err != nil {
				return fmt.Errorf("--rotate: %w", err)
			}
			if !r.IsZero() {
				s = s.Rotate(r.X, r.Y, r.Z)
			}

			m, err := s.Mesh(cells)
			if err != nil {
				return err
			}
			a.logger.Info("tessellated solid", "shape", args[0], "triangles", m.TriangleCount())

			if stlOut != "" {
				f, err := os.Create(stlOut)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", stlOut, err)
				}
				if err := stl.WriteBinary(f, stl.FromMesh(args[0], m)); err != nil {
					f.Close()
					return fmt.Errorf("failed to write %s: %w", stlOut, err)
				}
				if err := f.Close(); err != nil {
					return err
				}
				a.logger.Info("wrote STL", "file", stlOut)
			}

			result := section.IntersectMesh(m, p, a.cfg.SectionOptions(a.logger)...)
			return a.present(cmd, result, p, views, &exports)
		},
	}
	plane.register(cmd.Flags())
	exports.register(cmd.Flags())
	cmd.Flags().StringVar(&size, "size", "1,1,1", "box size")
	cmd.Flags().StringVar(&rotate, "rotate", "0,0,0", "rotation in degrees around x, y and z")
	cmd.Flags().Float64Var(&radius, "radius", 1, "cylinder or outer tube radius")
	cmd.Flags().Float64Var(&inner, "inner-radius", 0.5, "tube bore radius")
	cmd.Flags().Float64Var(&height, "height", 2, "cylinder or tube height along z")
	cmd.Flags().IntVar(&cells, "cells", solid.DefaultCells, "marching cubes resolution")
	cmd.Flags().StringVar(&stlOut, "stl", "", "also write the tessellated mesh as binary STL to this file")
	return cmd
}
