package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gosection/pkg/mesh"
	"github.com/philipparndt/gosection/pkg/section"
	"github.com/philipparndt/gosection/pkg/stl"
	"github.com/spf13/cobra"
)

func newCylinderCmd(a *app) *cobra.Command {
	var (
		plane   planeFlags
		exports exportFlags
		radius  float64
		height  float64
		axis    string
		center  string
		stlOut  string
	)
	cmd := &cobra.Command{
		Use:   "cylinder",
		Short: "Cut an analytic cylinder with a plane",
		Long: `Solve the section of a right circular cylinder without a mesh. Planes
perpendicular to the axis give a circle, oblique planes an ellipse. A plane
running along the axis is cut from a generated mesh instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := plane.plane()
			if err != nil {
				return err
			}
			views, err := a.cfg.ViewList()
			if err != nil {
				return err
			}
			if radius <= 0 {
				return fmt.Errorf("--radius must be positive")
			}
			ax, err := parseVector(axis)
			if err != nil {
				return fmt.Errorf("--axis: %w", err)
			}
			if ax.IsZero() {
				return fmt.Errorf("--axis must not be zero")
			}
			c, err := parseVector(center)
			if err != nil {
				return fmt.Errorf("--center: %w", err)
			}

			cyl := section.Cylinder{Center: c, Axis: ax, Radius: radius, Height: height}
			if stlOut != "" {
				if err := writeCylinderSTL(stlOut, cyl, a.cfg.Segments); err != nil {
					return err
				}
				a.logger.Info("wrote STL", "file", stlOut)
			}

			result := section.CutCylinder(cyl, p, a.cfg.SectionOptions(a.logger)...)
			return a.present(cmd, result, p, views, &exports)
		},
	}
	plane.register(cmd.Flags())
	exports.register(cmd.Flags())
	cmd.Flags().Float64Var(&radius, "radius", 1, "cylinder radius")
	cmd.Flags().Float64Var(&height, "height", 0, "cylinder height, 0 for unbounded")
	cmd.Flags().StringVar(&axis, "axis", "0,0,1", "cylinder axis direction")
	cmd.Flags().StringVar(&center, "center", "0,0,0", "cylinder center")
	cmd.Flags().StringVar(&stlOut, "stl", "", "also write the cylinder mesh as binary STL to this file")
	return cmd
}

func writeCylinderSTL(path string, c section.Cylinder, segments int) error {
	height := c.Height
	if height <= 0 {
		height = 2 * c.Radius
	}
	m := mesh.Cylinder(c.Center, c.Axis, c.Radius, height, segments)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := stl.WriteBinary(f, stl.FromMesh("cylinder", m)); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
