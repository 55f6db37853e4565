package main

import (
	"github.com/philipparndt/gosection/pkg/analysis"
	"github.com/philipparndt/gosection/pkg/export"
	"github.com/philipparndt/gosection/pkg/geometry"
	"github.com/philipparndt/gosection/pkg/projection"
	"github.com/philipparndt/gosection/pkg/section"
	"github.com/spf13/cobra"
)

func newSectionCmd(a *app) *cobra.Command {
	var (
		plane   planeFlags
		exports exportFlags
	)
	cmd := &cobra.Command{
		Use:   "section [file]",
		Short: "Cut a model with a plane",
		Long: `Cut an STL or OpenSCAD model with the plane through --point with normal
--normal and report every loop of the cut with perimeter, area and the
extents in the drafting views.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := plane.plane()
			if err != nil {
				return err
			}
			views, err := a.cfg.ViewList()
			if err != nil {
				return err
			}
			src, err := a.loader().Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			result := section.IntersectMesh(src.Mesh, p, a.cfg.SectionOptions(a.logger)...)
			return a.present(cmd, result, p, views, &exports)
		},
	}
	plane.register(cmd.Flags())
	exports.register(cmd.Flags())
	return cmd
}

// present prints result and writes the requested exports
func (a *app) present(cmd *cobra.Command, result section.Result, p geometry.Plane, views []projection.View, exports *exportFlags) error {
	if result.Empty() && !result.NeedsMesh {
		a.logger.Warn("the plane does not cut the model")
	}
	if exports.json {
		if err := export.WriteJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else {
		report := analysis.AnalyzeSection(result, p, views, a.cfg.Roundness)
		printReport(cmd.OutOrStdout(), result, report, views)
	}
	return exports.write(a, result, views)
}
