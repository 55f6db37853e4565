package main

import (
	"fmt"

	"github.com/philipparndt/gosection/pkg/projection"
	"github.com/philipparndt/gosection/pkg/section"
	"github.com/spf13/cobra"
)

func newProjectCmd(a *app) *cobra.Command {
	var (
		plane   planeFlags
		exports exportFlags
	)
	cmd := &cobra.Command{
		Use:   "project [file]",
		Short: "Print the section loops in drafting view coordinates",
		Args:  cobra.ExactArgs(1),
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
			printProjection(cmd, result, views)
			return exports.write(a, result, views)
		},
	}
	plane.register(cmd.Flags())
	exports.register(cmd.Flags())
	return cmd
}

func printProjection(cmd *cobra.Command, result section.Result, views []projection.View) {
	w := cmd.OutOrStdout()
	projected := projection.ProjectAll(result, views)
	for _, v := range views {
		fmt.Fprintf(w, "[%s]\n", v)
		for _, pl := range projected[v] {
			state := "open"
			if pl.Closed {
				state = "closed"
			}
			fmt.Fprintf(w, "loop %d (%s):", pl.Loop, state)
			for _, pt := range pl.Line {
				fmt.Fprintf(w, " %.6f,%.6f", pt[0], pt[1])
			}
			fmt.Fprintln(w)
		}
	}
}
