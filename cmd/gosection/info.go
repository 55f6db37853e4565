package main

import (
	"fmt"

	"github.com/philipparndt/gosection/pkg/analysis"
	"github.com/spf13/cobra"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info [file]",
		Short: "Display general information about a model",
		Long:  "Show dimensions, triangle count, surface area and edge statistics to help place cutting planes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.loader().Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			result := analysis.AnalyzeMesh(src.Mesh)

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Model Information")
			fmt.Fprintln(w, "=================")
			fmt.Fprintf(w, "Name: %s\n", src.Name)
			fmt.Fprintf(w, "File: %s\n\n", src.Path)

			fmt.Fprintln(w, "Model Statistics:")
			fmt.Fprintf(w, "  Triangles: %d\n", result.TriangleCount)
			fmt.Fprintf(w, "  Edges: %d\n", result.EdgeCount)
			fmt.Fprintf(w, "  Surface Area: %.6f square units\n", result.SurfaceArea)
			if result.TriangleCount == 0 {
				return nil
			}

			fmt.Fprintln(w, "\nBounding Box:")
			fmt.Fprintf(w, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
			fmt.Fprintf(w, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
			fmt.Fprintf(w, "  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

			fmt.Fprintln(w, "Dimensions:")
			fmt.Fprintf(w, "  Width (X): %.6f units\n", result.Dimensions.X)
			fmt.Fprintf(w, "  Height (Y): %.6f units\n", result.Dimensions.Y)
			fmt.Fprintf(w, "  Depth (Z): %.6f units\n", result.Dimensions.Z)
			fmt.Fprintf(w, "  Diagonal: %.6f units\n\n", result.BoundingBox.Diagonal())

			fmt.Fprintln(w, "Edge Lengths:")
			fmt.Fprintf(w, "  Minimum: %.6f units\n", result.MinEdgeLength)
			fmt.Fprintf(w, "  Maximum: %.6f units\n", result.MaxEdgeLength)
			fmt.Fprintf(w, "  Average: %.6f units\n", result.AvgEdgeLength)
			return nil
		},
	}
}
